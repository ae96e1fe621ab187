// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package settings

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSources is an in-memory SourceIndex.
type fakeSources []string

func (f fakeSources) Contains(text string) bool {
	return len(f.FilesContaining(text)) > 0
}

func (f fakeSources) FilesContaining(text string) []string {
	var out []string
	for _, src := range f {
		if strings.Contains(src, text) {
			out = append(out, src)
		}
	}
	return out
}

func messages(err error) []string {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	var out []string
	for _, e := range ve {
		out = append(out, e.Error())
	}
	return out
}

func TestValidate_Fixture(t *testing.T) {
	root := loadFixture(t, "appsettings.json").Root

	err := Validate(context.Background(), root, ValidateOptions{Schema: DefaultSchema(), RequireEvents: true, RequireSchedule: true})
	assert.NoError(t, err)
}

func TestValidate_Sources(t *testing.T) {
	root := loadFixture(t, "appsettings.json").Root

	bound := fakeSources{
		`public class CrewClient { public override string ServiceClientId => "Crew"; }`,
		`[Subscribe(nameof(FlightDelayed))] class Handler {}`,
	}
	assert.NoError(t, Validate(context.Background(), root, ValidateOptions{Sources: bound}))

	connectionID := fakeSources{
		`public override string ServiceClientId => "Crew";`,
		`class Publisher { public override string ConnectionId = FlightDelayed; }`,
	}
	assert.NoError(t, Validate(context.Background(), root, ValidateOptions{Sources: connectionID}))

	err := Validate(context.Background(), root, ValidateOptions{Sources: fakeSources{`nameof(OtherEvent) FlightDelayed`}})
	assert.ElementsMatch(t, []string{
		`service client "Crew" is not bound by any ServiceClientId override`,
		`event "FlightDelayed" is not bound to any publisher or subscriber`,
	}, messages(err))
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  ValidateOptions
		want  []string
	}{
		{
			name:  "duplicate service clients",
			input: `{"serviceClients":[{"id":"A","address":"x","timeout":1},{"id":"A","address":"y","timeout":1}]}`,
			want:  []string{`service client id "A" is declared more than once`},
		},
		{
			name:  "consumer without events",
			input: `{"events":[]}`,
			opts:  ValidateOptions{RequireEvents: true},
			want:  []string{"consumers must define at least one event"},
		},
		{
			name:  "cron job without schedule",
			input: `{"k8s.schedule":"  "}`,
			opts:  ValidateOptions{RequireSchedule: true},
			want:  []string{`cron jobs must define "k8s.schedule" at the root`},
		},
		{
			name:  "empty identifier",
			input: `{"connectionSettings":[{"id":"","connectionString":"x"}]}`,
			want:  []string{"identifier connectionSettings.id is empty"},
		},
		{
			name:  "required fields",
			input: `{"log":{"console":{"minimumLevel":""}},"serviceBusSettings":{"publisherTopic":"t","maxConcurrentCalls":0}}`,
			opts:  ValidateOptions{Schema: DefaultSchema()},
			want: []string{
				"property log.console.minimumLevel is null or empty",
				"property log.applicationInsights is null or empty",
				"property serviceBusSettings.maxConcurrentCalls is zero",
			},
		},
		{
			name:  "missing log",
			input: `{"allowedHosts":"*"}`,
			opts:  ValidateOptions{Schema: DefaultSchema()},
			want:  []string{"property log is null or empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load([]byte(tt.input), DefaultSchema())
			require.NoError(t, err)

			err = Validate(context.Background(), doc.Root, tt.opts)
			require.Error(t, err)
			assert.ElementsMatch(t, tt.want, messages(err))
		})
	}
}

func TestValidate_IdentifierContext(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "blank key in the extension bag",
			input: `{"Jwt":{"Key":"","Issuer":"me"}}`,
		},
		{
			name:  "blank id nested in the extension bag",
			input: `{"Features":[{"id":null,"enabled":true}]}`,
		},
		{
			name:  "blank id in a frozen type",
			input: `{"resources":{"id":"","cacheExpirationMinutes":5}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load([]byte(tt.input), DefaultSchema())
			require.NoError(t, err)

			assert.NoError(t, Validate(context.Background(), doc.Root, ValidateOptions{}))
		})
	}
}

func TestValidate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Validate(ctx, loadFixture(t, "appsettings.json").Root, ValidateOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidationErrors_Error(t *testing.T) {
	ve := ValidationErrors{errors.New("first"), errors.New("second")}
	assert.Equal(t, "first\nsecond", ve.Error())
}
