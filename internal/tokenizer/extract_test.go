// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package tokenizer

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploygen/deploygen/internal/settings"
)

func fixtureRoot(t *testing.T) *settings.Node {
	t.Helper()
	doc, err := settings.LoadFile(filepath.Join("testdata", "appsettings.json"), settings.DefaultSchema())
	require.NoError(t, err)
	return doc.Root
}

func loadRoot(t *testing.T, input string, schema *settings.Schema) *settings.Node {
	t.Helper()
	doc, err := settings.Load([]byte(input), schema)
	require.NoError(t, err)
	return doc.Root
}

func extract(t *testing.T, root *settings.Node, opts Options) []Token {
	t.Helper()
	tokens, err := Extract(context.Background(), root, opts)
	require.NoError(t, err)
	return tokens
}

var fixtureTokens = []Token{
	{"log.console.enabled", "true"},
	{"log.console.minimumLevel", "Information"},
	{"log.applicationInsights.enabled", "false"},
	{"log.applicationInsights.minimumLevel", "Warning"},
	{"log.applicationInsights.instrumentationKey", "ikey-123"},
	{"apiSettings.customMiddleware.exceptionHandler", "true"},
	{"apiSettings.customMiddleware.requestTracking", "true"},
	{"apiSettings.customMiddleware.tokenValidation", "false"},
	{"apiSettings.customMiddleware.cultureHandler", "true"},
	{"apiSettings.showDetailedException", "false"},
	{"swaggerDoc.host", "flight.example.com"},
	{"connectionSettings.Flights.connectionString", "Server=db;Database=flights"},
	{"connectionSettings.Flights.databaseName", "flights"},
	{"connectionSettings.Audit.connectionString", "Server=db;Database=audit"},
	{"events.FlightDelayed.transportType", "AzureServiceBus"},
	{"events.FlightDelayed.connectionString", "Endpoint=sb://bus/"},
	{"events.FlightDelayed.parameters.Topic", "flight-delayed"},
	{"events.FlightDelayed.parameters.Subscription", "maintenance"},
	{"serviceBusSettings.publisherTopic", "flight-events"},
	{"serviceBusSettings.autoComplete", "true"},
	{"serviceBusSettings.maxConcurrentCalls", "10"},
	{"serviceClients.Crew.address", "http://crew"},
	{"serviceClients.Crew.timeout", "30"},
	{"serviceClients.Crew.parameters.ApiKey", "secret"},
	{"featureFlags.newUi", "true"},
	{"featureFlags.regions", `["us","eu"]`},
	{"allowedHosts", "*"},
}

func TestExtract_RawFixture(t *testing.T) {
	tokens := extract(t, fixtureRoot(t), Options{Mode: Raw})
	assert.Equal(t, fixtureTokens, tokens)
}

func TestExtract_Exceptions(t *testing.T) {
	schedule := Token{"k8s.schedule", "*/5 * * * *"}

	for _, mode := range []Mode{Raw, Tokenized} {
		t.Run(mode.String(), func(t *testing.T) {
			tokens := extract(t, fixtureRoot(t), Options{Mode: mode, IncludeExceptions: true})
			require.Len(t, tokens, len(fixtureTokens)+1)
			assert.Equal(t, schedule, tokens[24], "literal value placed between declared fields and the extension bag")

			without := extract(t, fixtureRoot(t), Options{Mode: mode})
			assert.NotContains(t, without, schedule)
		})
	}
}

func TestExtract_PolicyExclusion(t *testing.T) {
	root := fixtureRoot(t)
	for _, opts := range []Options{
		{Mode: Raw},
		{Mode: Raw, IncludeExceptions: true},
		{Mode: Tokenized},
		{Mode: Tokenized, IncludeExceptions: true},
	} {
		for _, tok := range extract(t, root, opts) {
			assert.False(t, strings.HasPrefix(tok.Name, "swaggerDoc.name"), tok.Name)
			assert.False(t, strings.HasPrefix(tok.Name, "swaggerDoc.info"), tok.Name)
			assert.False(t, strings.HasPrefix(tok.Name, "swaggerDoc.schemes"), tok.Name)
			assert.False(t, strings.HasPrefix(tok.Name, "resources."), "frozen: %s", tok.Name)
			assert.False(t, strings.HasPrefix(tok.Name, "swaggerEndpoint."), "frozen: %s", tok.Name)
		}
	}
}

func TestExtract_TokenizedPlaceholders(t *testing.T) {
	tests := []struct {
		style Style
		want  string
	}{
		{Underscore, "__log.console.minimumLevel__"},
		{Dollar, "${log.console.minimumLevel}"},
	}

	for _, tt := range tests {
		tokens := extract(t, fixtureRoot(t), Options{Mode: Tokenized, Style: tt.style})
		require.Len(t, tokens, len(fixtureTokens))
		assert.Equal(t, tt.want, tokens[1].Value)
		for i, tok := range tokens {
			assert.Equal(t, fixtureTokens[i].Name, tok.Name)
			assert.Contains(t, tok.Value, tok.Name)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	root := fixtureRoot(t)
	opts := Options{Mode: Tokenized, IncludeExceptions: true}
	assert.Equal(t, extract(t, root, opts), extract(t, root, opts))
}

func TestExtract_PathRules(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		schema *settings.Schema
		want   []Token
	}{
		{
			name:   "identifier collapsing",
			input:  `{"connectionSettings":[{"id":"conn1","connectionString":"x"},{"id":"conn2","connectionString":"y"}]}`,
			schema: settings.DefaultSchema(),
			want: []Token{
				{"connectionSettings.conn1.connectionString", "x"},
				{"connectionSettings.conn2.connectionString", "y"},
			},
		},
		{
			name:   "identifier collapsing without schema",
			input:  `{"connectionSettings":[{"ID":"conn1","connectionString":"x"}]}`,
			schema: nil,
			want:   []Token{{"connectionSettings.conn1.connectionString", "x"}},
		},
		{
			name:   "parameter collapsing",
			input:  `{"events":[{"id":"evt1","parameters":[{"key":"Foo","value":"Bar"}]}]}`,
			schema: settings.DefaultSchema(),
			want:   []Token{{"events.evt1.parameters.Foo", "Bar"}},
		},
		{
			name:   "value outside a parameter keeps its segment",
			input:  `{"pairs":[{"key":"Foo","value":"Bar"}]}`,
			schema: nil,
			want:   []Token{{"pairs.Foo.value", "Bar"}},
		},
		{
			name:   "empty identifier is a no-op segment",
			input:  `{"connectionSettings":[{"id":"","connectionString":"x"}]}`,
			schema: settings.DefaultSchema(),
			want:   []Token{{"connectionSettings..connectionString", "x"}},
		},
		{
			name:   "identifier only affects later siblings",
			input:  `{"things":[{"name":"first","id":"T1","size":2}]}`,
			schema: nil,
			want:   []Token{{"things.name", "first"}, {"things.T1.size", "2"}},
		},
		{
			name:   "scalar list items are named after the list",
			input:  `{"hosts":["a","b"],"nested":[["c"]]}`,
			schema: nil,
			want:   []Token{{"hosts", "a"}, {"hosts", "b"}, {"nested", "c"}},
		},
		{
			name:   "nulls and omit-empty",
			input:  `{"connectionSettings":[{"id":"A","connectionString":null,"databaseName":"  "}],"resources":null,"swaggerDoc":{"host":null}}`,
			schema: settings.DefaultSchema(),
			want: []Token{
				{"swaggerDoc.host", ""},
				{"connectionSettings.A.connectionString", ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := loadRoot(t, tt.input, tt.schema)
			assert.Equal(t, tt.want, extract(t, root, Options{Mode: Raw}))
		})
	}
}

func TestExtract_CustomSchema(t *testing.T) {
	schema, err := settings.LoadSchema(filepath.Join("testdata", "custom.schema.yaml"))
	require.NoError(t, err)

	root := loadRoot(t, `{"name":"nightly","secret":"hunter2","owner":{"team":"ops"}}`, schema)
	assert.Equal(t, []Token{{"name", "nightly"}}, extract(t, root, Options{Mode: Raw, IncludeExceptions: true}))
}

func TestExtract_Errors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Extract(ctx, fixtureRoot(t), Options{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Extract(context.Background(), nil, Options{})
	assert.ErrorIs(t, err, settings.ErrNoRoot)
}
