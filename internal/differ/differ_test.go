// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const existing = `{
  // kept by the team
  "log": {"console": {"enabled": "${log.console.enabled}", "minimumLevel": "${log.console.minimumLevel}"}},
  "swaggerDoc": {"host": "${swaggerDoc.host}"},
  "legacy": "${legacy}",
}`

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		fresh    string
		opts     Options
		want     Result
		wantText []string
	}{
		{
			name:  "identical",
			fresh: `{"log": {"console": {"enabled": "${log.console.enabled}", "minimumLevel": "${log.console.minimumLevel}"}}, "swaggerDoc": {"host": "${swaggerDoc.host}"}, "legacy": "${legacy}"}`,
			want:  Result{},
		},
		{
			name:     "added deleted and modified",
			fresh:    `{"log": {"console": {"enabled": "true", "minimumLevel": "${log.console.minimumLevel}"}}, "swaggerDoc": {"host": "${swaggerDoc.host}"}, "k8s.schedule": "${k8s.schedule}"}`,
			want:     Result{Added: 1, Deleted: 1, Modified: 1},
			wantText: []string{"legacy", "k8s.schedule", "enabled"},
		},
		{
			name:  "ignored keys",
			fresh: `{"log": {"console": {"enabled": "${log.console.enabled}", "minimumLevel": "${log.console.minimumLevel}"}}, "swaggerDoc": {"host": "other"}}`,
			opts:  Options{Ignore: []string{"legacy", "swaggerDoc", ""}},
			want:  Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Diff(context.Background(), []byte(existing), []byte(tt.fresh), tt.opts)
			require.NoError(t, err)

			assert.Equal(t, tt.want.Added, got.Added)
			assert.Equal(t, tt.want.Deleted, got.Deleted)
			assert.Equal(t, tt.want.Modified, got.Modified)
			for _, s := range tt.wantText {
				assert.Contains(t, got.Text, s)
			}

			if tt.want.Changed() {
				assert.ErrorIs(t, got.Err(), ErrDrift)
			} else {
				assert.NoError(t, got.Err())
				assert.Empty(t, got.Text)
			}
		})
	}
}

func TestDiff_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Diff(ctx, []byte(`[1]`), []byte(`{}`), Options{})
	assert.ErrorContains(t, err, "existing document")

	_, err = Diff(ctx, []byte(`{}`), []byte(`{`), Options{})
	assert.ErrorContains(t, err, "generated document")

	_, err = Diff(ctx, []byte(`null`), []byte(`{}`), Options{})
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Diff(cancelled, []byte(`{}`), []byte(`{}`), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiff_BOM(t *testing.T) {
	got, err := Diff(context.Background(), []byte("\xef\xbb\xbf{\"a\": 1}"), []byte(`{"a": 1}`), Options{})
	require.NoError(t, err)
	assert.False(t, got.Changed())
}
