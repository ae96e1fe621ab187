// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package meta

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploygen/deploygen/internal/config"
)

func TestNamespace(t *testing.T) {
	assert.Equal(t, "generate", Namespace([]string{"deploygen", "generate", "--yes"}))
	assert.Equal(t, "", Namespace([]string{"deploygen", "--help"}))
	assert.Equal(t, "", Namespace([]string{"deploygen"}))
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	cwd := t.TempDir()
	sln := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		rootless bool
		want     RootSpec
		wantErr  bool
	}{
		{
			name: "cwd when no root given",
			args: []string{"deploygen", "generate", "--yes"},
			want: RootSpec{RootDir: cwd},
		},
		{
			name: "root argument",
			args: []string{"deploygen", "tokens", sln},
			want: RootSpec{RootDir: sln},
		},
		{
			name: "root with app name",
			args: []string{"deploygen", "tokens", sln + "::Flight"},
			want: RootSpec{RootDir: sln, AppName: "Flight"},
		},
		{
			name:     "rootless command keeps cwd",
			args:     []string{"deploygen", "completion", "bash"},
			rootless: true,
			want:     RootSpec{RootDir: cwd},
		},
		{
			name:    "missing root",
			args:    []string{"deploygen", "generate", filepath.Join(sln, "nope")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(ctx, tt.args, config.Type{Namespace: "x"}, cwd, tt.rootless)
			if tt.wantErr {
				assert.ErrorContains(t, err, "failed to parse solution root")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.RootSpec)
			assert.Equal(t, cwd, m.StartingDir)
			assert.Equal(t, "x", m.Config.Namespace)
			assert.Equal(t, tt.args, m.Args)
		})
	}
}

func TestRootSpecString(t *testing.T) {
	assert.Equal(t, "/src/flight", RootSpec{RootDir: "/src/flight"}.String())
	assert.Equal(t, "/src/flight::Flight", RootSpec{RootDir: "/src/flight", AppName: "Flight"}.String())
}
