// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package tokenizer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/jsonc"

	"github.com/deploygen/deploygen/internal/settings"
)

func document(t *testing.T, root *settings.Node, opts DocumentOptions) string {
	t.Helper()
	out, err := Document(context.Background(), root, opts)
	require.NoError(t, err)
	return string(out)
}

func TestDocument_EndToEnd(t *testing.T) {
	root := loadRoot(t, `{"log":{"console":{"minimumLevel":"Information"}},"apiSettings":{"showDetailedException":true}}`, settings.DefaultSchema())

	got := document(t, root, DocumentOptions{Mode: Tokenized, Style: Dollar})
	assert.JSONEq(t, `{"log":{"console":{"minimumLevel":"${log.console.minimumLevel}"}},"apiSettings":{"showDetailedException":"${apiSettings.showDetailedException}"}}`, got)
}

func TestDocument_TokenizedFixture(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "appsettings.docker.json"))
	require.NoError(t, err)

	got := document(t, fixtureRoot(t), DocumentOptions{Mode: Tokenized, Style: Dollar})
	assert.JSONEq(t, string(want), got)

	// Field order follows the tree, extension entries last.
	order := []string{`"log"`, `"apiSettings"`, `"swaggerDoc"`, `"connectionSettings"`, `"serviceClients"`, `"k8s.schedule"`, `"featureFlags"`, `"allowedHosts"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(got, key)
		require.Greater(t, idx, last, key)
		last = idx
	}
	assert.True(t, strings.HasPrefix(got, "{\n  \"log\": {\n"), "two-space indentation")
}

func TestDocument_RawMirrorsInput(t *testing.T) {
	input, err := os.ReadFile(filepath.Join("testdata", "appsettings.json"))
	require.NoError(t, err)

	got := document(t, fixtureRoot(t), DocumentOptions{Mode: Raw})
	assert.JSONEq(t, string(jsonc.ToJSON(input)), got)
}

func TestDocument_Literals(t *testing.T) {
	root := loadRoot(t, `{"connectionSettings":[{"id":"A","connectionString":"a&b<c>","databaseName":null}],"tags":["x",1]}`, settings.DefaultSchema())

	raw := document(t, root, DocumentOptions{Mode: Raw})
	assert.Contains(t, raw, `"a&b<c>"`)
	assert.JSONEq(t, `{"connectionSettings":[{"id":"A","connectionString":"a&b<c>"}],"tags":["x",1]}`, raw)

	tokenized := document(t, root, DocumentOptions{Mode: Tokenized, Style: Underscore})
	assert.JSONEq(t, `{"connectionSettings":[{"id":"A","connectionString":"__connectionSettings.A.connectionString__"}],"tags":"__tags__"}`, tokenized)
}

func TestDocument_GenericLists(t *testing.T) {
	root := loadRoot(t, `{"hosts":["a","b"],"empty":[],"items":[{"key":"k","value":"v"}]}`, nil)

	got := document(t, root, DocumentOptions{Mode: Tokenized, Style: Dollar})
	assert.JSONEq(t, `{"hosts":["${hosts}","${hosts}"],"empty":[],"items":[{"key":"k","value":"${items.k.value}"}]}`, got)
}

func TestDocument_Errors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Document(ctx, fixtureRoot(t), DocumentOptions{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Document(context.Background(), &settings.Node{Kind: settings.KindList}, DocumentOptions{})
	assert.ErrorIs(t, err, settings.ErrNoRoot)
}
