// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeafPath(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		wire     string
		typeName string
		want     string
	}{
		{"plain", "log.console.", "minimumLevel", "Console", "log.console.minimumLevel"},
		{"root", "", "allowedHosts", "", "allowedHosts"},
		{"parameter value", "events.evt1.parameters.Foo.", "value", ParameterType, "events.evt1.parameters.Foo"},
		{"parameter value any case", "p.Foo.", "Value", ParameterType, "p.Foo"},
		{"parameter other field", "p.Foo.", "note", ParameterType, "p.Foo.note"},
		{"value outside parameter", "p.Foo.", "value", "Other", "p.Foo.value"},
		{"parameter value without dot", "", "value", ParameterType, "value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LeafPath(tt.prefix, tt.wire, tt.typeName))
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, wire := range []string{"id", "ID", "Id", "key", "KEY"} {
		assert.True(t, IsIdentifier(wire), wire)
	}
	for _, wire := range []string{"ids", "keyName", "value", ""} {
		assert.False(t, IsIdentifier(wire), wire)
	}
}

func TestStyleAndMode(t *testing.T) {
	assert.Equal(t, "__a.b__", Underscore.Placeholder("a.b"))
	assert.Equal(t, "${a.b}", Dollar.Placeholder("a.b"))

	m, err := ParseMode("Tokenized")
	assert.NoError(t, err)
	assert.Equal(t, Tokenized, m)
	assert.Equal(t, "tokenized", m.String())

	_, err = ParseMode("json")
	assert.Error(t, err)

	s, err := ParseStyle("dollar")
	assert.NoError(t, err)
	assert.Equal(t, Dollar, s)

	_, err = ParseStyle("percent")
	assert.Error(t, err)
}
