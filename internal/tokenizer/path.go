// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tokenizer

import (
	"strings"

	"github.com/deploygen/deploygen/internal/settings"
)

// ParameterType is the key/value record type whose value takes the name of
// its key.
const ParameterType = "Parameter"

// IsIdentifier reports whether a field names its siblings instead of
// producing a token.
func IsIdentifier(wire string) bool {
	return settings.IsIdentifier(wire)
}

// LeafPath is the token name of a scalar field. Inside a Parameter the value
// field drops its own segment, so the token is named after the key.
func LeafPath(prefix, wire, typeName string) string {
	path := prefix + wire
	if typeName == ParameterType && strings.EqualFold(wire, "value") {
		if i := strings.LastIndex(path, "."); i >= 0 {
			path = path[:i]
		}
	}
	return path
}

// identifierSegment is the prefix extension contributed by an identifier.
// An empty identifier yields a bare ".", which Validate reports.
func identifierSegment(n *settings.Node) string {
	return n.Value() + "."
}
