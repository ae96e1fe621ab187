// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tokenizer

import (
	"fmt"
	"strings"
)

// Mode selects what a token's value carries.
type Mode int

const (
	// Raw emits the literal configuration value.
	Raw Mode = iota
	// Tokenized emits a placeholder naming the token.
	Tokenized
)

func (m Mode) String() string {
	if m == Tokenized {
		return "tokenized"
	}
	return "raw"
}

// ParseMode maps "raw" and "tokenized" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "raw":
		return Raw, nil
	case "tokenized":
		return Tokenized, nil
	}
	return Raw, fmt.Errorf("unknown mode %q (want raw or tokenized)", s)
}

// Style is the placeholder syntax of Tokenized mode.
type Style int

const (
	// Underscore renders __name__, the manifest form.
	Underscore Style = iota
	// Dollar renders ${name}, the configuration file form.
	Dollar
)

// Placeholder renders the placeholder for a token name.
func (s Style) Placeholder(name string) string {
	if s == Dollar {
		return "${" + name + "}"
	}
	return "__" + name + "__"
}

// ParseStyle maps "underscore" and "dollar" to a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(s) {
	case "underscore", "__":
		return Underscore, nil
	case "dollar", "$":
		return Dollar, nil
	}
	return Underscore, fmt.Errorf("unknown placeholder style %q (want underscore or dollar)", s)
}

// Token is one environment variable derived from a configuration leaf.
type Token struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Options tunes Extract.
type Options struct {
	Mode  Mode
	Style Style
	// IncludeExceptions emits excluded fields flagged for the spreadsheet,
	// always with their literal value.
	IncludeExceptions bool
}
