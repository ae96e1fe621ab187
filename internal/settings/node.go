// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"strings"
)

// Kind discriminates the Node variants.
type Kind int

const (
	KindScalar Kind = iota
	KindObject
	KindList
	KindExtension
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	case KindExtension:
		return "extension"
	}
	return "unknown"
}

// ScalarType is the JSON type of a scalar node.
type ScalarType int

const (
	Null ScalarType = iota
	String
	Number
	Bool
)

// Policy controls how a field takes part in token extraction and export.
// The zero value is a plain tokenizable field.
type Policy struct {
	// Exclude keeps the field out of tokenization entirely.
	Exclude bool
	// IncludeOnSheet emits an excluded field literally when the caller asks
	// for policy exceptions (spreadsheet export).
	IncludeOnSheet bool
	// OmitEmpty skips the field when its value is null or blank.
	OmitEmpty bool
	// Ignore drops the field from every output.
	Ignore bool
}

// Node is one value of the configuration tree.
//
// Scalars carry Scalar and Text; objects carry ordered Fields; lists carry
// ordered Items; the extension bag carries its entries as Fields in document
// order. Raw is the compact JSON text of the value as loaded.
type Node struct {
	Kind     Kind
	TypeName string
	Frozen   bool
	Scalar   ScalarType
	Text     string
	Fields   []*Field
	Items    []*Node
	Raw      string
}

// Field is a named member of an object or extension bag.
type Field struct {
	// Wire is the serialized (JSON) name. The extension bag of an object is
	// held as a field with an empty Wire.
	Wire   string
	Type   string
	Policy Policy
	Node   *Node
}

// IsNull reports whether n is missing or an explicit JSON null.
func (n *Node) IsNull() bool {
	return n == nil || (n.Kind == KindScalar && n.Scalar == Null)
}

// IsBlank reports whether n is null or a whitespace-only string.
func (n *Node) IsBlank() bool {
	if n.IsNull() {
		return true
	}
	return n.Kind == KindScalar && n.Scalar == String && strings.TrimSpace(n.Text) == ""
}

// Value returns the literal text of n: the scalar text for scalars and the
// compact JSON for everything else.
func (n *Node) Value() string {
	if n == nil {
		return ""
	}
	if n.Kind == KindScalar {
		return n.Text
	}
	return n.Raw
}

// Field returns the field named wire, matching case-insensitively when no
// exact match exists. On an object the extension bag is not searched; call
// Field on the bag itself for that.
func (n *Node) Field(wire string) *Field {
	if n == nil || (n.Kind != KindObject && n.Kind != KindExtension) {
		return nil
	}
	var fold *Field
	for _, f := range n.Fields {
		if f.Wire == "" {
			continue
		}
		if f.Wire == wire {
			return f
		}
		if fold == nil && strings.EqualFold(f.Wire, wire) {
			fold = f
		}
	}
	return fold
}

// Extension returns the extension bag of an object, or nil.
func (n *Node) Extension() *Node {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	for _, f := range n.Fields {
		if f.Wire == "" && f.Node != nil && f.Node.Kind == KindExtension {
			return f.Node
		}
	}
	return nil
}

// Get walks a chain of field names from n and returns the node found, or nil.
func (n *Node) Get(names ...string) *Node {
	current := n
	for _, name := range names {
		f := current.Field(name)
		if f == nil {
			return nil
		}
		current = f.Node
	}
	return current
}

// GetString is Get followed by Value, returning "" when absent.
func (n *Node) GetString(names ...string) string {
	return n.Get(names...).Value()
}
