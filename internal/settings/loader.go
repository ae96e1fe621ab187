// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
)

var (
	// ErrInvalidJSON is returned when the input is not JSON, even after
	// comments and trailing commas are removed.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrNoRoot is returned when the document root is not an object.
	ErrNoRoot = errors.New("configuration root is not an object")
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Issue is a non-fatal problem found while loading: a value whose shape does
// not match its declared type, or an unknown member of a closed type. The
// offending field is left out of the tree.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// Document is a loaded configuration tree.
type Document struct {
	Source string
	Root   *Node
	Issues []Issue
}

// LoadFile reads and loads the configuration at path.
func LoadFile(path string, schema *Schema) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Load(data, schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// Load builds the configuration tree from JSON (comments and trailing commas
// allowed). Members of schema types are placed in declaration order with
// their policies; everything else keeps document order.
func Load(data []byte, schema *Schema) (*Document, error) {
	clean := jsonc.ToJSON(bytes.TrimPrefix(data, utf8BOM))
	if !gjson.ValidBytes(clean) {
		return nil, ErrInvalidJSON
	}

	res := gjson.ParseBytes(clean)
	if !res.IsObject() {
		return nil, ErrNoRoot
	}

	l := &loader{schema: schema}
	rootType := ""
	if schema != nil {
		rootType = schema.Root
	}

	return &Document{Root: l.object(res, rootType, ""), Issues: l.issues}, nil
}

type loader struct {
	schema *Schema
	issues []Issue
}

type member struct {
	key   string
	value gjson.Result
	used  bool
}

func (l *loader) warn(path, format string, args ...any) {
	l.issues = append(l.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (l *loader) object(v gjson.Result, typeName, path string) *Node {
	node := &Node{Kind: KindObject, Raw: compact(v.Raw)}

	var members []*member
	v.ForEach(func(k, val gjson.Result) bool {
		members = append(members, &member{key: k.String(), value: val})
		return true
	})

	spec := l.schema.Type(typeName)
	if spec == nil {
		for _, m := range members {
			node.Fields = append(node.Fields, &Field{Wire: m.key, Node: l.generic(m.value, join(path, m.key))})
		}
		return node
	}

	node.TypeName = typeName
	node.Frozen = spec.Frozen

	for _, fs := range spec.Fields {
		m := match(members, fs.Name)
		if m == nil {
			continue
		}
		m.used = true

		child := l.typed(m.value, fs, join(path, fs.Name))
		if child == nil {
			continue
		}
		node.Fields = append(node.Fields, &Field{Wire: fs.Name, Type: fs.Type, Policy: fs.Policy(), Node: child})
	}

	var bag *Node
	var entries []string
	for _, m := range members {
		if m.used {
			continue
		}
		if !spec.Extension {
			l.warn(join(path, m.key), "unknown field of %s ignored", typeName)
			continue
		}
		if bag == nil {
			bag = &Node{Kind: KindExtension}
		}
		child := l.generic(m.value, join(path, m.key))
		bag.Fields = append(bag.Fields, &Field{Wire: m.key, Node: child})
		key, _ := json.Marshal(m.key)
		entries = append(entries, string(key)+":"+child.Raw)
	}
	if bag != nil {
		bag.Raw = "{" + strings.Join(entries, ",") + "}"
		node.Fields = append(node.Fields, &Field{Node: bag})
	}

	return node
}

// typed loads the value of a declared field. It returns nil when the value
// does not have the declared shape.
func (l *loader) typed(v gjson.Result, fs FieldSpec, path string) *Node {
	if !fs.List {
		return l.element(v, fs.Type, path)
	}

	if v.Type == gjson.Null {
		return scalar(v)
	}
	if !v.IsArray() {
		l.warn(path, "expected a list, found %s", describe(v))
		return nil
	}
	list := &Node{Kind: KindList, Raw: compact(v.Raw)}
	for i, item := range v.Array() {
		if child := l.element(item, fs.Type, fmt.Sprintf("%s[%d]", path, i)); child != nil {
			list.Items = append(list.Items, child)
		}
	}
	return list
}

func (l *loader) element(v gjson.Result, typeName, path string) *Node {
	switch {
	case v.Type == gjson.Null:
		n := scalar(v)
		if spec := l.schema.Type(typeName); spec != nil {
			n.TypeName = typeName
			n.Frozen = spec.Frozen
		}
		return n
	case IsScalarType(typeName):
		if v.IsObject() || v.IsArray() {
			l.warn(path, "expected %s, found %s", typeName, describe(v))
			return nil
		}
		return scalar(v)
	case l.schema.Type(typeName) != nil:
		if !v.IsObject() {
			l.warn(path, "expected %s object, found %s", typeName, describe(v))
			return nil
		}
		return l.object(v, typeName, path)
	default:
		return l.generic(v, path)
	}
}

func (l *loader) generic(v gjson.Result, path string) *Node {
	switch {
	case v.IsObject():
		return l.object(v, "", path)
	case v.IsArray():
		list := &Node{Kind: KindList, Raw: compact(v.Raw)}
		for i, item := range v.Array() {
			list.Items = append(list.Items, l.generic(item, fmt.Sprintf("%s[%d]", path, i)))
		}
		return list
	default:
		return scalar(v)
	}
}

func scalar(v gjson.Result) *Node {
	n := &Node{Kind: KindScalar, Raw: v.Raw}
	switch v.Type {
	case gjson.String:
		n.Scalar = String
		n.Text = v.String()
	case gjson.Number:
		n.Scalar = Number
		n.Text = v.Raw
	case gjson.True, gjson.False:
		n.Scalar = Bool
		n.Text = v.String()
	default:
		n.Scalar = Null
		n.Raw = "null"
	}
	return n
}

// match finds the unused member named key, exact match first.
func match(members []*member, key string) *member {
	for _, m := range members {
		if !m.used && m.key == key {
			return m
		}
	}
	for _, m := range members {
		if !m.used && strings.EqualFold(m.key, key) {
			return m
		}
	}
	return nil
}

func describe(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "object"
	case v.IsArray():
		return "list"
	case v.Type == gjson.String:
		return "string"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.True, v.Type == gjson.False:
		return "bool"
	}
	return "null"
}

func compact(raw string) string {
	return string(pretty.Ugly([]byte(raw)))
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
