// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tokenizer

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/tidwall/pretty"

	"github.com/deploygen/deploygen/internal/settings"
)

// DocumentOptions tunes Document.
type DocumentOptions struct {
	Mode  Mode
	Style Style
}

// Document renders the configuration tree back to JSON with the original
// nesting and field order.
//
// In Tokenized mode every tokenizable leaf is replaced by the placeholder of
// its token name. Identifier values, excluded fields and frozen subtrees keep
// their literal values. Extension entries are merged into the enclosing
// object. In Raw mode the whole tree is literal. Output is indented by two
// spaces.
func Document(ctx context.Context, root *settings.Node, opts DocumentOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if root == nil || root.Kind != settings.KindObject {
		return nil, settings.ErrNoRoot
	}

	m := &mirror{opts: opts}
	out, err := encode(m.object(root, "", opts.Mode == Raw))
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(out), nil
}

type mirror struct {
	opts DocumentOptions
}

func (m *mirror) placeholder(name string) string {
	return m.opts.Style.Placeholder(name)
}

func (m *mirror) object(n *settings.Node, prefix string, literal bool) object {
	literal = literal || n.Frozen
	out := object{}

	for _, f := range n.Fields {
		v := f.Node
		if v == nil {
			continue
		}
		if v.Kind == settings.KindExtension {
			out = append(out, m.extension(v, prefix, literal)...)
			continue
		}
		if f.Policy.Ignore {
			continue
		}
		if f.Policy.OmitEmpty && v.IsBlank() {
			continue
		}
		if literal || f.Policy.Exclude || v.Frozen {
			out = append(out, member{f.Wire, m.literal(v)})
			continue
		}
		if IsIdentifier(f.Wire) {
			out = append(out, member{f.Wire, json.RawMessage(v.Raw)})
			prefix += identifierSegment(v)
			continue
		}

		switch v.Kind {
		case settings.KindScalar:
			out = append(out, member{f.Wire, m.placeholder(LeafPath(prefix, f.Wire, n.TypeName))})
		case settings.KindObject:
			out = append(out, member{f.Wire, m.object(v, prefix+f.Wire+".", false)})
		case settings.KindList:
			out = append(out, member{f.Wire, m.list(v, prefix+f.Wire)})
		}
	}
	return out
}

func (m *mirror) list(n *settings.Node, path string) []any {
	items := make([]any, 0, len(n.Items))
	for _, item := range n.Items {
		switch item.Kind {
		case settings.KindScalar:
			items = append(items, m.placeholder(path))
		case settings.KindObject:
			items = append(items, m.object(item, path+".", false))
		case settings.KindList:
			items = append(items, m.list(item, path))
		}
	}
	return items
}

func (m *mirror) literal(n *settings.Node) any {
	switch n.Kind {
	case settings.KindObject:
		return m.object(n, "", true)
	case settings.KindList:
		items := make([]any, 0, len(n.Items))
		for _, item := range n.Items {
			items = append(items, m.literal(item))
		}
		return items
	default:
		return json.RawMessage(n.Raw)
	}
}

func (m *mirror) extension(bag *settings.Node, prefix string, literal bool) []member {
	members := make([]member, 0, len(bag.Fields))
	for _, f := range bag.Fields {
		if literal {
			members = append(members, member{f.Wire, m.literal(f.Node)})
			continue
		}
		members = append(members, member{f.Wire, m.extValue(f.Node, prefix+f.Wire)})
	}
	return members
}

func (m *mirror) extValue(n *settings.Node, path string) any {
	if n.Kind != settings.KindObject {
		return m.placeholder(path)
	}
	out := object{}
	for _, f := range n.Fields {
		out = append(out, member{f.Wire, m.extValue(f.Node, path+"."+f.Wire)})
	}
	return out
}

// object is a JSON object that keeps member order.
type object []member

type member struct {
	key   string
	value any
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, mb := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encode(mb.key)
		if err != nil {
			return nil, err
		}
		value, err := encode(mb.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encode marshals without HTML escaping; connection strings keep their '&'.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
