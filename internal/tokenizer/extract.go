// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tokenizer

import (
	"context"

	"github.com/deploygen/deploygen/internal/log"
	"github.com/deploygen/deploygen/internal/settings"
)

// Extract flattens a configuration tree into tokens named by dot path, in
// field order.
//
// Frozen nodes and ignored fields never produce tokens. Omit-empty fields
// holding null or blank values are skipped. Excluded fields produce a token
// only when opts.IncludeExceptions is set and the field is flagged for the
// spreadsheet, and then always carry the literal value. Identifier fields
// produce no token; their value names the following siblings. List indices
// never appear in names.
func Extract(ctx context.Context, root *settings.Node, opts Options) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if root == nil || root.Kind != settings.KindObject {
		return nil, settings.ErrNoRoot
	}

	w := &walker{opts: opts}
	w.object(root, "")
	log.Tracef("extracted %d %s tokens", len(w.tokens), opts.Mode)
	return w.tokens, nil
}

type walker struct {
	opts   Options
	tokens []Token
}

func (w *walker) emit(name, value string) {
	if w.opts.Mode == Tokenized {
		value = w.opts.Style.Placeholder(name)
	}
	w.tokens = append(w.tokens, Token{Name: name, Value: value})
}

func (w *walker) object(n *settings.Node, prefix string) {
	if n.Frozen {
		return
	}

	for _, f := range n.Fields {
		v := f.Node
		if v == nil {
			continue
		}
		if v.Kind == settings.KindExtension {
			w.extension(v, prefix)
			continue
		}
		if f.Policy.Ignore || v.Frozen {
			continue
		}
		if f.Policy.OmitEmpty && v.IsBlank() {
			continue
		}
		if f.Policy.Exclude {
			if w.opts.IncludeExceptions && f.Policy.IncludeOnSheet {
				w.tokens = append(w.tokens, Token{Name: prefix + f.Wire, Value: v.Value()})
			}
			continue
		}
		if IsIdentifier(f.Wire) {
			prefix += identifierSegment(v)
			continue
		}

		switch v.Kind {
		case settings.KindScalar:
			w.emit(LeafPath(prefix, f.Wire, n.TypeName), v.Text)
		case settings.KindObject:
			w.object(v, prefix+f.Wire+".")
		case settings.KindList:
			w.list(v, prefix+f.Wire)
		}
	}
}

// list visits the items of a list found at path. Scalar items are named
// after the list itself.
func (w *walker) list(n *settings.Node, path string) {
	for _, item := range n.Items {
		switch item.Kind {
		case settings.KindScalar:
			w.emit(path, item.Text)
		case settings.KindObject:
			w.object(item, path+".")
		case settings.KindList:
			w.list(item, path)
		}
	}
}

// extension visits an extension bag. Its keys join the enclosing prefix;
// nested objects recurse and every other value is a leaf.
func (w *walker) extension(bag *settings.Node, prefix string) {
	for _, f := range bag.Fields {
		w.extValue(f.Node, prefix+f.Wire)
	}
}

func (w *walker) extValue(n *settings.Node, path string) {
	if n.Kind == settings.KindObject {
		for _, f := range n.Fields {
			w.extValue(f.Node, path+"."+f.Wire)
		}
		return
	}
	w.emit(path, n.Value())
}
