// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SourceIndex answers text queries over the service's source files.
type SourceIndex interface {
	// Contains reports whether any source file contains text.
	Contains(text string) bool
	// FilesContaining returns the contents of the source files containing
	// text.
	FilesContaining(text string) []string
}

// ValidateOptions selects the checks run by Validate.
type ValidateOptions struct {
	Schema *Schema
	// RequireEvents fails configurations without events (consumers).
	RequireEvents bool
	// RequireSchedule fails configurations without k8s.schedule (cron jobs).
	RequireSchedule bool
	// Sources enables the checks binding service clients and events to
	// code. Nil skips them.
	Sources SourceIndex
}

// ValidationErrors is the list of problems found by Validate.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

var nameofPattern = regexp.MustCompile(`nameof\(([^)]+)\)`)

// Validate checks a loaded configuration before generation. It returns nil
// or a ValidationErrors carrying every problem found.
func Validate(ctx context.Context, root *Node, opts ValidateOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if root == nil || root.Kind != KindObject {
		return ErrNoRoot
	}

	v := &validator{opts: opts}
	v.serviceClients(root)
	if opts.Schema != nil {
		v.required(root, opts.Schema.Type(opts.Schema.Root), "")
	}
	v.identifiers(root, "")
	v.events(root)

	if opts.RequireSchedule && strings.TrimSpace(Schedule(root)) == "" {
		v.add("cron jobs must define %q at the root", FieldSchedule)
	}

	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

type validator struct {
	opts ValidateOptions
	errs ValidationErrors
}

func (v *validator) add(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *validator) serviceClients(root *Node) {
	ids := ServiceClientIDs(root)
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			v.add("service client id %q is declared more than once", id)
			return
		}
		seen[id] = true
	}

	if v.opts.Sources == nil {
		return
	}
	for _, id := range ids {
		if !v.opts.Sources.Contains(fmt.Sprintf("public override string ServiceClientId => %q;", id)) {
			v.add("service client %q is not bound by any ServiceClientId override", id)
		}
	}
}

// required walks the declared types and reports missing or empty values of
// fields that are not omit-empty. Missing booleans default to false and are
// accepted; numbers must not be zero.
func (v *validator) required(node *Node, spec *TypeSpec, path string) {
	if node == nil || node.Kind != KindObject || spec == nil {
		return
	}

	for _, fs := range spec.Fields {
		if fs.Ignore || IsIdentifier(fs.Name) {
			continue
		}
		name := join(path, fs.Name)

		f := node.Field(fs.Name)
		if f == nil || f.Node.IsBlank() {
			if fs.OmitEmpty || (f == nil && fs.Type == TypeBool) {
				continue
			}
			v.add("property %s is null or empty", name)
			continue
		}

		child := f.Node
		switch {
		case fs.List:
			for _, item := range child.Items {
				v.required(item, v.opts.Schema.Type(fs.Type), name)
			}
		case fs.Type == TypeNumber:
			if n, err := strconv.ParseFloat(child.Text, 64); err == nil && n == 0 {
				v.add("property %s is zero", name)
			}
		default:
			v.required(child, v.opts.Schema.Type(fs.Type), name)
		}
	}
}

// identifiers reports id and key fields without a value where they would
// name a token path segment. It visits the fields token extraction visits:
// extension bags, frozen nodes and ignored or excluded fields carry no
// identifier context.
func (v *validator) identifiers(node *Node, path string) {
	if node == nil || node.Frozen {
		return
	}
	switch node.Kind {
	case KindList:
		for _, item := range node.Items {
			v.identifiers(item, path)
		}
	case KindObject:
		for _, f := range node.Fields {
			child := f.Node
			if child == nil || child.Kind == KindExtension || child.Frozen {
				continue
			}
			if f.Policy.Ignore || f.Policy.Exclude || (f.Policy.OmitEmpty && child.IsBlank()) {
				continue
			}
			name := join(path, f.Wire)
			if IsIdentifier(f.Wire) && child.IsBlank() {
				v.add("identifier %s is empty", name)
				continue
			}
			v.identifiers(child, name)
		}
	}
}

func (v *validator) events(root *Node) {
	events := root.Get(FieldEvents)
	if events.IsNull() || (events.Kind == KindList && len(events.Items) == 0) {
		if v.opts.RequireEvents {
			v.add("consumers must define at least one event")
		}
		return
	}

	if v.opts.Sources == nil {
		return
	}
	for _, e := range Events(root) {
		if e.ID == "" || !v.eventBound(e.ID) {
			v.add("event %q is not bound to any publisher or subscriber", e.ID)
		}
	}
}

func (v *validator) eventBound(id string) bool {
	for _, src := range v.opts.Sources.FilesContaining(id) {
		if strings.Contains(src, fmt.Sprintf("public override string ConnectionId = %s;", id)) {
			return true
		}
		for _, m := range nameofPattern.FindAllStringSubmatch(src, -1) {
			if m[1] == id {
				return true
			}
		}
	}
	return false
}
