// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"

	"github.com/deploygen/deploygen/internal/settings"
)

// schemaTag is one field discovered while walking the settings schema
// (--schema flag).
type schemaTag struct {
	Kind     string
	Name     string
	Encoding string
}

// newTag builds the tag of a field below holder.
func newTag(holder string, fs settings.FieldSpec) schemaTag {
	tag := schemaTag{Name: fs.Name, Encoding: fs.Type}
	if holder != "" {
		tag.Name = holder + "." + fs.Name
	}
	if fs.List {
		tag.Encoding = "[]" + fs.Type
	}

	var kinds []string
	if fs.Exclude {
		kinds = append(kinds, "exclude")
	}
	if fs.IncludeOnSheet {
		kinds = append(kinds, "sheet")
	}
	if fs.OmitEmpty {
		kinds = append(kinds, "omitEmpty")
	}
	if fs.Ignore {
		kinds = append(kinds, "ignore")
	}
	tag.Kind = strings.Join(kinds, ",")

	return tag
}

// print renders the tag into its display form.
func (t schemaTag) print() string {
	parts := []string{t.Name, t.Encoding}
	if t.Kind != "" {
		parts = append(parts, "("+t.Kind+")")
	}
	return strings.Join(parts, " ")
}

// maxSchemaDepth limits the depth of schema walking to prevent infinite
// recursion through self-referencing types.
const maxSchemaDepth = 8

// DumpSchema writes a sorted list of the field paths the schema describes to
// w. If w is nil, os.Stdout is used.
func DumpSchema(schema *settings.Schema, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Field paths described by the settings schema. Fields not listed load with
the default policy and are tokenized.`)
	fmt.Fprintln(w, "")

	tags := dumpSchemaWalker(schema, "", schema.Root, 0)
	if len(tags) == 0 {
		log.Debugf("no fields found for root type: %s", schema.Root)
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	for _, tag := range tags {
		fmt.Fprintln(w, tag.print())
	}
}

// dumpSchemaWalker recursively walks a schema type discovering its fields.
func dumpSchemaWalker(schema *settings.Schema, holder, typeName string, depth int) []schemaTag {
	tags := make([]schemaTag, 0)

	spec := schema.Type(typeName)
	if spec == nil {
		return tags
	}
	if spec.Extension {
		tags = append(tags, schemaTag{Name: join(holder, "*"), Encoding: "any", Kind: "extension"})
	}

	for _, fs := range spec.Fields {
		tag := newTag(holder, fs)
		tags = append(tags, tag)

		if settings.IsScalarType(fs.Type) || depth >= maxSchemaDepth {
			continue
		}
		if sub := schema.Type(fs.Type); sub != nil && sub.Frozen {
			log.Debugf("frozen type: %s at %s", fs.Type, tag.Name)
			continue
		}
		tags = append(tags, dumpSchemaWalker(schema, tag.Name, fs.Type, depth+1)...)
	}

	return tags
}

func join(holder, name string) string {
	if holder == "" {
		return name
	}
	return holder + "." + name
}
