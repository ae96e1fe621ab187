// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// cases decodes the table of a testdata file.
func cases[T any](t *testing.T, file string) []T {
	t.Helper()
	data, err := testDataFS.ReadFile("testdata/" + file)
	require.NoError(t, err)

	var out []T
	require.NoError(t, yaml.Unmarshal(data, &out))
	require.NotEmpty(t, out, file)
	return out
}

func TestAttrList_Set(t *testing.T) {
	type tc struct {
		Name      string `yaml:"name"`
		Initial   []Attr `yaml:"initial"`
		Value     string `yaml:"value"`
		WantLen   int    `yaml:"wantLen"`
		WantAttrs []Attr `yaml:"wantAttrs"`
		WantErr   bool   `yaml:"wantErr"`
	}

	for _, tt := range cases[tc](t, "set_cases.yaml") {
		t.Run(tt.Name, func(t *testing.T) {
			list := AttrList(tt.Initial)
			err := list.Set(tt.Value)
			if tt.WantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, list, tt.WantLen)
			for i, want := range tt.WantAttrs {
				assert.Equal(t, want, list[i], "attr %d", i)
			}
		})
	}
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	type tc struct {
		Name      string   `yaml:"name"`
		Initial   []Attr   `yaml:"initial"`
		WantSpecs []string `yaml:"wantSpecs"`
	}

	for _, tt := range cases[tc](t, "global_transform_cases.yaml") {
		t.Run(tt.Name, func(t *testing.T) {
			list := AttrList(tt.Initial)
			require.NoError(t, list.SetGlobalTransformSpec())

			specs := make([]string, 0, len(list))
			for _, a := range list {
				specs = append(specs, a.TransformSpec)
			}
			assert.Equal(t, tt.WantSpecs, specs)
		})
	}
}

func TestAttr_Transform(t *testing.T) {
	type tc struct {
		Name          string      `yaml:"name"`
		TransformSpec string      `yaml:"transformSpec"`
		Input         interface{} `yaml:"input"`
		Want          interface{} `yaml:"want"`
	}

	for _, tt := range cases[tc](t, "transform_cases.yaml") {
		t.Run(tt.Name, func(t *testing.T) {
			attr := Attr{TransformSpec: tt.TransformSpec}
			assert.Equal(t, tt.Want, attr.Transform(tt.Input))
		})
	}
}

// A global mask applies to every column, and a column's own case flag wins
// over the global one.
func TestAttrList_GlobalMask(t *testing.T) {
	list := AttrList{
		{Key: "name", OutputKey: "name", Include: true},
		{Key: "value", OutputKey: "value", Include: true},
	}
	require.NoError(t, list.Set("*::mu,name::l"))
	require.NoError(t, list.SetGlobalTransformSpec())

	assert.Equal(t, "even********", list[0].Transform("Events.Topic"))
	assert.Equal(t, "ENDP******", list[1].Transform("Endpoint=k"))
}

func TestAttrList_String(t *testing.T) {
	type tc struct {
		Name     string `yaml:"name"`
		AttrList []Attr `yaml:"attrList"`
		Want     string `yaml:"want"`
	}

	for _, tt := range cases[tc](t, "string_cases.yaml") {
		list := AttrList(tt.AttrList)
		assert.Equal(t, tt.Want, list.String(), tt.Name)
	}
	assert.Equal(t, "list", (&AttrList{}).Type())
}
