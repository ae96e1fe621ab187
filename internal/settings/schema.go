// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed appsettings.schema.yaml
var defaultSchema []byte

// Scalar field type names. Any other type name refers to a schema type.
const (
	TypeString = "string"
	TypeNumber = "number"
	TypeBool   = "bool"
)

// Schema is the per-field policy table describing the known configuration
// model. Types not described load generically with the zero policy.
type Schema struct {
	Root  string               `yaml:"root"`
	Types map[string]*TypeSpec `yaml:"types"`
}

// TypeSpec describes one object type.
type TypeSpec struct {
	// Frozen types are never tokenized; their subtree is carried verbatim.
	Frozen bool `yaml:"frozen"`
	// Extension collects unknown members into an ordered bag.
	Extension bool        `yaml:"extension"`
	Fields    []FieldSpec `yaml:"fields"`
}

// FieldSpec describes one field of a TypeSpec.
type FieldSpec struct {
	Name           string `yaml:"name"`
	Type           string `yaml:"type"`
	List           bool   `yaml:"list"`
	OmitEmpty      bool   `yaml:"omitEmpty"`
	Exclude        bool   `yaml:"exclude"`
	IncludeOnSheet bool   `yaml:"includeOnSheet"`
	Ignore         bool   `yaml:"ignore"`
}

// Policy returns the traversal policy of the field.
func (fs FieldSpec) Policy() Policy {
	return Policy{
		Exclude:        fs.Exclude,
		IncludeOnSheet: fs.IncludeOnSheet,
		OmitEmpty:      fs.OmitEmpty,
		Ignore:         fs.Ignore,
	}
}

// IsScalarType reports whether name is one of the scalar type names.
func IsScalarType(name string) bool {
	switch name {
	case TypeString, TypeNumber, TypeBool:
		return true
	}
	return false
}

// DefaultSchema returns the built-in schema of the service appsettings model.
func DefaultSchema() *Schema {
	s, err := ParseSchema(defaultSchema)
	if err != nil {
		panic(fmt.Sprintf("built-in schema: %v", err))
	}
	return s
}

// ParseSchema decodes and validates a YAML schema document.
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSchema reads a schema file. An empty path selects the built-in schema.
func LoadSchema(path string) (*Schema, error) {
	if path == "" {
		return DefaultSchema(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	s, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Type returns the spec of an object type, or nil for scalar and unknown
// names. A nil schema describes nothing.
func (s *Schema) Type(name string) *TypeSpec {
	if s == nil || name == "" {
		return nil
	}
	return s.Types[name]
}

// Validate reports structural defects: a missing root type, duplicate field
// names and references to undeclared types.
func (s *Schema) Validate() error {
	var errs []error

	if s.Root == "" {
		errs = append(errs, errors.New("schema has no root type"))
	} else if s.Types[s.Root] == nil {
		errs = append(errs, fmt.Errorf("root type %q is not declared", s.Root))
	}

	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := s.Types[name]
		if spec == nil {
			errs = append(errs, fmt.Errorf("type %q is empty", name))
			continue
		}
		seen := map[string]bool{}
		for _, fs := range spec.Fields {
			if fs.Name == "" {
				errs = append(errs, fmt.Errorf("type %q has a field without a name", name))
				continue
			}
			if seen[fs.Name] {
				errs = append(errs, fmt.Errorf("type %q declares field %q twice", name, fs.Name))
			}
			seen[fs.Name] = true
			if fs.Type != "" && !IsScalarType(fs.Type) && s.Types[fs.Type] == nil {
				errs = append(errs, fmt.Errorf("field %s.%s refers to undeclared type %q", name, fs.Name, fs.Type))
			}
		}
	}

	return errors.Join(errs...)
}
