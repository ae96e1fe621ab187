// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package settings loads a service configuration document (appsettings.json)
// into an ordered tree of Nodes and attaches a Policy to every field.
//
// Policies come from a Schema, a YAML table describing the known object
// types: their fields in output order, which fields are excluded from
// tokenization, which are omitted when empty, which types are frozen, and
// which types collect unknown members into an extension bag. The built-in
// schema describes the service appsettings model; any other model can be
// described by a custom schema, and without a schema every value loads
// generically.
//
// Values that do not match their declared shape are reported as Issues and
// left out of the tree. Validate runs the pre-generation checks and returns
// every problem at once as ValidationErrors.
package settings
