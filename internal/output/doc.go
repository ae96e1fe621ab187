// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output lists tokens. Tokens become JSON rows (see Row) which are
// filtered, transformed, sorted and emitted as a text table, JSON, YAML or
// the raw rows. DumpSchema prints the field paths of a settings schema.
package output
