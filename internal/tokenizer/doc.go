// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package tokenizer derives environment variable names from a configuration
// tree and renders them as a flat token list (Extract) or as a tokenized
// copy of the configuration file (Document).
//
// Token names are dot paths of field names. An identifier field ("id" or
// "key", any case) names the entity it belongs to: it produces no token and
// its value becomes a path segment for the fields after it, so list entries
// are addressed by identity instead of position. Inside a Parameter record
// the value field takes the name of its key.
//
//	{"connectionSettings":[{"id":"Flights","connectionString":"..."}]}
//	=> connectionSettings.Flights.connectionString
package tokenizer
