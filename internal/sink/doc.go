// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package sink stores generated artifacts. A target is either a directory or
// an s3://bucket/prefix URL; AWS configuration follows the shell's AWS setup
// unless overridden with options.
package sink
