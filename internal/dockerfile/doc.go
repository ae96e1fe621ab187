// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package dockerfile renders the multi-stage container build script of a
// scanned solution. The same script is produced for every registry; only
// the base images differ.
package dockerfile
