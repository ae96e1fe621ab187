// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ detects drift between the tokenized settings document kept
// in a solution and the one that would be generated now.
package differ
