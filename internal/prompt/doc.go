// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package prompt asks the interactive questions of the generate command: a
// multi-select of artifacts and single line text answers.
package prompt
