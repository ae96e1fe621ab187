// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package sheet builds the operations workbook. Builders produce plain
// worksheets from the literal token list; Write renders them with excelize.
package sheet
