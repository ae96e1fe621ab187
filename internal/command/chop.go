// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import "strings"

// chopPrefix removes the leading dot-path segments that the key's values
// share across all rows and replaces them with "..". At least two segments
// must be shared and at least two must remain. Rows whose value is not a
// string are left alone.
func chopPrefix(dataset []map[string]interface{}, key string) {
	type segmented struct {
		row      int
		segments []string
	}

	var values []segmented
	for i, row := range dataset {
		if s, ok := row[key].(string); ok {
			values = append(values, segmented{row: i, segments: strings.Split(s, ".")})
		}
	}
	if len(values) == 0 {
		return
	}

	// Shortest value bounds both the shared run and what must remain.
	shortest := len(values[0].segments)
	for _, v := range values {
		shortest = min(shortest, len(v.segments))
	}

	common := 0
	for ; common < shortest; common++ {
		seg := values[0].segments[common]
		match := true
		for _, v := range values[1:] {
			if v.segments[common] != seg {
				match = false
				break
			}
		}
		if !match {
			break
		}
	}

	common = min(common, shortest-2)
	if common < 2 {
		return
	}

	for _, v := range values {
		dataset[v.row][key] = ".." + strings.Join(v.segments[common:], ".")
	}
}
