// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"cmp"
	"slices"
	"strings"
)

type sortKey struct {
	field         string
	descending    bool
	caseSensitive bool
}

// parseSortSpec splits a --sort spec. A leading "-" sorts a key descending
// and a leading "!" compares it case sensitively; "-!" combines both.
func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		k := sortKey{}
		if rest, ok := strings.CutPrefix(field, "-"); ok {
			k.descending, field = true, rest
		}
		if rest, ok := strings.CutPrefix(field, "!"); ok {
			k.caseSensitive, field = true, rest
		}
		if field == "" {
			continue
		}
		k.field = field
		keys = append(keys, k)
	}
	return keys
}

// SortDataset orders rows in place by a comma separated list of output keys.
// Numbers compare numerically. Strings compare one dot-path segment at a time
// so tokens sharing a parent stay together. Rows that tie keep their
// extraction order.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	slices.SortStableFunc(resultSet, func(one, two map[string]interface{}) int {
		for _, k := range keys {
			c := compareValues(one[k.field], two[k.field], k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.descending {
				return -c
			}
			return c
		}
		return 0
	})
}

func compareValues(one, two interface{}, caseSensitive bool) int {
	if a, ok := one.(float64); ok {
		if b, ok := two.(float64); ok {
			return cmp.Compare(a, b)
		}
	}

	// Fall back to string comparison which can also handle bools.
	a, b := InterfaceToString(one), InterfaceToString(two)
	if !caseSensitive {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}
	return comparePaths(a, b)
}

// comparePaths compares dotted paths segment by segment.
func comparePaths(a, b string) int {
	for {
		sa, ra, moreA := strings.Cut(a, ".")
		sb, rb, moreB := strings.Cut(b, ".")
		if c := strings.Compare(sa, sb); c != 0 {
			return c
		}
		switch {
		case !moreA && !moreB:
			return 0
		case !moreA:
			return -1
		case !moreB:
			return 1
		}
		a, b = ra, rb
	}
}
