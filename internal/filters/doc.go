// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects token rows for the tokens listing.
//
// Filters are key-operator-target expressions combined with a delimiter,
// comma by default or the value of DEPLOYGEN_FILTER_DELIM. Operators are:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric when the row value is a number)
//   - > : greater than (numeric when the row value is a number)
//   - @ : contains substring
//   - / : regular expression match
//
// Any operator can be negated with a leading '!'. A key without an operator
// keeps rows whose value is not empty.
//
// Examples:
//
//   - "root=events" : tokens under the events section
//   - "name^log." : tokens whose name starts with "log."
//   - "depth>3" : tokens nested deeper than three segments
//   - "value!@sb://" : tokens whose value does not mention a service bus
//
// Filter keys are matched against the OutputKey of attributes (see the attrs
// package). Unknown keys are reported and ignored. Malformed expressions are
// logged and skipped.
package filters
