// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/tidwall/jsonc"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// ErrDrift is returned by Result.Err when the documents differ.
var ErrDrift = errors.New("tokenized settings drifted")

// Options tunes Diff.
type Options struct {
	// Ignore lists top-level keys left out of the comparison.
	Ignore []string
	// Color enables ANSI coloring of the rendered delta.
	Color bool
}

// Result is the outcome of a comparison. Text is the rendered delta of the
// existing document and is empty when nothing changed.
type Result struct {
	Added    int
	Deleted  int
	Modified int
	Text     string
}

// Changed reports whether any member differs.
func (r Result) Changed() bool {
	return r.Added+r.Deleted+r.Modified > 0
}

// Err returns ErrDrift when the documents differ.
func (r Result) Err() error {
	if !r.Changed() {
		return nil
	}
	return fmt.Errorf("%w: %d added, %d deleted, %d modified", ErrDrift, r.Added, r.Deleted, r.Modified)
}

// Diff compares the existing tokenized document with a freshly generated
// one. Both documents must be JSON objects; comments and trailing commas in
// either are tolerated.
func Diff(ctx context.Context, existing, fresh []byte, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	log.Debugf("diff: len(existing)=%d len(fresh)=%d", len(existing), len(fresh))

	left, err := decode(existing)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode existing document: %w", err)
	}
	right, err := decode(fresh)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode generated document: %w", err)
	}

	for _, key := range opts.Ignore {
		if key != "" {
			delete(left, key)
			delete(right, key)
		}
	}

	delta := gojsondiff.New().CompareObjects(left, right)
	if !delta.Modified() {
		return Result{}, nil
	}

	var result Result
	count(delta.Deltas(), &result)

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       opts.Color,
	}
	text, err := formatter.NewAsciiFormatter(left, config).Format(delta)
	if err != nil {
		return Result{}, fmt.Errorf("failed to format delta: %w", err)
	}
	result.Text = text

	return result, nil
}

func decode(doc []byte) (map[string]interface{}, error) {
	doc = bytes.TrimPrefix(doc, []byte("\xef\xbb\xbf"))
	var out map[string]interface{}
	if err := json.Unmarshal(jsonc.ToJSON(doc), &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.New("document is not a JSON object")
	}
	return out, nil
}

// count tallies the leaf deltas below deltas.
func count(deltas []gojsondiff.Delta, r *Result) {
	for _, d := range deltas {
		switch d := d.(type) {
		case *gojsondiff.Object:
			count(d.Deltas, r)
		case *gojsondiff.Array:
			count(d.Deltas, r)
		case *gojsondiff.Added:
			r.Added++
		case *gojsondiff.Deleted:
			r.Deleted++
		case *gojsondiff.Modified, *gojsondiff.TextDiff, *gojsondiff.Moved:
			r.Modified++
		}
	}
}
