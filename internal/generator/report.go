// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// Result is the outcome of one artifact.
type Result struct {
	Artifact Artifact
	Name     string
	Location string
	Size     int
	Err      error
}

// Report collects the results of a run in generation order.
type Report struct {
	Target  string
	Results []Result
}

// Failed returns the results that carry an error.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Err is nil when every artifact was produced, ErrNoArtifacts when none was
// and a *PartialError otherwise.
func (r Report) Err() error {
	failed := r.Failed()
	switch {
	case len(r.Results) == 0:
		return ErrNoArtifacts
	case len(failed) == 0:
		return nil
	case len(failed) == len(r.Results):
		errs := make([]error, 0, len(failed))
		for _, res := range failed {
			errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
		}
		return fmt.Errorf("%w: %w", ErrNoArtifacts, errors.Join(errs...))
	}
	return &PartialError{Failed: failed, Total: len(r.Results)}
}

// Summary writes one line per artifact followed by a total.
func (r Report) Summary(w io.Writer) {
	var total uint64
	for _, res := range r.Results {
		if res.Err != nil {
			fmt.Fprintf(w, "  FAILED  %s: %v\n", res.Name, res.Err)
			continue
		}
		total += uint64(res.Size)
		fmt.Fprintf(w, "  ok      %s (%s)\n", res.Name, humanize.Bytes(uint64(res.Size)))
	}
	produced := len(r.Results) - len(r.Failed())
	fmt.Fprintf(w, "%d of %d artifacts written to %s, %s total\n",
		produced, len(r.Results), r.Target, humanize.Bytes(total))
}

// PartialError reports that some artifacts failed while others were
// produced.
type PartialError struct {
	Failed []Result
	Total  int
}

func (e *PartialError) Error() string {
	names := make([]string, len(e.Failed))
	for i, res := range e.Failed {
		names[i] = res.Name
	}
	return fmt.Sprintf("%d of %d artifacts failed: %s", len(e.Failed), e.Total, strings.Join(names, ", "))
}

// Unwrap exposes the individual artifact errors.
func (e *PartialError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, res := range e.Failed {
		errs[i] = res.Err
	}
	return errs
}
