// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package solution

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseRoot parses a solution root spec and returns the absolute directory and
// any optional application name override given as dir::Name. It returns an
// error if the fs entry does not exist, is empty or is not a directory.
func ParseRoot(spec string) (string, string, error) {
	if spec == "" {
		return "", "", os.ErrInvalid
	}

	var dir, name string

	// First, split the path to see if there is a ::name override.
	parts := strings.Split(spec, "::")
	if len(parts) > 1 {
		name = parts[1]
	}

	dir, err := filepath.Abs(parts[0])
	if err != nil {
		return "", "", err
	}

	if r, err := os.Stat(dir); err != nil {
		return "", "", err
	} else if !r.IsDir() {
		return "", "", os.ErrInvalid
	}

	return dir, name, nil
}
