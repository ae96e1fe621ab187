// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
)

// Sink stores named artifacts and returns where each one landed.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
	String() string
}

// Open resolves a target into a sink. s3:// targets load AWS configuration
// with opts; anything else is a directory.
func Open(ctx context.Context, target string, opts ...Option) (Sink, error) {
	if strings.HasPrefix(target, S3Scheme) {
		bucket, prefix, err := ParseS3URL(target)
		if err != nil {
			return nil, err
		}
		return NewS3(ctx, bucket, prefix, opts...)
	}
	return NewDir(target)
}

// Dir writes artifacts into a directory.
type Dir struct {
	Path string
}

// NewDir returns a Dir sink for path, which must be an existing directory.
// An empty path is the working directory.
func NewDir(path string) (*Dir, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("output directory: %s is not a directory", abs)
	}
	return &Dir{Path: abs}, nil
}

// Put writes data to the named file, replacing it when present.
func (d *Dir) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkName(name); err != nil {
		return "", err
	}

	path := filepath.Join(d.Path, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	log.Debugf("artifact written: path=%s, size=%d", path, len(data))
	return path, nil
}

func (d *Dir) String() string { return d.Path }

// checkName rejects artifact names that would escape the target.
func checkName(name string) error {
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(name)))
	if name == "" || clean == "." || filepath.IsAbs(name) || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("invalid artifact name %q", name)
	}
	return nil
}
