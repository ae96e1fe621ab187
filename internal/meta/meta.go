// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"fmt"
	"strings"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/solution"
)

// RootSpec is the solution a command works on: its directory and an
// optional application name given as dir::Name.
type RootSpec struct {
	RootDir string
	AppName string
}

func (r RootSpec) String() string {
	if r.AppName == "" {
		return r.RootDir
	}
	return r.RootDir + "::" + r.AppName
}

// Meta is the per-invocation state shared by commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	RootSpec
	StartingDir string
}

// Namespace returns the subcommand of args, which doubles as the config key
// prefix. It is empty for flags such as --help.
func Namespace(args []string) string {
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		return args[1]
	}
	return ""
}

// New builds the Meta of an invocation. Unless the command is rootless, a
// non-flag argument after the subcommand names the solution root; otherwise
// cwd is the root.
func New(ctx context.Context, args []string, cfg config.Type, cwd string, rootless bool) (Meta, error) {
	m := Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		RootSpec:    RootSpec{RootDir: cwd},
		StartingDir: cwd,
	}

	if rootless || len(args) < 3 || strings.HasPrefix(args[2], "-") {
		return m, nil
	}

	dir, name, err := solution.ParseRoot(args[2])
	if err != nil {
		return Meta{}, fmt.Errorf("failed to parse solution root (%s): %w", args[2], err)
	}
	m.RootSpec = RootSpec{RootDir: dir, AppName: name}
	return m, nil
}
