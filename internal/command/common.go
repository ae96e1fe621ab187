// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/deploygen/deploygen/internal/attrs"
	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/differ"
	"github.com/deploygen/deploygen/internal/generator"
	"github.com/deploygen/deploygen/internal/meta"
	"github.com/deploygen/deploygen/internal/output"
	"github.com/deploygen/deploygen/internal/settings"
	"github.com/deploygen/deploygen/internal/solution"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitInit    = 1
	ExitCommand = 2
	ExitPartial = 3
	ExitDrift   = 4
)

// ExitCode maps the error returned by a command to the process exit code.
func ExitCode(err error) int {
	var partial *generator.PartialError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, differ.ErrDrift):
		return ExitDrift
	case errors.As(err, &partial):
		return ExitPartial
	}
	return ExitCommand
}

// BuildAttrs starts from the base attrs, adds the extras from --attrs and
// then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, base attrs.AttrList) (al attrs.AttrList) {
	al = append(al, base...)
	//nolint:errcheck
	{
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// DumpSchemaIfRequested writes the active policy schema to w when
// --dump-schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, w io.Writer) (bool, error) {
	if !cmd.Bool("dump-schema") {
		return false, nil
	}
	schema, err := resolveSchema(cmd)
	if err != nil {
		return true, err
	}
	output.DumpSchema(schema, w)
	return true, nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr deploygen <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "deploygen", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// workspace is a scanned solution with its loaded configuration.
type workspace struct {
	sln    *solution.Solution
	doc    *settings.Document
	schema *settings.Schema
}

// loadWorkspace scans the solution root of the command and loads its
// appsettings.json. Loader issues are logged, not fatal.
func loadWorkspace(ctx context.Context, cmd *cli.Command) (*workspace, error) {
	m := GetMeta(cmd)

	schema, err := resolveSchema(cmd)
	if err != nil {
		return nil, err
	}

	sln, err := solution.Scan(ctx, m.RootDir, m.AppName)
	if err != nil {
		return nil, err
	}
	log.Debugf("solution %s at %s: %d projects", sln.Name, sln.Root, len(sln.Projects))

	path, err := sln.AppSettings()
	if err != nil {
		return nil, err
	}
	doc, err := settings.LoadFile(path, schema)
	if err != nil {
		return nil, err
	}
	reportIssues(issueOut, path, doc.Issues)

	return &workspace{sln: sln, doc: doc, schema: schema}, nil
}

// issueOut receives loader issues. They are printed whatever the log level:
// a dropped field is missing from every artifact.
var issueOut io.Writer = os.Stderr

func reportIssues(w io.Writer, path string, issues []settings.Issue) {
	for _, issue := range issues {
		log.Debugf("%s: %s", path, issue)
		fmt.Fprintf(w, "warning: %s: %s (field dropped)\n", path, issue)
	}
}

// resolveSchema returns the schema named by --schema or the config file, or
// the built-in one.
func resolveSchema(cmd *cli.Command) (*settings.Schema, error) {
	path := cmd.String("schema")
	if path == "" {
		path = config.LoadDefaults().Schema
	}
	if path == "" {
		return settings.DefaultSchema(), nil
	}

	schema, err := settings.LoadSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	log.Debugf("using schema %s", path)
	return schema, nil
}

// isTerminal reports whether stdin and stdout are attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
