// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/deploygen/deploygen/internal/differ"
	"github.com/deploygen/deploygen/internal/meta"
	"github.com/deploygen/deploygen/internal/tokenizer"
)

// diffCommandAction is the action handler for the "diff" subcommand. It
// compares the committed appsettings.Docker.json with a freshly tokenized
// one and returns differ.ErrDrift when they differ.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "diff") {
		return nil
	}

	ws, err := loadWorkspace(ctx, cmd)
	if err != nil {
		return err
	}

	path, err := ws.sln.DockerAppSettings()
	if err != nil {
		return err
	}
	existing, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fresh, err := tokenizer.Document(ctx, ws.doc.Root, tokenizer.DocumentOptions{
		Mode:  tokenizer.Tokenized,
		Style: tokenizer.Dollar,
	})
	if err != nil {
		return err
	}

	res, err := differ.Diff(ctx, existing, fresh, differ.Options{
		Ignore: splitList(cmd.String("ignore")),
		Color:  cmd.Bool("color"),
	})
	if err != nil {
		return fmt.Errorf("comparing %s: %w", path, err)
	}

	if !res.Changed() {
		fmt.Fprintf(os.Stdout, "%s is up to date\n", path)
		return nil
	}
	if !cmd.Bool("quiet") {
		fmt.Fprint(os.Stdout, res.Text)
	}
	return res.Err()
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// diffCommandBuilder constructs the cli.Command for "diff", wiring metadata,
// flags, and the action handler.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "check appsettings.Docker.json for drift",
		UsageText: "deploygen diff [RootDir[::AppName]] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored diff output",
			},
			configured("diff", &cli.StringFlag{
				Name:  "ignore",
				Usage: "comma-separated top level keys left out of the comparison",
			}),
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only report drift through the exit code",
			},
			NewSchemaFlag("diff"),
			newTldrFlag(),
		},
		Action: diffCommandAction,
	}
}
