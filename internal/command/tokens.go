// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/deploygen/deploygen/internal/meta"
	"github.com/deploygen/deploygen/internal/output"
	"github.com/deploygen/deploygen/internal/tokenizer"
)

// tokensCommandAction is the action handler for the "tokens" subcommand. It
// lists the tokens extracted from the solution's configuration and emits them
// per the common listing flags.
func tokensCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "tokens") {
		return nil
	}
	if done, err := DumpSchemaIfRequested(cmd, os.Stdout); done {
		return err
	}

	mode, err := tokenizer.ParseMode(cmd.String("mode"))
	if err != nil {
		return err
	}
	style, err := tokenizer.ParseStyle(cmd.String("style"))
	if err != nil {
		return err
	}

	ws, err := loadWorkspace(ctx, cmd)
	if err != nil {
		return err
	}

	tokens, err := tokenizer.Extract(ctx, ws.doc.Root, tokenizer.Options{
		Mode:              mode,
		Style:             style,
		IncludeExceptions: cmd.Bool("exceptions"),
	})
	if err != nil {
		return err
	}

	raw, err := output.Rows(tokens)
	if err != nil {
		return err
	}

	attrs := BuildAttrs(cmd, output.DefaultAttrs())
	log.Debugf("attrs: %v", attrs)

	if cmd.Metadata == nil {
		cmd.Metadata = map[string]any{}
	}
	cmd.Metadata["footer"] = ws.doc.Source

	postProcess := func(dataset []map[string]interface{}) error {
		if cmd.Bool("chop") {
			chopPrefix(dataset, "name")
		}
		return nil
	}

	return output.SliceDiceSpit(raw, attrs, cmd, os.Stdout, postProcess)
}

// tokensCommandBuilder constructs the cli.Command for "tokens", wiring
// metadata, flags, and the action handler.
func tokensCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Aliases:   []string{"tq"},
		Usage:     "token query",
		UsageText: "deploygen tokens [RootDir[::AppName]] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "raw values or tokenized placeholders",
				Value:   "tokenized",
				Sources: cli.EnvVars(envName("mode")),
				Validator: func(value string) error {
					return FlagValidators(value, ModeValidator)
				},
			},
			&cli.StringFlag{
				Name:    "style",
				Usage:   "placeholder style of tokenized values (underscore or dollar)",
				Value:   "underscore",
				Sources: cli.EnvVars(envName("style")),
				Validator: func(value string) error {
					return FlagValidators(value, StyleValidator)
				},
			},
			&cli.BoolFlag{
				Name:  "chop",
				Usage: "chop the common name prefix in text output",
			},
			&cli.BoolFlag{
				Name:    "exceptions",
				Aliases: []string{"x"},
				Usage:   "include the fields listed only on the spreadsheet",
			},
			newDumpSchemaFlag(),
			newTldrFlag(),
			NewSchemaFlag("tokens"),
		}, NewGlobalFlags("tokens")...),
		Action: tokensCommandAction,
	}
}
