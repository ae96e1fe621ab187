// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/log"
	"github.com/deploygen/deploygen/internal/meta"
)

// rootless commands take a plain positional argument instead of a solution
// directory.
var rootless = map[string]bool{
	"completion": true,
}

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// Save the CWD at startup and then defer restoring it so we're tidy.
	sd, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(sd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore directory: %v\n", err)
		}
	}()

	ns := meta.Namespace(args)

	// A missing config file is fine; every value has a default.
	cfg, _ := config.Load() //nolint
	cfg.Namespace = ns
	config.Config.Namespace = ns

	meta, err := meta.New(ctx, args, cfg, sd, rootless[ns])
	if err != nil {
		return nil, err
	}
	log.Debugf("solution root: %s", meta.RootSpec)

	app := &cli.Command{
		Name:  "deploygen",
		Usage: "Deploy artifact generator for .NET services",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "deploygen version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		generateCommandBuilder(meta),
		tokensCommandBuilder(meta),
		diffCommandBuilder(meta),
		validateCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
