// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/manifest"
	"github.com/deploygen/deploygen/internal/meta"
	"github.com/deploygen/deploygen/internal/settings"
)

// validateCommandAction is the action handler for the "validate" subcommand.
// It runs the pre-generation checks without writing anything.
func validateCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	var app manifest.AppType
	if v := cmd.String("app-type"); v != "" {
		var err error
		if app, err = manifest.ParseAppType(v); err != nil {
			return err
		}
	}

	ws, err := loadWorkspace(ctx, cmd)
	if err != nil {
		return err
	}

	err = settings.Validate(ctx, ws.doc.Root, settings.ValidateOptions{
		Schema:          ws.schema,
		RequireEvents:   app == manifest.Consumer,
		RequireSchedule: app == manifest.CronJob,
		Sources:         ws.sln,
	})
	if err != nil {
		return fmt.Errorf("invalid %s:\n%w", ws.doc.Source, err)
	}

	key := cmd.String("nuget-key")
	if key == "" {
		key = config.LoadDefaults().NugetKey
	}
	if err := ws.sln.ValidateNugetConfig(key); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s is valid\n", ws.doc.Source)
	return nil
}

// validateCommandBuilder constructs the cli.Command for "validate".
func validateCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check the solution and its configuration",
		UsageText: "deploygen validate [RootDir[::AppName]] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewAppTypeFlag("validate"),
			NewSchemaFlag("validate"),
			configured("validate", &cli.StringFlag{
				Name:  "nuget-key",
				Usage: "package source key nuget.config must declare",
			}),
		},
		Action: validateCommandAction,
	}
}
