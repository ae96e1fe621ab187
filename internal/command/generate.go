// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/generator"
	"github.com/deploygen/deploygen/internal/manifest"
	"github.com/deploygen/deploygen/internal/meta"
	"github.com/deploygen/deploygen/internal/prompt"
	"github.com/deploygen/deploygen/internal/settings"
	"github.com/deploygen/deploygen/internal/sink"
)

// Prompt entry points, replaced in tests.
var (
	askFunc    = prompt.Ask
	selectFunc = prompt.Select
)

// errMissing reports an option that is required but was not given while
// prompting is off.
var errMissing = errors.New("missing required option")

// generateCommandAction is the action handler for the "generate" subcommand.
// It scans the solution, fills missing options from prompts when attached to
// a terminal, validates the configuration and writes the artifacts.
func generateCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "generate") {
		return nil
	}
	if done, err := DumpSchemaIfRequested(cmd, os.Stdout); done {
		return err
	}

	ws, err := loadWorkspace(ctx, cmd)
	if err != nil {
		return err
	}

	interactive := !cmd.Bool("yes") && isTerminal()
	opts, artifacts, err := resolveGenerate(cmd, interactive, prompt.IO{})
	if err != nil {
		return err
	}
	log.Debugf("generating %v for %s as %s", artifacts, ws.sln.Name, opts.App)

	err = settings.Validate(ctx, ws.doc.Root, settings.ValidateOptions{
		Schema:          ws.schema,
		RequireEvents:   opts.App == manifest.Consumer,
		RequireSchedule: opts.App == manifest.CronJob,
		Sources:         ws.sln,
	})
	if err != nil {
		return fmt.Errorf("invalid %s:\n%w", ws.doc.Source, err)
	}

	dest := cmd.String("output")
	if dest == "" {
		dest = ws.sln.Root
	}
	out, err := sink.Open(ctx, dest, sinkOptions(cmd)...)
	if err != nil {
		return err
	}

	report := generator.New(ws.sln, ws.doc.Root, opts).Run(ctx, artifacts, out)
	report.Summary(os.Stdout)

	return report.Err()
}

// resolveGenerate gathers the generator options from flags and, when
// interactive, from prompts for whatever the flags left out.
func resolveGenerate(cmd *cli.Command, interactive bool, term prompt.IO) (generator.Options, []generator.Artifact, error) {
	defaults := config.LoadDefaults()
	if dir := cmd.String("templates"); dir != "" {
		defaults.TemplatesDir = dir
	}
	if key := cmd.String("nuget-key"); key != "" {
		defaults.NugetKey = key
	}
	opts := generator.Options{
		Defaults:   defaults,
		DeployName: cmd.String("deploy-name"),
		Image:      cmd.String("image"),
		Templates:  manifest.Templates(defaults.TemplatesDir),
	}

	app := cmd.String("app-type")
	if app == "" {
		if !interactive {
			return opts, nil, fmt.Errorf("%w: --app-type", errMissing)
		}
		var err error
		app, err = askFunc(prompt.Question{
			Title:       "Application type (api, consumer or cronjob)",
			Placeholder: string(manifest.Api),
			Validate:    func(s string) error { return AppTypeValidator(s) },
		}, term)
		if err != nil {
			return opts, nil, err
		}
	}
	parsed, err := manifest.ParseAppType(app)
	if err != nil {
		return opts, nil, err
	}
	opts.App = parsed

	var names []string
	if v := cmd.String("artifacts"); v != "" {
		names = []string{v}
	} else if interactive {
		names, err = selectFunc("Artifacts to generate", artifactItems(), artifactRules(), term)
		if err != nil {
			return opts, nil, err
		}
	} else {
		names = []string{"all"}
	}
	artifacts, err := generator.ParseArtifacts(names)
	if err != nil {
		return opts, nil, err
	}

	if !needsDeployName(artifacts) {
		return opts, artifacts, nil
	}

	if opts.DeployName == "" {
		if !interactive {
			return opts, nil, fmt.Errorf("%w: --deploy-name", errMissing)
		}
		opts.DeployName, err = askFunc(prompt.Question{
			Title:       "Deploy name",
			Placeholder: "flight-api",
			Validate:    generator.ValidateDeployName,
		}, term)
		if err != nil {
			return opts, nil, err
		}
	}

	if opts.Image == "" {
		if !interactive {
			return opts, nil, fmt.Errorf("%w: --image", errMissing)
		}
		opts.Image, err = askFunc(prompt.Question{
			Title:       "Image name",
			Placeholder: defaults.Registry + ".azurecr.io/team/service:latest",
			Validate: func(s string) error {
				return generator.ValidateImage(s, defaults.Registry, defaults.OnlineRegistry)
			},
		}, term)
		if err != nil {
			return opts, nil, err
		}
	}

	return opts, artifacts, nil
}

func needsDeployName(artifacts []generator.Artifact) bool {
	for _, a := range artifacts {
		if a.NeedsDeployName() {
			return true
		}
	}
	return false
}

// artifactItems lists every artifact, all preselected.
func artifactItems() []prompt.Item {
	items := make([]prompt.Item, len(generator.All))
	for i, a := range generator.All {
		items[i] = prompt.Item{
			Key:      string(a),
			Label:    fmt.Sprintf("%-18s %s", a, a.FileName("<app>")),
			Selected: true,
		}
	}
	return items
}

// artifactRules couples the online manifest to the tokenized one it is
// derived from.
func artifactRules() []prompt.Requires {
	return []prompt.Requires{
		{Item: string(generator.OnlineDeploy), Needs: string(generator.K8sDeploy)},
	}
}

// sinkOptions maps the aws flags onto sink options.
func sinkOptions(cmd *cli.Command) []sink.Option {
	var opts []sink.Option
	if v := cmd.String("aws-profile"); v != "" {
		opts = append(opts, sink.WithProfile(v))
	}
	if v := cmd.String("aws-region"); v != "" {
		opts = append(opts, sink.WithRegion(v))
	}
	if v := cmd.String("aws-endpoint"); v != "" {
		opts = append(opts, sink.WithEndpoint(v))
	}
	if n := cmd.Int("aws-retries"); n > 0 {
		opts = append(opts, sink.WithMaxAttempts(int(n)))
	}
	return opts
}

// generateCommandBuilder constructs the cli.Command for "generate", wiring
// metadata, flags, and the action handler.
func generateCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "generate deploy artifacts",
		UsageText: "deploygen generate [RootDir[::AppName]] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			newDumpSchemaFlag(),
			newTldrFlag(),
			NewAppTypeFlag("generate"),
			NewSchemaFlag("generate"),
		}, NewGenerateFlags("generate")...),
		Action: generateCommandAction,
	}
}
