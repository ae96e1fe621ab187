// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/apex/log"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/dockerfile"
	"github.com/deploygen/deploygen/internal/manifest"
	"github.com/deploygen/deploygen/internal/settings"
	"github.com/deploygen/deploygen/internal/sheet"
	"github.com/deploygen/deploygen/internal/sink"
	"github.com/deploygen/deploygen/internal/solution"
	"github.com/deploygen/deploygen/internal/tokenizer"
)

// Options are the inputs of generation beyond the solution itself.
type Options struct {
	App        manifest.AppType
	DeployName string
	Image      string
	Defaults   config.Defaults
	// Templates holds the manifest base templates. Nil uses the built-in
	// ones.
	Templates fs.FS
}

// Generator produces the artifacts of one solution.
type Generator struct {
	sln  *solution.Solution
	root *settings.Node
	opts Options
}

// New returns a generator for the scanned solution and its loaded
// configuration root.
func New(sln *solution.Solution, root *settings.Node, opts Options) *Generator {
	if opts.Templates == nil {
		opts.Templates = manifest.Templates("")
	}
	return &Generator{sln: sln, root: root, opts: opts}
}

// Build produces the content of one artifact.
func (g *Generator) Build(ctx context.Context, a Artifact) ([]byte, error) {
	if a.NeedsDeployName() {
		if err := ValidateDeployName(g.opts.DeployName); err != nil {
			return nil, err
		}
		if err := ValidateImage(g.opts.Image, g.opts.Defaults.Registry, g.opts.Defaults.OnlineRegistry); err != nil {
			return nil, err
		}
	}

	switch a {
	case DockerSettings:
		return tokenizer.Document(ctx, g.root, tokenizer.DocumentOptions{Mode: tokenizer.Tokenized, Style: tokenizer.Dollar})
	case OnlineSettings:
		return tokenizer.Document(ctx, g.root, tokenizer.DocumentOptions{Mode: tokenizer.Raw})
	case K8sDeploy:
		return g.manifest(ctx, manifest.Tokenized)
	case OnlineDeploy:
		return g.manifest(ctx, manifest.Online)
	case Dockerfile:
		return dockerfile.Build(g.sln, dockerfile.Options{App: g.opts.App, Images: g.opts.Defaults.Images, NugetKey: g.opts.Defaults.NugetKey})
	case DockerfileOnline:
		return dockerfile.Build(g.sln, dockerfile.Options{App: g.opts.App, Images: g.opts.Defaults.OnlineImages, NugetKey: g.opts.Defaults.NugetKey})
	case Sheet:
		return g.workbook(ctx)
	}
	return nil, fmt.Errorf("unknown artifact %q", a)
}

func (g *Generator) manifest(ctx context.Context, target manifest.Target) ([]byte, error) {
	tokens, err := tokenizer.Extract(ctx, g.root, tokenizer.Options{Mode: target.Mode(), Style: tokenizer.Underscore})
	if err != nil {
		return nil, err
	}

	params := manifest.Params{DeployName: g.opts.DeployName, Image: g.opts.Image}
	switch target {
	case manifest.Tokenized:
		params.Schedule = tokenizer.Underscore.Placeholder(settings.FieldSchedule)
	case manifest.Online:
		params.Namespace = g.opts.Defaults.Namespace
		params.Image = OnlineImage(g.opts.Image, g.opts.Defaults.Registry, g.opts.Defaults.OnlineRegistry)
		params.Schedule = settings.Schedule(g.root)
	}

	out, err := manifest.Render(g.opts.Templates, g.opts.App, target, tokens, params)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (g *Generator) workbook(ctx context.Context) ([]byte, error) {
	tokens, err := tokenizer.Extract(ctx, g.root, tokenizer.Options{Mode: tokenizer.Raw, IncludeExceptions: true})
	if err != nil {
		return nil, err
	}
	entry, err := g.sln.Entrypoint()
	if err != nil {
		return nil, err
	}

	in := sheet.Input{
		App:            g.opts.App,
		AppName:        g.sln.Name,
		DeployName:     g.opts.DeployName,
		Image:          g.opts.Image,
		Entrypoint:     entry,
		Tokens:         tokens,
		Events:         settings.Events(g.root),
		PublisherTopic: settings.PublisherTopic(g.root),
		HasPublishers:  g.sln.HasPublishers(),
		HasSubscribers: g.sln.HasSubscribers(),
	}

	var buf bytes.Buffer
	if err := sheet.Write(&buf, sheet.Workbook(in), g.opts.Defaults.Sheet); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run builds the artifacts in order and stores each one in out. Failures
// are logged and recorded; they do not stop the remaining artifacts. A
// cancelled context stops the run and marks the remaining artifacts failed.
func (g *Generator) Run(ctx context.Context, artifacts []Artifact, out sink.Sink) Report {
	report := Report{Target: out.String()}

	for _, a := range artifacts {
		res := Result{Artifact: a, Name: a.FileName(g.sln.Name)}

		if err := ctx.Err(); err != nil {
			res.Err = err
			report.Results = append(report.Results, res)
			continue
		}

		data, err := g.Build(ctx, a)
		if err == nil {
			res.Location, err = out.Put(ctx, res.Name, data)
		}
		entry := log.WithField("artifact", res.Name)
		if err != nil {
			res.Err = err
			entry.WithError(err).Error("generation failed")
		} else {
			res.Size = len(data)
			entry.Infof("written to %s", res.Location)
		}
		report.Results = append(report.Results, res)
	}

	return report
}

// ErrNoArtifacts is returned by Report.Err when nothing was produced.
var ErrNoArtifacts = errors.New("no artifacts were generated")
