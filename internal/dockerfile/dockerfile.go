// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dockerfile

import (
	"bytes"
	_ "embed"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/manifest"
	"github.com/deploygen/deploygen/internal/solution"
)

// File names of the two Dockerfile flavors.
const (
	FileName       = "Dockerfile"
	OnlineFileName = "DockerfileOnline"
)

// ExposedPort is the port API images listen on.
const ExposedPort = 80

//go:embed Dockerfile.tmpl
var source string

var tmpl = template.Must(template.New(FileName).Parse(source))

// Options select the flavor of the build script.
type Options struct {
	App    manifest.AppType
	Images config.Images
	// NugetKey, when set, must be declared in the solution's nuget.config.
	NugetKey string
}

type certificate struct {
	Source string
	Name   string
}

type data struct {
	Images       config.Images
	Projects     []solution.Project
	EntryDir     string
	EntryFile    string
	Assembly     string
	Build        bool
	Certificates []certificate
	Port         int
}

// Build renders the multi-stage build script of the solution. Consumers add
// an explicit build step, APIs expose ExposedPort and every certificate in
// the solution is installed into the runtime image.
func Build(sln *solution.Solution, opts Options) ([]byte, error) {
	if err := sln.ValidateNugetConfig(opts.NugetKey); err != nil {
		return nil, err
	}
	entry, err := sln.Entrypoint()
	if err != nil {
		return nil, err
	}

	d := data{
		Images:    opts.Images,
		Projects:  sln.Projects,
		EntryDir:  entry.Dir,
		EntryFile: entry.File,
		Assembly:  entry.Assembly(),
		Build:     opts.App == manifest.Consumer,
	}
	if d.EntryDir == "" {
		d.EntryDir = "."
	}
	if opts.App == manifest.Api {
		d.Port = ExposedPort
	}
	for _, c := range sln.Certificates {
		base := path.Base(c)
		d.Certificates = append(d.Certificates, certificate{Source: c, Name: strings.TrimSuffix(base, path.Ext(base))})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", FileName, err)
	}
	return buf.Bytes(), nil
}
