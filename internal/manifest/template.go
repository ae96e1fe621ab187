// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/deploygen/deploygen/internal/tokenizer"
)

//go:embed templates
var embedded embed.FS

// AppType is the deployment shape of the service.
type AppType string

const (
	Api      AppType = "api"
	Consumer AppType = "consumer"
	CronJob  AppType = "cronjob"
)

// AppTypes lists the supported deployment shapes.
var AppTypes = []AppType{Api, Consumer, CronJob}

// ParseAppType maps a name, any case, to an AppType.
func ParseAppType(s string) (AppType, error) {
	for _, a := range AppTypes {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown application type %q (want api, consumer or cronjob)", s)
}

// IndentLevel is the nesting depth of the container env list in the
// deployment shape's template.
func (a AppType) IndentLevel() int {
	switch a {
	case Api:
		return 5
	case Consumer:
		return 4
	case CronJob:
		return 8
	}
	return 0
}

// Target selects which manifest is produced.
type Target string

const (
	// Tokenized carries placeholders for the release pipeline to resolve.
	Tokenized Target = "tokenized"
	// Online carries literal values for the online environment.
	Online Target = "online"
)

// FileName is the artifact name of the target.
func (t Target) FileName() string {
	if t == Online {
		return "onlinedeploy.yaml"
	}
	return "k8sdeploy.yaml"
}

// Mode is the token mode the target's env block is built with.
func (t Target) Mode() tokenizer.Mode {
	if t == Online {
		return tokenizer.Raw
	}
	return tokenizer.Tokenized
}

// Templates returns the base templates. An empty dir selects the built-in
// set; otherwise templates are read from dir laid out as
// <apptype>/<artifact>.
func Templates(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadTemplate reads the base template of an app type and target.
func LoadTemplate(fsys fs.FS, app AppType, target Target) (string, error) {
	name := path.Join(string(app), target.FileName())
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", name, err)
	}
	return string(data), nil
}

// Params are the values substituted into a base template.
type Params struct {
	Namespace  string
	DeployName string
	Image      string
	Schedule   string
}

// Replacements maps template placeholders to the non-empty params.
func (p Params) Replacements() map[string]string {
	r := map[string]string{}
	for k, v := range map[string]string{
		"$namespace":   p.Namespace,
		"$deploy-name": p.DeployName,
		"$image-name":  p.Image,
		"$schedule":    p.Schedule,
	} {
		if v != "" {
			r[k] = v
		}
	}
	return r
}

// Render loads the template of app and target and synthesizes it.
func Render(fsys fs.FS, app AppType, target Target, tokens []tokenizer.Token, params Params) (string, error) {
	tmpl, err := LoadTemplate(fsys, app, target)
	if err != nil {
		return "", err
	}
	return Synthesize(tmpl, tokens, app.IndentLevel(), params.Replacements())
}
