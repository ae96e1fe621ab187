// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"fmt"
	"strings"

	"github.com/deploygen/deploygen/internal/dockerfile"
	"github.com/deploygen/deploygen/internal/manifest"
	"github.com/deploygen/deploygen/internal/solution"
)

// Artifact identifies one generated file.
type Artifact string

const (
	DockerSettings   Artifact = "docker-settings"
	OnlineSettings   Artifact = "online-settings"
	K8sDeploy        Artifact = "k8sdeploy"
	OnlineDeploy     Artifact = "onlinedeploy"
	Dockerfile       Artifact = "dockerfile"
	DockerfileOnline Artifact = "dockerfile-online"
	Sheet            Artifact = "sheet"
)

// All lists every artifact in generation order.
var All = []Artifact{
	DockerSettings,
	OnlineSettings,
	K8sDeploy,
	OnlineDeploy,
	Dockerfile,
	DockerfileOnline,
	Sheet,
}

// OnlineSettingsFile is the literal settings document of the online
// environment.
const OnlineSettingsFile = "appsettings.Online.json"

// FileName is the name the artifact is stored under. The workbook is named
// after the application.
func (a Artifact) FileName(appName string) string {
	switch a {
	case DockerSettings:
		return solution.DockerAppSettingsFile
	case OnlineSettings:
		return OnlineSettingsFile
	case K8sDeploy:
		return manifest.Tokenized.FileName()
	case OnlineDeploy:
		return manifest.Online.FileName()
	case Dockerfile:
		return dockerfile.FileName
	case DockerfileOnline:
		return dockerfile.OnlineFileName
	case Sheet:
		return appName + ".xlsx"
	}
	return string(a)
}

// NeedsDeployName reports whether producing the artifact requires a deploy
// name and an image.
func (a Artifact) NeedsDeployName() bool {
	switch a {
	case K8sDeploy, OnlineDeploy, Sheet:
		return true
	}
	return false
}

// ParseArtifacts resolves artifact names, accepting "all" and file names
// such as "k8sdeploy.yaml". The result is in generation order without
// duplicates. An online manifest request also selects the tokenized one.
func ParseArtifacts(names []string) ([]Artifact, error) {
	want := map[Artifact]bool{}
	for _, raw := range names {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if strings.EqualFold(name, "all") {
				for _, a := range All {
					want[a] = true
				}
				continue
			}
			a, ok := lookup(name)
			if !ok {
				return nil, fmt.Errorf("unknown artifact %q (want one of %s or all)", name, strings.Join(Names(), ", "))
			}
			want[a] = true
		}
	}

	if want[OnlineDeploy] {
		want[K8sDeploy] = true
	}

	var out []Artifact
	for _, a := range All {
		if want[a] {
			out = append(out, a)
		}
	}
	return out, nil
}

// Names returns the artifact names in generation order.
func Names() []string {
	out := make([]string, len(All))
	for i, a := range All {
		out[i] = string(a)
	}
	return out
}

func lookup(name string) (Artifact, bool) {
	for _, a := range All {
		if strings.EqualFold(name, string(a)) {
			return a, true
		}
		if a != Sheet && strings.EqualFold(name, a.FileName("")) {
			return a, true
		}
	}
	return "", false
}
