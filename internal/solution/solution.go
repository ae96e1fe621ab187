// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package solution

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apex/log"
)

// Well known file names of a .NET solution.
const (
	AppSettingsFile       = "appsettings.json"
	DockerAppSettingsFile = "appsettings.Docker.json"
	NugetConfigFile       = "nuget.config"
	ProgramFile           = "Program.cs"

	PublisherMarker  = ": EventPublisher<"
	SubscriberMarker = ": EventSubscriber<"
)

// ErrNotFound is wrapped by lookups of files the solution does not have.
var ErrNotFound = errors.New("not found in the solution")

// skipped directories are never descended into.
var skipped = map[string]bool{
	"bin":          true,
	"obj":          true,
	".git":         true,
	".vs":          true,
	"node_modules": true,
}

// Project is a .csproj file. Dir is relative to the solution root with
// forward slashes; it is empty for a project at the root.
type Project struct {
	Dir  string
	File string
}

// Path is the project file path relative to the solution root.
func (p Project) Path() string {
	return path.Join(p.Dir, p.File)
}

// Assembly is the assembly name the project builds.
func (p Project) Assembly() string {
	return strings.TrimSuffix(p.File, filepath.Ext(p.File))
}

// Solution is the result of scanning a solution directory. Relative paths
// use forward slashes.
type Solution struct {
	Root         string
	Name         string
	SolutionFile string
	Projects     []Project
	Certificates []string

	entrypoint  *Project
	appSettings []string
	docker      []string
	nuget       string
	sources     map[string]string
	sourceOrder []string
}

// Scan walks root and indexes the solution. Exactly one .sln file must exist.
// The application name is the .sln base name unless name is not empty.
func Scan(ctx context.Context, root, name string) (*Solution, error) {
	s := &Solution{Root: root, sources: map[string]string{}}
	var slns []string
	programs := map[string]bool{}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && skipped[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		base := d.Name()

		switch ext := strings.ToLower(filepath.Ext(base)); {
		case ext == ".sln":
			slns = append(slns, rel)
		case ext == ".csproj":
			s.Projects = append(s.Projects, Project{Dir: dir(rel), File: base})
		case ext == ".crt" || ext == ".cer":
			s.Certificates = append(s.Certificates, rel)
		case strings.EqualFold(base, AppSettingsFile):
			s.appSettings = append(s.appSettings, rel)
		case strings.EqualFold(base, DockerAppSettingsFile):
			s.docker = append(s.docker, rel)
		case strings.EqualFold(base, NugetConfigFile):
			if s.nuget == "" || dir(rel) == "" {
				s.nuget = rel
			}
		case ext == ".cs":
			data, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			s.sources[rel] = string(data)
			s.sourceOrder = append(s.sourceOrder, rel)
			if strings.EqualFold(base, ProgramFile) {
				programs[dir(rel)] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	switch len(slns) {
	case 0:
		return nil, fmt.Errorf("*.sln: %w: %s", ErrNotFound, root)
	case 1:
		s.SolutionFile = slns[0]
	default:
		return nil, fmt.Errorf("only one *.sln is allowed, found %s", strings.Join(slns, ", "))
	}

	s.Name = name
	if s.Name == "" {
		s.Name = strings.TrimSuffix(path.Base(s.SolutionFile), path.Ext(s.SolutionFile))
	}

	sort.Slice(s.Projects, func(i, j int) bool { return s.Projects[i].Path() < s.Projects[j].Path() })
	for i := 1; i < len(s.Projects); i++ {
		if s.Projects[i].Dir == s.Projects[i-1].Dir {
			return nil, fmt.Errorf("only one csproj file is allowed in the same directory: %s", s.Projects[i].Dir)
		}
	}
	for i := range s.Projects {
		if programs[s.Projects[i].Dir] {
			s.entrypoint = &s.Projects[i]
			break
		}
	}
	sort.Strings(s.Certificates)

	log.Debugf("scanned solution %s: %d projects, %d sources, %d certificates",
		s.Name, len(s.Projects), len(s.sources), len(s.Certificates))
	return s, nil
}

// Entrypoint is the project whose directory holds Program.cs.
func (s *Solution) Entrypoint() (Project, error) {
	if s.entrypoint == nil {
		return Project{}, fmt.Errorf("entrypoint project with %s: %w", ProgramFile, ErrNotFound)
	}
	return *s.entrypoint, nil
}

// AppSettings returns the absolute path of the service's appsettings.json,
// preferring the one in the entrypoint project.
func (s *Solution) AppSettings() (string, error) {
	return s.pick(s.appSettings, AppSettingsFile)
}

// DockerAppSettings returns the absolute path of an existing
// appsettings.Docker.json, preferring the one in the entrypoint project.
func (s *Solution) DockerAppSettings() (string, error) {
	return s.pick(s.docker, DockerAppSettingsFile)
}

func (s *Solution) pick(candidates []string, name string) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	choice := candidates[0]
	if s.entrypoint != nil {
		for _, c := range candidates {
			if dir(c) == s.entrypoint.Dir {
				choice = c
				break
			}
		}
	}
	return filepath.Join(s.Root, filepath.FromSlash(choice)), nil
}

// ValidateNugetConfig checks that the solution has a nuget.config and, when
// key is not empty, that the file declares that package source key.
func (s *Solution) ValidateNugetConfig(key string) error {
	if s.nuget == "" {
		return fmt.Errorf("%s: %w", NugetConfigFile, ErrNotFound)
	}
	if key == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(s.nuget)))
	if err != nil {
		return err
	}
	if !strings.Contains(string(data), key) {
		return fmt.Errorf("%s key not found in %s", key, s.nuget)
	}
	return nil
}

// Contains reports whether any .cs source contains text.
func (s *Solution) Contains(text string) bool {
	for _, rel := range s.sourceOrder {
		if strings.Contains(s.sources[rel], text) {
			return true
		}
	}
	return false
}

// FilesContaining returns the contents of the .cs sources containing text in
// path order.
func (s *Solution) FilesContaining(text string) []string {
	var out []string
	for _, rel := range s.sourceOrder {
		if strings.Contains(s.sources[rel], text) {
			out = append(out, s.sources[rel])
		}
	}
	return out
}

// HasPublishers reports whether the sources declare an event publisher.
func (s *Solution) HasPublishers() bool {
	return s.Contains(PublisherMarker)
}

// HasSubscribers reports whether the sources declare an event subscriber.
func (s *Solution) HasSubscribers() bool {
	return s.Contains(SubscriberMarker)
}

func dir(rel string) string {
	d := path.Dir(rel)
	if d == "." {
		return ""
	}
	return d
}
