// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package solution

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under a temp dir and returns its path.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return root
}

func flightTree() map[string]string {
	return map[string]string{
		"Flight.sln":                               "",
		"nuget.config":                             `<add key="AzulFramework" value="https://feed" />`,
		"src/Flight.Api/Flight.Api.csproj":         "",
		"src/Flight.Api/Program.cs":                "class Program {}",
		"src/Flight.Api/appsettings.json":          "{}",
		"src/Flight.Api/appsettings.Docker.json":   "{}",
		"src/Flight.Api/certs/root.crt":            "cert",
		"src/Flight.Domain/Flight.Domain.csproj":   "",
		"src/Flight.Domain/appsettings.json":       "{}",
		"src/Flight.Domain/Events/Delayed.cs":      "class Delayed : EventPublisher<FlightDelayed> {}",
		"src/Flight.Domain/Clients/CrewClient.cs":  `public override string ServiceClientId => "Crew";`,
		"src/Flight.Api/bin/Debug/Stale.cs":        ": EventSubscriber<Stale>",
		"src/Flight.Api/obj/Flight.Api.csproj":     "",
		"tests/Flight.Tests/Flight.Tests.csproj":   "",
		"tests/Flight.Tests/Program.cs":            "",
		"tests/Flight.Tests/fixtures/intermed.cer": "cert",
	}
}

func TestScan(t *testing.T) {
	root := writeTree(t, flightTree())

	s, err := Scan(context.Background(), root, "")
	require.NoError(t, err)

	assert.Equal(t, "Flight", s.Name)
	assert.Equal(t, "Flight.sln", s.SolutionFile)
	assert.Equal(t, []Project{
		{Dir: "src/Flight.Api", File: "Flight.Api.csproj"},
		{Dir: "src/Flight.Domain", File: "Flight.Domain.csproj"},
		{Dir: "tests/Flight.Tests", File: "Flight.Tests.csproj"},
	}, s.Projects, "bin and obj are skipped")
	assert.Equal(t, []string{"src/Flight.Api/certs/root.crt", "tests/Flight.Tests/fixtures/intermed.cer"}, s.Certificates)

	entry, err := s.Entrypoint()
	require.NoError(t, err)
	assert.Equal(t, "src/Flight.Api/Flight.Api.csproj", entry.Path())
	assert.Equal(t, "Flight.Api", entry.Assembly())

	settings, err := s.AppSettings()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "Flight.Api", "appsettings.json"), settings)

	docker, err := s.DockerAppSettings()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "Flight.Api", "appsettings.Docker.json"), docker)

	assert.True(t, s.HasPublishers())
	assert.False(t, s.HasSubscribers(), "sources under bin are not indexed")
	assert.Len(t, s.FilesContaining(`ServiceClientId => "Crew"`), 1)
	assert.Empty(t, s.FilesContaining("nothing like this"))

	assert.NoError(t, s.ValidateNugetConfig(""))
	assert.NoError(t, s.ValidateNugetConfig("AzulFramework"))
	assert.ErrorContains(t, s.ValidateNugetConfig("OtherFeed"), "OtherFeed key not found")
}

func TestScan_NameOverride(t *testing.T) {
	root := writeTree(t, flightTree())
	s, err := Scan(context.Background(), root, "FlightOps")
	require.NoError(t, err)
	assert.Equal(t, "FlightOps", s.Name)
}

func TestScan_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
		is    error
	}{
		{
			name:  "no solution file",
			files: map[string]string{"src/A/A.csproj": ""},
			want:  "*.sln",
			is:    ErrNotFound,
		},
		{
			name:  "two solution files",
			files: map[string]string{"A.sln": "", "B.sln": ""},
			want:  "only one *.sln is allowed",
		},
		{
			name:  "two projects in one directory",
			files: map[string]string{"A.sln": "", "src/A/A.csproj": "", "src/A/B.csproj": ""},
			want:  "only one csproj file is allowed in the same directory: src/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(context.Background(), writeTree(t, tt.files), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scan(ctx, writeTree(t, flightTree()), "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolution_MissingFiles(t *testing.T) {
	s, err := Scan(context.Background(), writeTree(t, map[string]string{"A.sln": "", "src/A/A.csproj": ""}), "")
	require.NoError(t, err)

	_, err = s.Entrypoint()
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.AppSettings()
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.DockerAppSettings()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.ValidateNugetConfig(""), ErrNotFound)
	assert.False(t, s.HasPublishers())
}
