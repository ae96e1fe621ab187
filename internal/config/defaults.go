// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

// Registry names and base images used when nothing is configured.
const (
	DefaultNamespace        = "deploy-generator"
	DefaultRegistry         = "acrdevopsbr"
	DefaultOnlineRegistry   = "isabko"
	DefaultSdkImage         = "acrdevopsbr.azurecr.io/custom/dotnet/core/sdk:3.1.405"
	DefaultRuntimeImage     = "acrdevopsbr.azurecr.io/custom/dotnet/core/aspnet:3.1.11"
	DefaultOnlineSdkImage   = "isabko.azurecr.io/dotnet/core/sdk:3.1.405"
	DefaultOnlineRuntime    = "isabko.azurecr.io/dotnet/core/aspnet:3.1.11"
	DefaultSheetFont        = "Calibri"
	DefaultSheetColumnWidth = 75
)

// Images holds the base images of one Dockerfile flavor.
type Images struct {
	Sdk     string
	Runtime string
}

// SheetStyle holds spreadsheet rendering options. Colors are hex RGB.
type SheetStyle struct {
	Font        string
	ColumnWidth int
	Menu        string
	Green       string
	Yellow      string
	Orange      string
	Red         string
}

// Defaults are the generation settings read from the "defaults" and "sheet"
// sections of the config file.
type Defaults struct {
	Namespace      string
	Registry       string
	OnlineRegistry string
	Images         Images
	OnlineImages   Images
	NugetKey       string
	TemplatesDir   string
	Schema         string
	Sheet          SheetStyle
}

// LoadDefaults resolves Defaults from the global Config, falling back to the
// built-in values for anything missing.
func LoadDefaults() Defaults {
	str := func(key, def string) string {
		v, err := GetString(key, def)
		if err != nil {
			return def
		}
		return v
	}

	width, err := GetInt("sheet.columnWidth", DefaultSheetColumnWidth)
	if err != nil || width <= 0 {
		width = DefaultSheetColumnWidth
	}

	return Defaults{
		Namespace:      str("defaults.namespace", DefaultNamespace),
		Registry:       str("defaults.registry", DefaultRegistry),
		OnlineRegistry: str("defaults.onlineRegistry", DefaultOnlineRegistry),
		Images: Images{
			Sdk:     str("defaults.images.sdk", DefaultSdkImage),
			Runtime: str("defaults.images.runtime", DefaultRuntimeImage),
		},
		OnlineImages: Images{
			Sdk:     str("defaults.onlineImages.sdk", DefaultOnlineSdkImage),
			Runtime: str("defaults.onlineImages.runtime", DefaultOnlineRuntime),
		},
		NugetKey:     str("defaults.nugetKey", ""),
		TemplatesDir: str("templates.dir", ""),
		Schema:       str("schema", ""),
		Sheet: SheetStyle{
			Font:        str("sheet.font", DefaultSheetFont),
			ColumnWidth: width,
			Menu:        str("sheet.colors.menu", "00008B"),
			Green:       str("sheet.colors.green", "32CD32"),
			Yellow:      str("sheet.colors.yellow", "FFFF00"),
			Orange:      str("sheet.colors.orange", "FFA500"),
			Red:         str("sheet.colors.red", "FF0000"),
		},
	}
}
