// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/generator"
)

// EnvPrefix prefixes the environment variable of every configurable flag.
const EnvPrefix = "DEPLOYGEN_"

// newDumpSchemaFlag returns the --dump-schema flag.
func newDumpSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "dump-schema",
		Usage:       "dump the configuration schema and exit",
		HideDefault: true,
	}
}

// newTldrFlag returns the --tldr flag, hidden when tldr is not installed.
func newTldrFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the listing flags shared by the commands that print
// token rows.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated key[:title[:transform]] columns; transforms l, u, m (mask), q (quote), N, -N",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:   "padding",
			Usage:  "cell padding of text output",
			Hidden: true,
			Value:  1,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewSchemaFlag returns the --schema flag naming a policy schema file. It
// also resolves from DEPLOYGEN_SCHEMA and the config file under ns.
func NewSchemaFlag(ns string) *cli.StringFlag {
	return configured(ns, &cli.StringFlag{
		Name:  "schema",
		Usage: "policy schema file overriding the built-in one",
	})
}

// NewAppTypeFlag returns the --app-type flag. It also resolves from
// DEPLOYGEN_APP_TYPE and the config file under ns.
func NewAppTypeFlag(ns string) *cli.StringFlag {
	return configured(ns, &cli.StringFlag{
		Name:    "app-type",
		Aliases: []string{"T"},
		Usage:   "application type (api, consumer or cronjob)",
		Validator: func(value string) error {
			return FlagValidators(value, AppTypeValidator)
		},
	})
}

// NewGenerateFlags returns the flags specific to artifact generation.
func NewGenerateFlags(ns string) []cli.Flag {
	return []cli.Flag{
		configured(ns, &cli.StringFlag{
			Name:    "artifacts",
			Aliases: []string{"A"},
			Usage:   "comma-separated artifacts to generate (" + strings.Join(generator.Names(), ", ") + " or all)",
		}),
		configured(ns, &cli.StringFlag{
			Name:    "deploy-name",
			Aliases: []string{"d"},
			Usage:   "kubernetes deploy name, e.g. flight-api",
			Validator: func(value string) error {
				return FlagValidators(value, DeployNameValidator)
			},
		}),
		configured(ns, &cli.StringFlag{
			Name:    "image",
			Aliases: []string{"i"},
			Usage:   "container image of the tokenized registry",
			Validator: func(value string) error {
				return FlagValidators(value, ImageValidator)
			},
		}),
		configured(ns, &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "destination directory or s3://bucket/prefix (default: the solution root)",
		}),
		configured(ns, &cli.StringFlag{
			Name:  "templates",
			Usage: "directory of manifest base templates laid out as <apptype>/<file>",
		}),
		configured(ns, &cli.StringFlag{
			Name:  "nuget-key",
			Usage: "package source key nuget.config must declare",
		}),
		configured(ns, &cli.StringFlag{
			Name:  "aws-profile",
			Usage: "shared config profile for s3 destinations",
		}),
		configured(ns, &cli.StringFlag{
			Name:  "aws-region",
			Usage: "region for s3 destinations",
		}),
		&cli.IntFlag{
			Name:    "aws-retries",
			Usage:   "maximum attempts per s3 upload (0 keeps the SDK default)",
			Sources: cli.EnvVars(envName("aws-retries")),
		},
		configured(ns, &cli.StringFlag{
			Name:   "aws-endpoint",
			Usage:  "custom s3 endpoint, e.g. a local minio",
			Hidden: true,
		}),
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "never prompt; missing options are errors",
			Sources: cli.EnvVars(envName("yes")),
		},
	}
}

// configured chains the DEPLOYGEN_<NAME> environment variable and the config
// file keys onto a flag's sources.
func configured(ns string, flag *cli.StringFlag) *cli.StringFlag {
	flag.Sources = cli.NewValueSourceChain(cli.EnvVar(envName(flag.Name)))
	if path := config.Config.Source; path != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(ns, path, flag)
	}
	return flag
}

// envName maps a flag name such as app-type to DEPLOYGEN_APP_TYPE.
func envName(flag string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if ns != "" {
		src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
		flag.Sources.Chain = append(flag.Sources.Chain, src)
	}

	src := yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable is on the PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
