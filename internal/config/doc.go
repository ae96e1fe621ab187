// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for deploygen's user
// configuration. The configuration is a YAML document located by the
// DEPLOYGEN_CFG_FILE environment variable or in the user's configuration
// directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/deploygen.yaml or $HOME/.config/deploygen.yaml
//   - Windows: %APPDATA%/deploygen.yaml
//
// Besides flag defaults (see the command package), the file carries the
// generation defaults exposed by Defaults: registries, base images, the
// online namespace and spreadsheet styling.
package config
