// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for deploygen. It wires flags,
// validators, actions, interactive prompts and shell completion for
// subcommands, and maps command errors to process exit codes.
package command
