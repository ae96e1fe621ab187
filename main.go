// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/deploygen/deploygen/internal/command"
	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/log"
	"github.com/deploygen/deploygen/internal/solution"
	"github.com/deploygen/deploygen/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.String())
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		args = processRootArg(args)
		return deduplicateFlags(args)
	}
}

// processRootArg makes sure args[2] is the solution root, inserting the
// working directory when the command line does not name one.
func processRootArg(args []string) []string {
	rootDir, _ := os.Getwd()
	if len(args) > 2 {
		if _, _, err := solution.ParseRoot(args[2]); err == nil {
			rootDir = args[2]
		}
	}
	if len(args) == 2 {
		args = append(args, rootDir)
	} else if args[2] != rootDir {
		args = append(args[:2], append([]string{rootDir}, args[2:]...)...)
	}
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return command.ExitInit
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return command.ExitCode(err)
	}

	return command.ExitOK
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments from <command>.<set> in the config file at the @set position.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	removeIdx := -1
	set := ""
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx == -1 {
		return args
	}

	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil {
		log.Warnf("argument set %s.%s not found", args[1], set)
	}
	return injectSet(append(args[:removeIdx], args[removeIdx+1:]...), setArgs, removeIdx)
}

// injectSet splits each entry on whitespace and inserts the fields at idx.
func injectSet(args []string, entries []string, idx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:idx]...)
	out = append(out, expanded...)
	return append(out, args[idx:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag after the
// command so explicit arguments override those expanded from a set. A flag
// without '=' takes the following argument as its value unless that argument
// is itself a flag.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		name  string
		items []string
	}

	var groups []group
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			groups = append(groups, group{items: []string{a}})
			continue
		}

		g := group{name: a, items: []string{a}}
		if name, _, ok := strings.Cut(a, "="); ok {
			g.name = name
		} else if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			g.items = append(g.items, args[i+1])
			i++
		}
		groups = append(groups, g)
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.name != "" {
			last[g.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.name != "" && last[g.name] != i {
			continue
		}
		out = append(out, g.items...)
	}
	return out
}
