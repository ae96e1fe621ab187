// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Leaf package; keep it free of deploygen imports.

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the module version stamped by the Go toolchain, or "dev".
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// String renders the --version line.
func String() string {
	return fmt.Sprintf("deploygen %s (%s %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
