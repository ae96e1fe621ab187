// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package generator produces the deployment artifacts of a solution.
//
// Each Artifact has a producer that turns the loaded configuration and the
// scanned solution into bytes. Run builds the requested artifacts one after
// another and stores them in a sink. A failing artifact is logged and
// recorded in the Report; the remaining artifacts are still produced.
//
// Report.Err classifies the outcome: nil when everything was produced,
// ErrNoArtifacts when nothing was, and a *PartialError naming the failed
// artifacts otherwise.
package generator
