// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package solution scans a .NET solution directory for the files the
// generators need: the solution and project files, the entrypoint project,
// appsettings files, nuget.config and certificates. C# sources are indexed
// for text lookups such as publisher and subscriber detection.
package solution
