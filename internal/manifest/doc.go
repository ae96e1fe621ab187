// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package manifest synthesizes Kubernetes deployment manifests. The
// environment token list is serialized as YAML and spliced under the
// container's env: line of a base template chosen by application type and
// target.
package manifest
