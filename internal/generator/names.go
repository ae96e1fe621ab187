// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"fmt"
	"strings"
)

// ValidateDeployName checks that a deploy name is set and contains a '-'.
func ValidateDeployName(name string) error {
	if strings.TrimSpace(name) == "" || !strings.Contains(name, "-") {
		return fmt.Errorf("invalid deploy name %q: it must contain '-' (e.g. flight-api)", name)
	}
	return nil
}

// ValidateImage checks that an image references one of the registries.
func ValidateImage(image string, registries ...string) error {
	for _, r := range registries {
		if r != "" && strings.Contains(image, r) {
			return nil
		}
	}
	return fmt.Errorf("invalid image name %q: it must reference the %s registry", image, strings.Join(nonEmpty(registries), " or "))
}

// OnlineImage swaps the registry of an image for the online registry.
func OnlineImage(image, registry, onlineRegistry string) string {
	if registry == "" {
		return image
	}
	return strings.ReplaceAll(image, registry, onlineRegistry)
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
