// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/generator"
	"github.com/deploygen/deploygen/internal/manifest"
	"github.com/deploygen/deploygen/internal/tokenizer"
)

// FlagValidatorType checks a flag value.
type FlagValidatorType func(any) error

// FlagValidators runs validators in order and returns the first failure.
func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// OutputFormats are the accepted --output values of listing commands.
var OutputFormats = []string{"text", "json", "raw", "yaml"}

// OutputValidator accepts one of OutputFormats.
func OutputValidator(value any) error {
	if s, ok := value.(string); ok && slices.Contains(OutputFormats, s) {
		return nil
	}
	return fmt.Errorf("must be one of %v", OutputFormats)
}

// ModeValidator accepts raw or tokenized.
func ModeValidator(value any) error {
	_, err := tokenizer.ParseMode(fmt.Sprint(value))
	return err
}

// StyleValidator accepts underscore or dollar.
func StyleValidator(value any) error {
	_, err := tokenizer.ParseStyle(fmt.Sprint(value))
	return err
}

// AppTypeValidator accepts api, consumer and cronjob.
func AppTypeValidator(value any) error {
	_, err := manifest.ParseAppType(fmt.Sprint(value))
	return err
}

// DeployNameValidator requires a '-' in the deploy name.
func DeployNameValidator(value any) error {
	return generator.ValidateDeployName(fmt.Sprint(value))
}

// ImageValidator requires the image to reference the tokenized or the online
// registry.
func ImageValidator(value any) error {
	d := config.LoadDefaults()
	return generator.ValidateImage(fmt.Sprint(value), d.Registry, d.OnlineRegistry)
}
