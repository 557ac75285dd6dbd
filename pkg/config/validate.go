// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/telekom/tracemap/internal/logger"
)

var dnsName = regexp.MustCompile(`^([a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?\.)*[a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?$`)

// Validate validates the startup config
func (c *Config) Validate(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)
	if c.Name != "" && !dnsName.MatchString(c.Name) {
		log.ErrorContext(ctx, "The name of the instance must be DNS compliant", "name", c.Name)
		err = errors.Join(err, ErrInvalidName)
	}

	if c.OutputDir == "" {
		log.ErrorContext(ctx, "The output directory cannot be empty")
		err = errors.Join(err, ErrInvalidOutputDir)
	}

	validators := []struct {
		component string
		validate  func() error
	}{
		{"targets", c.Targets.Validate},
		{"probe", c.Probe.Validate},
		{"geo", c.Geo.Validate},
		{"orchestrator", c.Orchestrator.Validate},
		{"store", c.Store.Validate},
		{"api", c.Api.Validate},
	}
	for _, v := range validators {
		if vErr := v.validate(); vErr != nil {
			log.ErrorContext(ctx, fmt.Sprintf("The %s configuration is invalid", v.component), "error", vErr)
			err = errors.Join(err, fmt.Errorf("%s: %w", v.component, vErr))
		}
	}

	if c.HasTelemetry() {
		if vErr := c.Telemetry.Validate(ctx); vErr != nil {
			log.ErrorContext(ctx, "The telemetry configuration is invalid")
			err = errors.Join(err, vErr)
		}
	}

	if err != nil {
		return fmt.Errorf("validation of configuration failed: %w", err)
	}
	return nil
}
