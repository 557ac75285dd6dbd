// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package config holds the startup configuration of tracemap.
package config

import (
	"github.com/telekom/tracemap/internal/traceroute"
	"github.com/telekom/tracemap/pkg/api"
	"github.com/telekom/tracemap/pkg/db"
	"github.com/telekom/tracemap/pkg/geo"
	"github.com/telekom/tracemap/pkg/orchestrator"
	"github.com/telekom/tracemap/pkg/targets"
	"github.com/telekom/tracemap/pkg/tracemap/metrics"
)

const (
	defaultOutputDir   = "output"
	defaultTargetsPath = "config/targets.yaml"
)

type Config struct {
	// Name identifies the instance in the instance info metric
	Name string `yaml:"name" mapstructure:"name"`
	// OutputDir is where the dashboard is rendered to
	OutputDir string `yaml:"outputDir" mapstructure:"outputDir"`
	// Refresh traces all targets even if a saved run exists
	Refresh bool `yaml:"refresh" mapstructure:"refresh"`
	// Targets configures the target file and the result ordering
	Targets targets.Config `yaml:"targets" mapstructure:"targets"`
	// Probe configures the traceroute invocations
	Probe traceroute.Options `yaml:"probe" mapstructure:"probe"`
	// Geo configures the hop geolocation
	Geo geo.Config `yaml:"geo" mapstructure:"geo"`
	// Orchestrator configures the worker pool
	Orchestrator orchestrator.Config `yaml:"orchestrator" mapstructure:"orchestrator"`
	// Store configures where runs are persisted
	Store db.Config `yaml:"store" mapstructure:"store"`
	// Api is the configuration for the api server
	Api api.Config `yaml:"api" mapstructure:"api"`
	// Telemetry is the configuration for the telemetry
	Telemetry metrics.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// Default returns the configuration used for every value that is not set
// by a flag, the environment or the config file.
func Default() *Config {
	return &Config{
		OutputDir: defaultOutputDir,
		Targets: targets.Config{
			Path: defaultTargetsPath,
		},
		Probe: *traceroute.DefaultOptions(),
		Geo:   geo.DefaultConfig(),
		Store: db.Config{Type: db.TypeFile},
		Api:   api.Config{ListeningAddress: api.DefaultAddress},
	}
}

// HasTelemetry returns true if the config has telemetry enabled
func (c *Config) HasTelemetry() bool {
	return c.Telemetry.Enabled
}
