// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/pkg/config"
)

// flag binds a command line flag to a configuration key
type flag struct {
	name  string
	key   string
	usage string
}

// commonFlags are shared by all commands that trace targets
var commonFlags = []flag{
	{name: "targets", key: "targets.path", usage: "target file (YAML or JSON)"},
	{name: "output", key: "outputDir", usage: "directory the dashboard is rendered to"},
	{name: "workers", key: "orchestrator.workers", usage: "number of targets traced concurrently"},
	{name: "max-hops", key: "probe.maxHops", usage: "maximum number of hops per target"},
	{name: "traceroute", key: "probe.command", usage: "traceroute executable"},
	{name: "geo-provider", key: "geo.provider", usage: "geolocation provider (ipapi, mmdb)"},
	{name: "mmdb", key: "geo.mmdb.path", usage: "MaxMind database of the mmdb provider"},
	{name: "store", key: "store.type", usage: "run store (file, sqlite, postgres, github)"},
	{name: "store-path", key: "store.path", usage: "file of the file and sqlite run stores"},
}

// addFlags registers the flags on cmd with the values of defaults.
func addFlags(cmd *cobra.Command, defaults *config.Config, flags ...flag) {
	fs := cmd.Flags()
	for _, f := range flags {
		switch f.key {
		case "orchestrator.workers":
			fs.Int(f.name, defaults.Orchestrator.Workers, f.usage)
		case "probe.maxHops":
			fs.Int(f.name, defaults.Probe.MaxHops, f.usage)
		case "refresh":
			fs.Bool(f.name, defaults.Refresh, f.usage)
		default:
			fs.String(f.name, stringDefault(defaults, f.key), f.usage)
		}
	}
}

// bindFlags binds the flags of the executed command to viper, so that the
// config file and environment take effect when a flag is not set explicitly.
// Binding happens on execution since all commands share the same keys.
func bindFlags(cmd *cobra.Command, flags ...flag) error {
	for _, f := range flags {
		if err := viper.BindPFlag(f.key, cmd.Flags().Lookup(f.name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", f.name, err)
		}
	}
	return nil
}

func stringDefault(c *config.Config, key string) string {
	switch key {
	case "targets.path":
		return c.Targets.Path
	case "outputDir":
		return c.OutputDir
	case "probe.command":
		return c.Probe.Command
	case "geo.provider":
		return c.Geo.Provider
	case "geo.mmdb.path":
		return c.Geo.MMDB.Path
	case "store.type":
		return c.Store.Type
	case "store.path":
		return c.Store.Path
	case "api.address":
		return c.Api.ListeningAddress
	default:
		return ""
	}
}

// loadConfig merges the defaults with flags, environment and config file
// and validates the result.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).DebugContext(ctx, "Loaded configuration",
		"targets", cfg.Targets.Path, "outputDir", cfg.OutputDir, "geo", cfg.Geo.Provider, "store", cfg.Store.Type)
	return cfg, nil
}
