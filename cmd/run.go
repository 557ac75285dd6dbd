// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/pkg/config"
	"github.com/telekom/tracemap/pkg/tracemap"
)

// NewCmdRun creates a new run command
func NewCmdRun(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Trace all targets and serve the dashboard",
		Long: "Traces all targets unless a saved run exists, renders the dashboard\n" +
			"and serves it until the process is interrupted.",
		RunE: run(version),
	}

	flags := slices.Concat(commonFlags, []flag{
		{name: "refresh", key: "refresh", usage: "trace all targets even if a saved run exists"},
		{name: "address", key: "api.address", usage: "address the dashboard is served on"},
	})
	addFlags(cmd, config.Default(), flags...)
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd, flags...)
	}

	return cmd
}

// run is the entry point to start tracemap
func run(version string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logger.IntoContext(ctx, logger.NewLogger())
		log := logger.FromContext(ctx)

		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		t, err := tracemap.New(ctx, cfg, version)
		if err != nil {
			log.ErrorContext(ctx, "Failed to create tracemap", "error", err)
			return err
		}

		log.InfoContext(ctx, "Running tracemap", "version", version)
		return t.Run(ctx)
	}
}
