// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/pkg/config"
	"github.com/telekom/tracemap/pkg/tracemap"
)

// NewCmdProbe creates a new probe command
func NewCmdProbe(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Trace all targets once and render the dashboard",
		Long:  "Traces all targets, saves the run and renders the dashboard without serving it.",
		RunE:  probe(version),
	}

	addFlags(cmd, config.Default(), commonFlags...)
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd, commonFlags...)
	}

	return cmd
}

func probe(version string) func(cmd *cobra.Command, args []string) error {
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

		if err := t.Probe(ctx); err != nil {
			log.ErrorContext(ctx, "Probe failed", "error", err, "interrupted", ctx.Err() != nil)
			return err
		}
		log.InfoContext(ctx, "Dashboard rendered", "dir", cfg.OutputDir)
		return nil
	}
}
