// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "tracemap"
	configName     = ".tracemap"
	configFileType = "yaml"
)

// NewCmdRoot creates the root command. The config file and the
// environment are read before any sub command runs.
func NewCmdRoot(version string) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "tracemap",
		Short: "Tracemap, the network path dashboard",
		Long: "Tracemap traces the network paths to a set of targets, locates every hop\n" +
			"and renders the paths on a map that is served locally.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return readConfig(cmd, cfgFile)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.tracemap.yaml)")

	return rootCmd
}

// Execute runs the command tree and exits non-zero on failure
func Execute(version string) {
	if err := BuildCmd(version).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// BuildCmd assembles the root command with all sub commands
func BuildCmd(version string) *cobra.Command {
	cmd := NewCmdRoot(version)
	cmd.AddCommand(NewCmdRun(version), NewCmdProbe(version))
	return cmd
}

// readConfig sets up the environment binding and reads the config file.
// An explicitly given file must exist; the default one is optional.
func readConfig(cmd *cobra.Command, cfgFile string) error {
	viper.SetOptions(viper.ExperimentalBindStruct())
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigType(configFileType)
		viper.SetConfigName(configName)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", viper.ConfigFileUsed())
	case errors.As(err, &notFound) && cfgFile == "":
	default:
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
