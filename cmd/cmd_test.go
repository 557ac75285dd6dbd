// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCmd(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	c, _, err := root.Find([]string{name})
	require.NoError(t, err)
	require.Equal(t, name, c.Name())
	return c
}

func TestBuildCmd(t *testing.T) {
	root := BuildCmd("v1.0.0")
	assert.Equal(t, "v1.0.0", root.Version)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))

	run := findCmd(t, root, "run")
	for _, name := range []string{"targets", "output", "workers", "max-hops", "refresh", "address", "store"} {
		assert.NotNil(t, run.Flags().Lookup(name), "run has flag %s", name)
	}

	probe := findCmd(t, root, "probe")
	assert.NotNil(t, probe.Flags().Lookup("targets"))
	assert.Nil(t, probe.Flags().Lookup("address"), "probe does not serve")
}

func TestLoadConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()
	viper.SetOptions(viper.ExperimentalBindStruct())

	cfgFile := filepath.Join(t.TempDir(), "tracemap.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
name: tracemap.example.com
outputDir: /tmp/tracemap
probe:
  hopTimeout: 3s
geo:
  requestsPerMinute: 30
targets:
  categoryOrder: [B, A]
`), 0o600))
	viper.SetConfigFile(cfgFile)
	require.NoError(t, viper.ReadInConfig())

	probe := NewCmdProbe("v1.0.0")
	require.NoError(t, probe.Flags().Parse([]string{"--workers", "2", "--targets", "my-targets.yaml"}))
	require.NoError(t, bindFlags(probe, commonFlags...))

	cfg, err := loadConfig(t.Context())
	require.NoError(t, err)

	assert.Equal(t, "tracemap.example.com", cfg.Name)
	assert.Equal(t, "/tmp/tracemap", cfg.OutputDir)
	assert.Equal(t, 3*time.Second, cfg.Probe.HopTimeout)
	assert.Equal(t, 20, cfg.Probe.MaxHops, "defaults survive")
	assert.Equal(t, 30, cfg.Geo.RequestsPerMinute)
	assert.True(t, cfg.Geo.NegativeCache)
	assert.Equal(t, []string{"B", "A"}, cfg.Targets.CategoryOrder)
	assert.Equal(t, 2, cfg.Orchestrator.Workers)
	assert.Equal(t, "my-targets.yaml", cfg.Targets.Path)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()
	viper.Set("probe.maxHops", 0)

	_, err := loadConfig(t.Context())
	assert.Error(t, err)
}

func TestReadConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("explicit file must exist", func(t *testing.T) {
		viper.Reset()
		err := readConfig(&cobra.Command{}, filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("default file is optional", func(t *testing.T) {
		viper.Reset()
		t.Setenv("HOME", t.TempDir())
		assert.NoError(t, readConfig(&cobra.Command{}, ""))
	})

	t.Run("environment overrides file", func(t *testing.T) {
		viper.Reset()
		cfgFile := filepath.Join(t.TempDir(), "tracemap.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("outputDir: from-file\n"), 0o600))
		t.Setenv("TRACEMAP_OUTPUTDIR", "from-env")

		require.NoError(t, readConfig(&cobra.Command{}, cfgFile))
		assert.Equal(t, "from-env", viper.GetString("outputDir"))
	})
}
