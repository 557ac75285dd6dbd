// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/tracemap/internal/helper"
	"github.com/telekom/tracemap/internal/traceroute"
	"github.com/telekom/tracemap/pkg/geo"
	"github.com/telekom/tracemap/pkg/orchestrator"
)

func sampleRun(ts time.Time) orchestrator.Run {
	rtt := 24.1
	return orchestrator.Run{
		Timestamp: ts,
		Results: []orchestrator.TargetResult{
			{
				Name:         "Binance",
				Host:         "api.binance.com",
				Category:     "Quant APIs",
				HopCount:     2,
				TotalLatency: &rtt,
				Hops: []orchestrator.Hop{
					{Hop: traceroute.Hop{Index: 1, Host: traceroute.TimeoutHost}},
					{
						Hop: traceroute.Hop{Index: 2, Host: "core1.example.net", IP: "93.184.216.34", RTT: &rtt},
						Geo: &geo.Geo{Latitude: 42.15, Longitude: -70.82, City: "Norwell", Country: "United States", ASNumber: "AS15133"},
					},
				},
			},
			{
				Name:     "NYSE",
				Host:     "nyse.com",
				Category: "NYSE & Financial",
				Hops:     []orchestrator.Hop{},
				Error:    "probe failed",
			},
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default", cfg: Config{}},
		{name: "file", cfg: Config{Type: TypeFile, Path: "out/results.json"}},
		{name: "sqlite", cfg: Config{Type: TypeSQLite}},
		{name: "postgres without dsn", cfg: Config{Type: TypePostgres}, wantErr: true},
		{name: "postgres", cfg: Config{Type: TypePostgres, DSN: "postgres://localhost/tracemap"}},
		{name: "github without repo", cfg: Config{Type: TypeGitHub, GitHub: GitHubConfig{Owner: "telekom"}}, wantErr: true},
		{name: "github", cfg: Config{Type: TypeGitHub, GitHub: GitHubConfig{Owner: "telekom", Repo: "results"}}},
		{name: "unknown type", cfg: Config{Type: "s3"}, wantErr: true},
		{name: "negative retries", cfg: Config{Retry: helper.RetryConfig{Count: -1}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ErrInvalidConfig
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	t.Run("file is the default", func(t *testing.T) {
		d, err := New(t.Context(), &Config{Path: filepath.Join(dir, "results.json")})
		require.NoError(t, err)
		assert.IsType(t, &File{}, d)
	})

	t.Run("sqlite", func(t *testing.T) {
		d, err := New(t.Context(), &Config{Type: TypeSQLite, Path: filepath.Join(dir, "runs.db")})
		require.NoError(t, err)
		assert.IsType(t, &SQLite{}, d)
		assert.NoError(t, d.Close())
	})

	t.Run("github", func(t *testing.T) {
		d, err := New(t.Context(), &Config{Type: TypeGitHub, GitHub: GitHubConfig{Owner: "telekom", Repo: "results", Token: "token"}})
		require.NoError(t, err)
		assert.IsType(t, &GitHub{}, d)
	})

	t.Run("unknown", func(t *testing.T) {
		d, err := New(t.Context(), &Config{Type: "s3"})
		assert.Error(t, err)
		assert.Nil(t, d)
	})
}

func TestConfig_Defaults(t *testing.T) {
	c := &Config{}
	assert.Equal(t, defaultPath, c.path())
	assert.Equal(t, DefaultRetry, c.retry())

	c = &Config{Path: "x.json", Retry: helper.RetryConfig{Count: 1, Delay: time.Millisecond}}
	assert.Equal(t, "x.json", c.path())
	assert.Equal(t, 1, c.retry().Count)
}
