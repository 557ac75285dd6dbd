// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/telekom/tracemap/pkg/db"
	"github.com/telekom/tracemap/pkg/geo"
	"github.com/telekom/tracemap/pkg/tracemap/metrics"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []error
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:   "dns name",
			mutate: func(c *Config) { c.Name = "tracemap.example.com" },
		},
		{
			name:    "invalid name",
			mutate:  func(c *Config) { c.Name = "Not A Name!" },
			wantErr: []error{ErrInvalidName},
		},
		{
			name:    "missing output dir",
			mutate:  func(c *Config) { c.OutputDir = "" },
			wantErr: []error{ErrInvalidOutputDir},
		},
		{
			name: "multiple component errors are joined",
			mutate: func(c *Config) {
				c.Name = "_"
				c.Probe.MaxHops = 0
				c.Geo.Timeout = 10 * time.Second
				c.Store.Type = db.TypePostgres
			},
			wantErr: []error{ErrInvalidName},
		},
		{
			name:   "telemetry is only validated when enabled",
			mutate: func(c *Config) { c.Telemetry.Exporter = "kafka" },
		},
		{
			name: "enabled telemetry",
			mutate: func(c *Config) {
				c.Telemetry = metrics.Config{Enabled: true, Exporter: metrics.GRPC}
			},
			wantErr: []error{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate(t.Context())
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestConfig_ValidateReportsEveryComponent(t *testing.T) {
	c := Default()
	c.Probe.MaxHops = 0
	c.Geo.Provider = "unknown"
	c.Store.Type = "s3"

	err := c.Validate(t.Context())
	assert.ErrorContains(t, err, "probe: ")
	assert.ErrorContains(t, err, "geo: ")
	assert.ErrorContains(t, err, "store: ")

	var geoErr geo.ErrInvalidConfig
	assert.ErrorAs(t, err, &geoErr)
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "output", c.OutputDir)
	assert.Equal(t, ":12034", c.Api.ListeningAddress)
	assert.Equal(t, 20, c.Probe.MaxHops)
	assert.True(t, c.Geo.NegativeCache)
	assert.False(t, c.HasTelemetry())
}
