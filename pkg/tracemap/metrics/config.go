// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/telekom/tracemap/internal/logger"
)

// Config configures the tracing of a tracemap instance.
// Prometheus metrics are always collected and served.
type Config struct {
	// Enabled turns span export on. Without it spans are discarded.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Exporter selects where spans are sent
	Exporter Exporter `yaml:"exporter" mapstructure:"exporter"`
	// Url of the otlp collector
	Url string `yaml:"url" mapstructure:"url"`
	// Token is sent as bearer token to the collector
	Token string `yaml:"token" mapstructure:"token"`
	// TLS configures the connection to the collector
	TLS TLSConfig `yaml:"tls" mapstructure:"tls"`
	// SampleRatio is the fraction of root spans that are recorded.
	// Zero records every span.
	SampleRatio float64 `yaml:"sampleRatio" mapstructure:"sampleRatio"`
	// Platform is an optional label of the instance info metric
	Platform string `yaml:"platform" mapstructure:"platform"`
}

// TLSConfig configures the connection to the collector.
type TLSConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// CertPath is a PEM bundle of custom root certificates. Empty uses the system roots.
	CertPath string `yaml:"certPath" mapstructure:"certPath"`
}

// Validate reports every invalid field at once.
func (c *Config) Validate(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var errs []error
	if err := c.Exporter.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Exporter.IsExporting() {
		if c.Url == "" {
			errs = append(errs, fmt.Errorf("url is required for otlp exporter %q", c.Exporter))
		} else if u, err := url.Parse(c.Url); err != nil || u.Host == "" {
			errs = append(errs, fmt.Errorf("url %q of otlp exporter %q is not absolute", c.Url, c.Exporter))
		}
	}
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("sampleRatio must be between 0 and 1, got %v", c.SampleRatio))
	}
	if c.TLS.Enabled && c.TLS.CertPath != "" {
		if _, err := os.Stat(c.TLS.CertPath); err != nil {
			errs = append(errs, fmt.Errorf("tls certificate: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		log.ErrorContext(ctx, "Invalid telemetry configuration", "exporter", c.Exporter, "error", err)
	}
	return err
}
