// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNew_RegistersRuntimeCollectors(t *testing.T) {
	m := New(Config{}, "v1.0.0")

	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
}

func TestManager_Register(t *testing.T) {
	m := New(Config{}, "")
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "tracemap_test_gauge"})

	require.NoError(t, m.Register(gauge))
	assert.Error(t, m.Register(gauge), "registering a collector twice fails")
}

func TestMetrics_InitTracing(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "success - stdout exporter",
			config: Config{Exporter: STDOUT},
		},
		{
			name:   "success - otlp http exporter",
			config: Config{Exporter: HTTP, Url: "http://localhost:4318"},
		},
		{
			name:   "success - otlp grpc exporter with token",
			config: Config{Exporter: GRPC, Url: "http://localhost:4317", Token: "my-super-secret-token"},
		},
		{
			name:   "success - no exporter",
			config: Config{Exporter: NOOP},
		},
		{
			name:   "success - empty exporter",
			config: Config{},
		},
		{
			name:    "failure - unsupported exporter",
			config:  Config{Exporter: "unsupported"},
			wantErr: true,
		},
		{
			name: "failure - missing certificate",
			config: Config{
				Exporter: HTTP,
				Url:      "https://localhost:4318",
				TLS:      TLSConfig{Enabled: true, CertPath: "does/not/exist.pem"},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.config, "v1.0.0")
			err := m.InitTracing(t.Context())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
			assert.True(t, ok, "tracer provider is %T", otel.GetTracerProvider())
			require.NoError(t, m.Shutdown(t.Context()))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "stdout without url", config: Config{Exporter: STDOUT}},
		{name: "http with url", config: Config{Exporter: HTTP, Url: "http://collector:4318"}},
		{name: "grpc without url", config: Config{Exporter: GRPC}, wantErr: true},
		{name: "unknown exporter", config: Config{Exporter: "kafka"}, wantErr: true},
		{name: "relative url", config: Config{Exporter: HTTP, Url: "collector"}, wantErr: true},
		{name: "sample ratio out of range", config: Config{Exporter: NOOP, SampleRatio: 1.5}, wantErr: true},
		{name: "missing tls certificate", config: Config{Exporter: STDOUT, TLS: TLSConfig{Enabled: true, CertPath: "does/not/exist.pem"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate(t.Context())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetTLSConfig(t *testing.T) {
	cfg, err := getTLSConfig(&TLSConfig{})
	require.NoError(t, err)
	assert.Nil(t, cfg)

	cfg, err = getTLSConfig(&TLSConfig{Enabled: true})
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Nil(t, cfg.RootCAs)
}

func TestManager_Sampler(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{name: "unset records everything", ratio: 0, want: "AlwaysOnSampler"},
		{name: "full ratio records everything", ratio: 1, want: "AlwaysOnSampler"},
		{name: "ratio follows the parent", ratio: 0.25, want: "ParentBased{root:TraceIDRatioBased{0.25}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &manager{config: Config{SampleRatio: tt.ratio}}
			assert.Contains(t, m.sampler().Description(), tt.want)
		})
	}
}

func TestManager_ShutdownWithoutTracing(t *testing.T) {
	m := New(Config{}, "")
	assert.NoError(t, m.Shutdown(t.Context()))
}
