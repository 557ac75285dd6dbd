// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package metrics owns the prometheus registry and the OpenTelemetry
// tracer provider of a tracemap instance.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/telekom/tracemap/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const serviceName = "tracemap"

// Span batching of the tracer provider.
const (
	batchTimeout = 5 * time.Second
	maxQueueSize = 1000
	maxBatchSize = 100
)

var _ Provider = (*manager)(nil)

// Provider gives access to the prometheus registry and controls tracing.
//
//go:generate go tool moq -out metrics_moq.go . Provider
type Provider interface {
	// GetRegistry returns the registry all collectors are registered on
	GetRegistry() *prometheus.Registry
	// Register adds the given collectors to the registry
	Register(cs ...prometheus.Collector) error
	// InitTracing installs the global tracer provider
	InitTracing(ctx context.Context) error
	// Shutdown flushes and stops the tracer provider
	Shutdown(ctx context.Context) error
}

type manager struct {
	config   Config
	version  string
	registry *prometheus.Registry
	tp       *sdktrace.TracerProvider
}

// New returns a provider whose registry already holds the go and process collectors.
//
//nolint:gocritic // config is copied on purpose
func New(config Config, version string) Provider {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &manager{
		config:   config,
		version:  version,
		registry: registry,
	}
}

func (m *manager) GetRegistry() *prometheus.Registry {
	return m.registry
}

// Register registers all collectors and stops at the first one that is rejected.
func (m *manager) Register(cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := m.registry.Register(c); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return nil
}

// InitTracing creates the exporter and installs a tracer provider
// batching into it as the global provider.
func (m *manager) InitTracing(ctx context.Context) error {
	log := logger.FromContext(ctx)

	res, err := m.resource(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create resource", "error", err)
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := m.config.Exporter.Create(ctx, &m.config)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create exporter", "error", err)
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	m.tp = sdktrace.NewTracerProvider(
		sdktrace.WithSampler(m.sampler()),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter,
			sdktrace.WithBatchTimeout(batchTimeout),
			sdktrace.WithMaxQueueSize(maxQueueSize),
			sdktrace.WithMaxExportBatchSize(maxBatchSize),
		)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(m.tp)
	log.DebugContext(ctx, "Tracing initialized", "exporter", m.config.Exporter, "sampleRatio", m.config.SampleRatio)
	return nil
}

func (m *manager) resource(ctx context.Context) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(m.version),
		),
	)
}

// sampler records everything unless a ratio is configured. Child spans
// follow the decision of their parent.
func (m *manager) sampler() sdktrace.Sampler {
	if m.config.SampleRatio <= 0 || m.config.SampleRatio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(m.config.SampleRatio))
}

// Shutdown flushes pending spans. It is a no-op if tracing was never initialized.
func (m *manager) Shutdown(ctx context.Context) error {
	if m.tp == nil {
		return nil
	}
	err := m.tp.Shutdown(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.FromContext(ctx).ErrorContext(ctx, "Failed to shutdown tracer provider", "error", err)
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}
	return nil
}
