// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	_ Client = (*execClient)(nil)
)

// Client is able to trace the path to a host.
//
//go:generate go tool moq -out client_moq.go . Client
type Client interface {
	// Trace probes the path to host and returns the parsed hops in probe order.
	// An error is returned if the utility produced no usable output at all.
	Trace(ctx context.Context, host string, opts *Options) ([]Hop, error)
}

// execClient traces by running the system traceroute utility.
type execClient struct {
	run    commandRunner
	tracer trace.Tracer
}

// NewClient returns a [Client] running the system traceroute utility.
func NewClient() Client {
	return &execClient{
		run:    runCommand,
		tracer: otel.Tracer("tracemap.traceroute"),
	}
}

func (c *execClient) Trace(ctx context.Context, host string, opts *Options) ([]Hop, error) {
	if host == "" {
		return nil, errors.New("host must not be empty")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	ctx, span := c.tracer.Start(ctx, "traceroute."+host, trace.WithAttributes(
		attribute.String("traceroute.host", host),
		attribute.Int("traceroute.max_hops", opts.MaxHops),
	))
	defer span.End()

	raw, err := c.probe(ctx, host, opts)
	if err != nil {
		return nil, wrapError(ctx, err, "Failed to trace %s", host)
	}

	hops := Parse(raw)
	span.SetAttributes(attribute.Int("traceroute.hops", len(hops)))
	logHops(ctx, host, hops)
	return hops, nil
}
