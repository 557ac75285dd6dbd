// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package orchestrator traces all targets on a bounded worker pool, enriches
// their hops with geolocation data and returns a deterministically ordered
// [Run]. A failing target never affects the others.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/internal/traceroute"
	"github.com/telekom/tracemap/pkg/geo"
	"github.com/telekom/tracemap/pkg/targets"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 6

// Config configures the orchestrator.
type Config struct {
	// Workers is the number of targets traced concurrently.
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.New("orchestrator.workers must not be negative")
	}
	return nil
}

// Orchestrator runs the probe and enrichment pipeline for a set of targets.
type Orchestrator struct {
	client     traceroute.Client
	resolver   geo.Resolver
	addresses  targets.AddressResolver
	probe      *traceroute.Options
	workers    int
	precedence targets.Precedence
	metrics    metrics
	tracer     trace.Tracer
	now        func() time.Time
}

// Option configures an [Orchestrator].
type Option func(*Orchestrator)

// WithAddressResolver pre-resolves every target host before it is traced.
func WithAddressResolver(r targets.AddressResolver) Option {
	return func(o *Orchestrator) {
		o.addresses = r
	}
}

// WithPrecedence sets the category precedence of the results.
func WithPrecedence(p targets.Precedence) Option {
	return func(o *Orchestrator) {
		o.precedence = p
	}
}

// New returns an orchestrator tracing with client and enriching with resolver.
func New(client traceroute.Client, resolver geo.Resolver, cfg Config, probe *traceroute.Options, opts ...Option) *Orchestrator {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	o := &Orchestrator{
		client:     client,
		resolver:   resolver,
		probe:      probe,
		workers:    workers,
		precedence: targets.Precedence(targets.DefaultCategoryOrder),
		metrics:    newMetrics(),
		tracer:     otel.Tracer("tracemap.orchestrator"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetMetricCollectors returns the orchestrator's prometheus collectors.
func (o *Orchestrator) GetMetricCollectors() []prometheus.Collector {
	return o.metrics.GetCollectors()
}

// Orchestrate traces every target and returns the ordered results.
// It always returns one result per target; targets that could not be
// traced, including those pending when ctx is cancelled, yield a stub
// carrying the error.
func (o *Orchestrator) Orchestrate(ctx context.Context, list []targets.Target) Run {
	ctx, span := o.tracer.Start(ctx, "orchestrate", trace.WithAttributes(
		attribute.Int("tracemap.targets", len(list)),
		attribute.Int("tracemap.workers", o.workers),
	))
	defer span.End()
	log := logger.FromContext(ctx)
	start := time.Now()

	o.resolver.ForgetFailures()
	log.InfoContext(ctx, "Starting orchestration", "targets", len(list), "workers", o.workers)

	outcomes := make([]outcome, len(list))
	var g errgroup.Group
	g.SetLimit(o.workers)
	for i, target := range list {
		g.Go(func() error {
			outcomes[i] = o.runTask(ctx, target)
			return nil
		})
	}
	_ = g.Wait()

	results := make([]TargetResult, 0, len(outcomes))
	failed := 0
	for _, oc := range outcomes {
		r := oc.toResult()
		if r.Failed() {
			failed++
		}
		o.metrics.Set(&r)
		results = append(results, r)
	}
	slices.SortFunc(results, func(a, b TargetResult) int {
		return o.precedence.Compare(a.Target(), b.Target())
	})

	elapsed := time.Since(start)
	o.metrics.SetDuration(elapsed)
	span.SetAttributes(attribute.Int("tracemap.failed", failed))
	log.InfoContext(ctx, "Orchestration finished", "targets", len(results), "failed", failed, "duration", elapsed)

	return Run{Timestamp: o.now().UTC(), Results: results}
}

// runTask runs the pipeline for one target and converts every failure,
// including panics, into a failed outcome.
func (o *Orchestrator) runTask(ctx context.Context, target targets.Target) (oc outcome) {
	ctx = logger.WithAttrs(ctx, "target", target.Name, "host", target.Host, "category", target.Category)
	log := logger.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "Task panicked", "panic", r, "stack", string(debug.Stack()))
			oc = failure(target, fmt.Errorf("%w: %v", ErrTaskPanicked, r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return failure(target, fmt.Errorf("not traced: %w", err))
	}

	r, err := o.traceTarget(ctx, target)
	if err != nil {
		log.WarnContext(ctx, "Target could not be traced", "error", err)
		return failure(target, err)
	}
	return success(target, r)
}

func (o *Orchestrator) traceTarget(ctx context.Context, target targets.Target) (TargetResult, error) {
	ctx, span := o.tracer.Start(ctx, "target."+target.Name, trace.WithAttributes(
		attribute.String("tracemap.target.host", target.Host),
		attribute.String("tracemap.target.category", target.Category),
	))
	defer span.End()

	address := o.lookupAddress(ctx, target.Host)

	hops, err := o.client.Trace(ctx, target.Host, o.probe)
	if err != nil {
		span.SetStatus(codes.Error, "trace failed")
		span.RecordError(err)
		return TargetResult{}, err
	}

	r := newTargetResult(target, address, o.enrich(ctx, hops))
	span.SetAttributes(attribute.Int("tracemap.target.hops", r.HopCount))
	return r, nil
}

// lookupAddress pre-resolves host if an address resolver is configured.
// Failures are only logged since tracing does not depend on it.
func (o *Orchestrator) lookupAddress(ctx context.Context, host string) string {
	if o.addresses == nil {
		return ""
	}
	addr, err := o.addresses.LookupIPv4(ctx, host)
	if err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "Failed to pre-resolve target", "error", err)
		return ""
	}
	return addr
}

// enrich resolves every distinct hop address once, in first-seen order,
// and attaches a copy of the result to every hop sharing that address.
func (o *Orchestrator) enrich(ctx context.Context, hops []traceroute.Hop) []Hop {
	resolved := map[string]*geo.Geo{}
	for _, h := range hops {
		if h.TimedOut() {
			continue
		}
		if _, seen := resolved[h.IP]; seen {
			continue
		}
		resolved[h.IP] = nil
		if g, ok := o.resolver.Resolve(ctx, h.IP); ok {
			resolved[h.IP] = &g
		}
	}

	enriched := make([]Hop, len(hops))
	for i, h := range hops {
		enriched[i] = Hop{Hop: h}
		if g := resolved[h.IP]; g != nil && !h.TimedOut() {
			c := *g
			enriched[i].Geo = &c
		}
	}
	return enriched
}
