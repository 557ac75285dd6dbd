// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/tracemap/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

var _ Resolver = (*CachingResolver)(nil)

// CachingResolver resolves addresses through the in-memory cache, the
// optional persistent store and finally the rate limited provider.
// Concurrent lookups of the same address result in a single provider call.
type CachingResolver struct {
	provider      Provider
	cache         *Cache
	store         Store
	limiter       *rate.Limiter
	timeout       time.Duration
	negativeCache bool
	flights       singleflight.Group
	metrics       metrics
	tracer        trace.Tracer
}

// Option configures a [CachingResolver].
type Option func(*CachingResolver)

// WithStore adds a persistent tier consulted before the provider.
func WithStore(s Store) Option {
	return func(r *CachingResolver) {
		r.store = s
	}
}

// WithCache replaces the resolver's cache.
func WithCache(c *Cache) Option {
	return func(r *CachingResolver) {
		r.cache = c
	}
}

// WithLimiter replaces the limiter derived from the configuration.
func WithLimiter(l *rate.Limiter) Option {
	return func(r *CachingResolver) {
		r.limiter = l
	}
}

// NewProvider creates the provider named in the configuration.
func NewProvider(cfg *Config, userAgent string) (Provider, error) {
	switch cfg.Provider {
	case ProviderIPAPI:
		return newIPAPIProvider(cfg.URL, userAgent), nil
	case ProviderMMDB:
		return newMMDBProvider(cfg.MMDB.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// NewResolver returns a resolver querying provider.
func NewResolver(provider Provider, cfg *Config, opts ...Option) *CachingResolver {
	r := &CachingResolver{
		provider:      provider,
		cache:         NewCache(),
		limiter:       newLimiter(cfg.RequestsPerMinute, cfg.MinDelay),
		timeout:       cfg.Timeout,
		negativeCache: cfg.NegativeCache,
		metrics:       newMetrics(),
		tracer:        otel.Tracer("tracemap.geo"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.timeout <= 0 {
		r.timeout = defaultTimeout
	}
	return r
}

// lookupResult is what a single flight hands to all of its waiters.
type lookupResult struct {
	geo Geo
	ok  bool
}

// Resolve returns the metadata of ip. Private and otherwise non-public
// addresses are rejected without a lookup.
func (r *CachingResolver) Resolve(ctx context.Context, ip string) (Geo, bool) {
	addr, ok := lookupable(ip)
	if !ok {
		r.metrics.lookups.WithLabelValues(r.provider.Name(), outcomeSkipped).Inc()
		return Geo{}, false
	}
	key := addr.String()

	if g, ok := r.cache.Get(key); ok {
		r.metrics.cacheHits.Inc()
		return g, true
	}
	if r.negativeCache && r.cache.Failed(key) {
		return Geo{}, false
	}

	v, _, _ := r.flights.Do(key, func() (any, error) {
		return r.lookup(ctx, key), nil
	})
	res := v.(lookupResult)
	return res.geo, res.ok
}

// lookup resolves key through the store and the provider.
// It runs at most once at a time per key.
func (r *CachingResolver) lookup(ctx context.Context, key string) lookupResult {
	if g, ok := r.cache.Get(key); ok {
		return lookupResult{geo: g, ok: true}
	}

	ctx, span := r.tracer.Start(ctx, "geo.lookup", trace.WithAttributes(
		attribute.String("geo.ip", key),
		attribute.String("geo.provider", r.provider.Name()),
	))
	defer span.End()
	log := logger.FromContext(ctx).With("ip", key, "provider", r.provider.Name())

	if g, ok := r.fromStore(ctx, key); ok {
		r.metrics.lookups.WithLabelValues(r.provider.Name(), outcomeStored).Inc()
		return lookupResult{geo: r.cache.Add(key, g), ok: true}
	}

	start := time.Now()
	g, err := r.query(ctx, key)
	r.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		r.metrics.lookups.WithLabelValues(r.provider.Name(), outcomeFailure).Inc()
		span.SetStatus(codes.Error, "lookup failed")
		span.RecordError(err)
		log.WarnContext(ctx, "Geolocation lookup failed", "error", err)
		if r.negativeCache && ctx.Err() == nil && !errors.Is(err, errRateLimited) {
			r.cache.MarkFailed(key)
		}
		return lookupResult{}
	}

	r.metrics.lookups.WithLabelValues(r.provider.Name(), outcomeSuccess).Inc()
	g = r.cache.Add(key, g)
	log.DebugContext(ctx, "Resolved geolocation", "city", g.City, "country", g.Country)
	r.toStore(ctx, key, g)
	return lookupResult{geo: g, ok: true}
}

// query waits for the limiter and asks the provider.
func (r *CachingResolver) query(ctx context.Context, key string) (Geo, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return Geo{}, fmt.Errorf("%w: %w", errRateLimited, err)
	}
	addr, _ := lookupable(key)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.provider.Lookup(ctx, addr)
}

func (r *CachingResolver) fromStore(ctx context.Context, key string) (Geo, bool) {
	if r.store == nil {
		return Geo{}, false
	}
	g, ok, err := r.store.Get(ctx, key)
	if err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "Failed to read from geolocation store", "ip", key, "error", err)
		return Geo{}, false
	}
	return g, ok
}

func (r *CachingResolver) toStore(ctx context.Context, key string, g Geo) {
	if r.store == nil {
		return
	}
	if err := r.store.Put(ctx, key, g); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "Failed to write to geolocation store", "ip", key, "error", err)
	}
}

// ForgetFailures drops the remembered failures so they are retried.
func (r *CachingResolver) ForgetFailures() {
	r.cache.ForgetFailures()
}

// GetMetricCollectors returns the resolver's prometheus collectors.
func (r *CachingResolver) GetMetricCollectors() []prometheus.Collector {
	return r.metrics.GetCollectors()
}

// Close releases the provider and the store.
func (r *CachingResolver) Close() error {
	var errs []error
	if err := r.provider.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close provider: %w", err))
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
	}
	return errors.Join(errs...)
}
