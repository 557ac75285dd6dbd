// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package geo

import "github.com/prometheus/client_golang/prometheus"

// Lookup outcomes used as metric label values.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeStored  = "stored"
	outcomeSkipped = "skipped"
)

// metrics defines the metric collectors of the resolver
type metrics struct {
	lookups   *prometheus.CounterVec
	cacheHits prometheus.Counter
	duration  prometheus.Histogram
}

// newMetrics initializes metric collectors of the resolver
func newMetrics() metrics {
	return metrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracemap_geo_lookups_total",
				Help: "Total number of geolocation lookups by provider and outcome.",
			},
			[]string{"provider", "outcome"},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tracemap_geo_cache_hits_total",
				Help: "Total number of geolocation lookups answered by the in-memory cache.",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tracemap_geo_lookup_duration_seconds",
				Help:    "Histogram of provider lookup durations in seconds, including rate limiter waits.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// GetCollectors returns all metric collectors
func (m *metrics) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.lookups,
		m.cacheHits,
		m.duration,
	}
}
