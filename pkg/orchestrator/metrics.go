// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics defines the metric collectors of the orchestrator
type metrics struct {
	hops     *prometheus.GaugeVec
	latency  *prometheus.GaugeVec
	failures *prometheus.CounterVec
	duration prometheus.Gauge
}

// newMetrics initializes metric collectors of the orchestrator
func newMetrics() metrics {
	return metrics{
		hops: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tracemap_target_hops",
				Help: "Number of hops on the path to the target in the latest run.",
			},
			[]string{"target", "category"},
		),
		latency: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tracemap_target_latency_milliseconds",
				Help: "Round trip time of the final hop to the target in the latest run.",
			},
			[]string{"target", "category"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracemap_probe_failures_total",
				Help: "Total number of targets that could not be traced.",
			},
			[]string{"target", "category"},
		),
		duration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tracemap_run_duration_seconds",
				Help: "Duration of the latest orchestration run in seconds.",
			},
		),
	}
}

// GetCollectors returns all metric collectors
func (m *metrics) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.hops,
		m.latency,
		m.failures,
		m.duration,
	}
}

// Set records the result of one target
func (m *metrics) Set(r *TargetResult) {
	if r.Failed() {
		m.failures.WithLabelValues(r.Name, r.Category).Inc()
		m.hops.DeleteLabelValues(r.Name, r.Category)
		m.latency.DeleteLabelValues(r.Name, r.Category)
		return
	}
	m.hops.WithLabelValues(r.Name, r.Category).Set(float64(r.HopCount))
	if r.TotalLatency != nil {
		m.latency.WithLabelValues(r.Name, r.Category).Set(*r.TotalLatency)
	} else {
		m.latency.DeleteLabelValues(r.Name, r.Category)
	}
}

// SetDuration records how long the run took
func (m *metrics) SetDuration(d time.Duration) {
	m.duration.Set(d.Seconds())
}
