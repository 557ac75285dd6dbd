// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"time"

	"github.com/telekom/tracemap/internal/traceroute"
	"github.com/telekom/tracemap/pkg/geo"
	"github.com/telekom/tracemap/pkg/targets"
)

// Hop is a traced hop enriched with the geolocation of its address.
type Hop struct {
	traceroute.Hop `yaml:",inline"`
	// Geo is nil for timed out hops, private addresses and failed lookups.
	Geo *geo.Geo `json:"geo,omitempty" yaml:"geo,omitempty"`
}

// TargetResult is the traced and enriched path to one target.
type TargetResult struct {
	Name     string `json:"name" yaml:"name"`
	Host     string `json:"host" yaml:"host"`
	Category string `json:"category" yaml:"category"`
	// Address is the pre-resolved IPv4 address of the host, if known.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	// HopCount is the number of hops, including timed out ones.
	HopCount int `json:"hopCount" yaml:"hopCount"`
	// TotalLatency is the rtt of the final hop in milliseconds,
	// nil if the final hop timed out.
	TotalLatency *float64 `json:"totalLatency,omitempty" yaml:"totalLatency,omitempty"`
	Hops         []Hop    `json:"hops" yaml:"hops"`
	// Error is only set when the target could not be traced at all.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Target returns the target the result belongs to.
func (r *TargetResult) Target() targets.Target {
	return targets.Target{Name: r.Name, Host: r.Host, Category: r.Category}
}

// Failed reports whether the target could not be traced.
func (r *TargetResult) Failed() bool {
	return r.Error != ""
}

// Run is the outcome of one orchestration over all targets.
type Run struct {
	// Timestamp is when the orchestration finished.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	// Results are ordered by category precedence, then name.
	Results []TargetResult `json:"results" yaml:"results"`
}

// newTargetResult summarizes the enriched hops of target.
func newTargetResult(target targets.Target, address string, hops []Hop) TargetResult {
	r := TargetResult{
		Name:     target.Name,
		Host:     target.Host,
		Category: target.Category,
		Address:  address,
		HopCount: len(hops),
		Hops:     hops,
	}
	if len(hops) > 0 {
		if last := hops[len(hops)-1]; last.RTT != nil {
			latency := *last.RTT
			r.TotalLatency = &latency
		}
	}
	return r
}

// newFailedResult is the stub recorded for a target that could not be traced.
func newFailedResult(target targets.Target, err error) TargetResult {
	return TargetResult{
		Name:     target.Name,
		Host:     target.Host,
		Category: target.Category,
		HopCount: 0,
		Hops:     []Hop{},
		Error:    err.Error(),
	}
}
