// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// TimeoutHost is the host reported for a hop that did not answer.
const TimeoutHost = "*"

const (
	defaultCommand    = "traceroute"
	defaultMaxHops    = 20
	defaultHopTimeout = 2 * time.Second
	defaultTimeout    = 60 * time.Second
	maxHopsLimit      = 255
)

// Options configures a single probe invocation.
type Options struct {
	// Command is the name or path of the traceroute executable.
	Command string `json:"command" yaml:"command" mapstructure:"command"`
	// MaxHops is the maximum number of hops to probe.
	MaxHops int `json:"maxHops" yaml:"maxHops" mapstructure:"maxHops"`
	// HopTimeout is how long the utility waits for an answer per hop.
	HopTimeout time.Duration `json:"hopTimeout" yaml:"hopTimeout" mapstructure:"hopTimeout"`
	// Timeout bounds a single invocation of the utility.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() *Options {
	return &Options{
		Command:    defaultCommand,
		MaxHops:    defaultMaxHops,
		HopTimeout: defaultHopTimeout,
		Timeout:    defaultTimeout,
	}
}

// Validate checks the options for values the utility would reject.
func (o *Options) Validate() error {
	var errs []error
	if o.Command == "" {
		errs = append(errs, errors.New("command must not be empty"))
	}
	if o.MaxHops < 1 || o.MaxHops > maxHopsLimit {
		errs = append(errs, fmt.Errorf("maxHops must be between 1 and %d, got %d", maxHopsLimit, o.MaxHops))
	}
	if o.HopTimeout < time.Second {
		errs = append(errs, fmt.Errorf("hopTimeout must be at least 1s, got %v", o.HopTimeout))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %v", o.Timeout))
	}
	return errors.Join(errs...)
}

// hopTimeoutSeconds is the -w argument; the utility only accepts whole seconds.
func (o *Options) hopTimeoutSeconds() string {
	return strconv.Itoa(max(1, int(o.HopTimeout.Round(time.Second)/time.Second)))
}

// Hop is one router observed at a given distance along the path.
type Hop struct {
	// Index is the 1-based distance from the source.
	Index int `json:"index" yaml:"index"`
	// Host is the reported hostname, the address itself or [TimeoutHost].
	Host string `json:"host" yaml:"host"`
	// IP is the IPv4 address of the hop, empty when it timed out.
	IP string `json:"ip,omitempty" yaml:"ip,omitempty"`
	// RTT is the round trip time in milliseconds, nil when the hop timed out.
	RTT *float64 `json:"rtt,omitempty" yaml:"rtt,omitempty"`
}

// TimedOut reports whether the hop did not answer.
func (h Hop) TimedOut() bool {
	return h.IP == ""
}

// Latency returns the round trip time as a duration, zero for timed out hops.
func (h Hop) Latency() time.Duration {
	if h.RTT == nil {
		return 0
	}
	return time.Duration(*h.RTT * float64(time.Millisecond))
}

func (h Hop) String() string {
	if h.TimedOut() {
		return fmt.Sprintf("%-2d  %s", h.Index, TimeoutHost)
	}

	const maxNameLength = 45
	name := h.Host
	if name != h.IP && len(name) <= maxNameLength-len(h.IP)-3 {
		name = fmt.Sprintf("%s (%s)", name, h.IP)
	}

	return fmt.Sprintf("%-2d  %-45.45s  %s", h.Index, name, h.Latency().String())
}
