// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package targets

import (
	"errors"
	"net"
	"time"
)

const defaultResolveTimeout = 5 * time.Second

// Config configures where targets come from and how they are ordered.
type Config struct {
	// Path is the YAML or JSON target file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
	// CategoryOrder is the category precedence of the results.
	CategoryOrder []string `json:"categoryOrder" yaml:"categoryOrder" mapstructure:"categoryOrder"`
	// Resolve configures the optional pre-resolution of target hosts.
	Resolve ResolveConfig `json:"resolve" yaml:"resolve" mapstructure:"resolve"`
}

// ResolveConfig configures the DNS pre-resolution of target hosts.
type ResolveConfig struct {
	// Enabled turns the pre-resolution on.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	// Nameserver is the host:port of the DNS server. Empty uses /etc/resolv.conf.
	Nameserver string `json:"nameserver" yaml:"nameserver" mapstructure:"nameserver"`
	// Timeout bounds a single query.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Precedence returns the configured category precedence or the default one.
func (c *Config) Precedence() Precedence {
	if len(c.CategoryOrder) == 0 {
		return Precedence(DefaultCategoryOrder)
	}
	return Precedence(c.CategoryOrder)
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.Path == "" {
		errs = append(errs, errors.New("targets.path must be set"))
	}
	if c.Resolve.Nameserver != "" {
		if _, _, err := net.SplitHostPort(c.Resolve.Nameserver); err != nil {
			errs = append(errs, errors.New("targets.resolve.nameserver must be host:port"))
		}
	}
	if c.Resolve.Timeout < 0 {
		errs = append(errs, errors.New("targets.resolve.timeout must not be negative"))
	}
	return errors.Join(errs...)
}
