// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"errors"
	"net/url"
	"time"
)

const (
	// ProviderIPAPI resolves addresses with the ip-api.com JSON endpoint.
	ProviderIPAPI = "ipapi"
	// ProviderMMDB resolves addresses offline with a MaxMind database.
	ProviderMMDB = "mmdb"

	defaultURL               = "http://ip-api.com/json/"
	defaultTimeout           = 5 * time.Second
	defaultRequestsPerMinute = 45
	defaultMinDelay          = 150 * time.Millisecond
	maxTimeout               = 5 * time.Second
)

// Config configures the geolocation resolver.
type Config struct {
	// Provider is the lookup backend, either "ipapi" or "mmdb".
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`
	// URL is the base URL of the ip-api endpoint.
	URL string `json:"url" yaml:"url" mapstructure:"url"`
	// Timeout bounds a single provider lookup.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// RequestsPerMinute is the provider's request budget.
	RequestsPerMinute int `json:"requestsPerMinute" yaml:"requestsPerMinute" mapstructure:"requestsPerMinute"`
	// MinDelay is the minimal spacing between two provider requests.
	MinDelay time.Duration `json:"minDelay" yaml:"minDelay" mapstructure:"minDelay"`
	// NegativeCache remembers failed lookups until ForgetFailures is called.
	NegativeCache bool `json:"negativeCache" yaml:"negativeCache" mapstructure:"negativeCache"`
	// MMDB configures the offline provider.
	MMDB MMDBConfig `json:"mmdb" yaml:"mmdb" mapstructure:"mmdb"`
	// Store configures the optional persistent tier.
	Store StoreConfig `json:"store" yaml:"store" mapstructure:"store"`
}

// MMDBConfig configures the MaxMind database provider.
type MMDBConfig struct {
	// Path is the location of a GeoLite2-City (or compatible) database.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// StoreConfig configures the persistent tier.
type StoreConfig struct {
	// Type is one of "", "sqlite", "mysql" or "redis". Empty disables the tier.
	Type string `json:"type" yaml:"type" mapstructure:"type"`
	// DSN is the data source name or redis URL.
	DSN string `json:"dsn" yaml:"dsn" mapstructure:"dsn"`
	// TTL is how long stored entries are trusted. Zero keeps them forever.
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// Enabled reports whether a persistent tier is configured.
func (c StoreConfig) Enabled() bool {
	return c.Type != ""
}

// DefaultConfig returns the configuration used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Provider:          ProviderIPAPI,
		URL:               defaultURL,
		Timeout:           defaultTimeout,
		RequestsPerMinute: defaultRequestsPerMinute,
		MinDelay:          defaultMinDelay,
		NegativeCache:     true,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderIPAPI:
		if u, err := url.Parse(c.URL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ErrInvalidConfig{Field: "url", Reason: "must be an absolute URL"})
		}
	case ProviderMMDB:
		if c.MMDB.Path == "" {
			errs = append(errs, ErrInvalidConfig{Field: "mmdb.path", Reason: "must be set for the mmdb provider"})
		}
	default:
		errs = append(errs, ErrInvalidConfig{Field: "provider", Reason: "must be one of ipapi, mmdb"})
	}
	if c.Timeout <= 0 || c.Timeout > maxTimeout {
		errs = append(errs, ErrInvalidConfig{Field: "timeout", Reason: "must be greater than 0 and at most 5s"})
	}
	if c.RequestsPerMinute <= 0 {
		errs = append(errs, ErrInvalidConfig{Field: "requestsPerMinute", Reason: "must be greater than 0"})
	}
	if c.MinDelay < 0 {
		errs = append(errs, ErrInvalidConfig{Field: "minDelay", Reason: "must not be negative"})
	}
	switch c.Store.Type {
	case "", "sqlite", "mysql", "redis":
	default:
		errs = append(errs, ErrInvalidConfig{Field: "store.type", Reason: "must be one of sqlite, mysql, redis"})
	}
	if c.Store.Enabled() && c.Store.DSN == "" {
		errs = append(errs, ErrInvalidConfig{Field: "store.dsn", Reason: "must be set when a store is configured"})
	}
	if c.Store.TTL < 0 {
		errs = append(errs, ErrInvalidConfig{Field: "store.ttl", Reason: "must not be negative"})
	}
	return errors.Join(errs...)
}
