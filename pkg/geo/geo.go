// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package geo resolves public IPv4 addresses to coarse geographic and network
// metadata. Lookups go through a process-wide [Cache], an optional persistent
// [Store] and a rate limited [Provider], in that order.
package geo

import (
	"context"
	"net/netip"
)

// Geo is the metadata resolved for one address.
// A Geo is never modified once it was cached.
type Geo struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	City      string  `json:"city" yaml:"city"`
	Region    string  `json:"region" yaml:"region"`
	Country   string  `json:"country" yaml:"country"`
	ISP       string  `json:"isp" yaml:"isp"`
	Org       string  `json:"org" yaml:"org"`
	ASNumber  string  `json:"asNumber" yaml:"asNumber"`
}

// Provider looks up the metadata of a single public address.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string
	// Lookup returns the metadata of addr or an error if the provider has none.
	Lookup(ctx context.Context, addr netip.Addr) (Geo, error)
	// Close releases the provider's resources.
	Close() error
}

// Store is a persistent tier that survives process restarts.
type Store interface {
	// Get returns the stored metadata of ip. It reports false if there is none.
	Get(ctx context.Context, ip string) (Geo, bool, error)
	// Put stores the metadata of ip, replacing an older entry.
	Put(ctx context.Context, ip string, geo Geo) error
	// Close releases the store's resources.
	Close() error
}

// Resolver maps addresses to metadata.
//
//go:generate go tool moq -out resolver_moq.go . Resolver
type Resolver interface {
	// Resolve returns the metadata of ip. It reports false if ip is not a
	// public IPv4 address or the lookup failed.
	Resolve(ctx context.Context, ip string) (Geo, bool)
	// ForgetFailures drops all remembered lookup failures.
	ForgetFailures()
}
