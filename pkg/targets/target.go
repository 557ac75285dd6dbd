// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package targets loads, validates and orders the hosts to trace.
package targets

import (
	"errors"
	"fmt"
	"net/netip"
	"slices"
	"strings"

	"golang.org/x/net/idna"
)

// Target is a single host to trace.
type Target struct {
	// Name is the display name of the target.
	Name string `json:"name" yaml:"name"`
	// Host is a hostname or IPv4 address.
	Host string `json:"host" yaml:"host"`
	// Category groups targets in the dashboard.
	Category string `json:"category" yaml:"category"`
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%s (%s)", t.Category, t.Name, t.Host)
}

// Entry is a target as it appears in the target file.
type Entry struct {
	Name string `json:"name" yaml:"name"`
	Host string `json:"host" yaml:"host"`
}

// Catalog maps a category to its targets.
type Catalog map[string][]Entry

// Flatten returns all (category, target) pairs. Categories are visited in
// lexical order and targets in file order.
func (c Catalog) Flatten() []Target {
	categories := make([]string, 0, len(c))
	for category := range c {
		categories = append(categories, category)
	}
	slices.Sort(categories)

	var targets []Target
	for _, category := range categories {
		for _, e := range c[category] {
			targets = append(targets, Target{Name: e.Name, Host: e.Host, Category: category})
		}
	}
	return targets
}

// Len returns the number of targets in all categories.
func (c Catalog) Len() int {
	n := 0
	for _, entries := range c {
		n += len(entries)
	}
	return n
}

// Validate checks that every target has a name and a usable host.
func (c Catalog) Validate() error {
	var errs []error
	if c.Len() == 0 {
		errs = append(errs, ErrNoTargets)
	}
	for category, entries := range c {
		if strings.TrimSpace(category) == "" {
			errs = append(errs, ErrInvalidTarget{Category: category, Reason: "category must not be empty"})
		}
		for i, e := range entries {
			if strings.TrimSpace(e.Name) == "" {
				errs = append(errs, ErrInvalidTarget{Category: category, Index: i, Reason: "name must not be empty"})
			}
			if err := validateHost(e.Host); err != nil {
				errs = append(errs, ErrInvalidTarget{Category: category, Index: i, Reason: err.Error()})
			}
		}
	}
	return errors.Join(errs...)
}

// validateHost accepts IPv4 addresses and hostnames valid for lookup.
func validateHost(host string) error {
	if host == "" {
		return errors.New("host must not be empty")
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		if !addr.Is4() {
			return fmt.Errorf("host %q is not an IPv4 address", host)
		}
		return nil
	}
	if _, err := idna.Lookup.ToASCII(host); err != nil {
		return fmt.Errorf("host %q is not a valid hostname: %w", host, err)
	}
	return nil
}
