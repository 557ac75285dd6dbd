// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when a provider has no metadata for an address.
	ErrNoData = errors.New("no geolocation data")
	// ErrUnknownProvider is returned when the configured provider does not exist.
	ErrUnknownProvider = errors.New("unknown geolocation provider")

	// errRateLimited is returned when no request token could be obtained in time.
	errRateLimited = errors.New("rate limiter denied request")
)

// ErrLookupFailed is returned when the provider rejected a lookup.
type ErrLookupFailed struct {
	IP     string
	Status string
	Reason string
}

func (e ErrLookupFailed) Error() string {
	return fmt.Sprintf("lookup of %s failed with status %q: %s", e.IP, e.Status, e.Reason)
}

// ErrInvalidConfig is returned when the geolocation configuration is invalid.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid configuration field %q in geo: %s", e.Field, e.Reason)
}
