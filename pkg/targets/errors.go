// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package targets

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTargets is returned when the target file lists no targets.
	ErrNoTargets = errors.New("no targets configured")
	// ErrNoAddress is returned when a host has no IPv4 address.
	ErrNoAddress = errors.New("no IPv4 address found")
)

// ErrInvalidTarget is returned when a target of the target file is invalid.
type ErrInvalidTarget struct {
	Category string
	Index    int
	Reason   string
}

func (e ErrInvalidTarget) Error() string {
	return fmt.Sprintf("invalid target #%d in category %q: %s", e.Index, e.Category, e.Reason)
}
