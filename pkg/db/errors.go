// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no run has been saved yet.
var ErrNotFound = errors.New("no saved run found")

// ErrInvalidConfig is returned for an unusable store configuration.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid store configuration %q: %s", e.Field, e.Reason)
}
