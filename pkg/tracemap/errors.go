// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package tracemap

import (
	"errors"
	"fmt"
)

// ErrFinalShutdown is returned when a component failed and tracemap shut down.
var ErrFinalShutdown = errors.New("tracemap was shut down because of a component failure")

// ErrShutdown holds any errors that may
// have occurred during shutdown of tracemap
type ErrShutdown struct {
	errAPI     error
	errMetrics error
	errDB      error
	errClose   error
}

// HasError returns true if any of the errors are set
func (e ErrShutdown) HasError() bool {
	return e.errAPI != nil || e.errMetrics != nil || e.errDB != nil || e.errClose != nil
}

func (e ErrShutdown) Error() string {
	return fmt.Sprintf("api: %v, metrics: %v, db: %v, close: %v", e.errAPI, e.errMetrics, e.errDB, e.errClose)
}
