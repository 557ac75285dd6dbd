// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
)

var (
	// ErrUtilityNotFound is returned when the traceroute executable cannot be found.
	ErrUtilityNotFound = errors.New("traceroute utility not found")
	// ErrInvocationTimeout is returned when an invocation exceeds its timeout.
	ErrInvocationTimeout = errors.New("traceroute invocation timed out")
	// ErrInvocationRejected is returned when the utility exits non-zero without any output,
	// e.g. because it does not support one of the flags.
	ErrInvocationRejected = errors.New("traceroute invocation rejected")
	// ErrProbeFailed is returned when neither the primary nor the fallback invocation succeeded.
	ErrProbeFailed = errors.New("probe failed")
)

// isProbeError checks if the error is one of the
// expected failure modes of the probing utility.
func isProbeError(err error) bool {
	return errors.Is(err, ErrUtilityNotFound) ||
		errors.Is(err, ErrInvocationTimeout) ||
		errors.Is(err, ErrInvocationRejected) ||
		errors.Is(err, context.DeadlineExceeded)
}
