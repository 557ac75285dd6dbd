// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"time"

	"golang.org/x/time/rate"
)

// requestInterval is the spacing between two provider requests: the larger
// of the configured minimal delay and the interval implied by the budget.
func requestInterval(requestsPerMinute int, minDelay time.Duration) time.Duration {
	if requestsPerMinute <= 0 {
		return minDelay
	}
	return max(minDelay, time.Minute/time.Duration(requestsPerMinute))
}

// newLimiter returns a token bucket with a single token that is
// refilled once per request interval.
func newLimiter(requestsPerMinute int, minDelay time.Duration) *rate.Limiter {
	interval := requestInterval(requestsPerMinute, minDelay)
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
