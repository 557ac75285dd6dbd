// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package helper

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/telekom/tracemap/internal/logger"
)

// RetryConfig configures how often and how fast a failed remote call is repeated.
type RetryConfig struct {
	Count int           `json:"count" yaml:"count" mapstructure:"count"`
	Delay time.Duration `json:"delay" yaml:"delay" mapstructure:"delay"`
}

// Validate checks that the retry configuration is usable.
func (rc RetryConfig) Validate() error {
	if rc.Count < 0 {
		return errors.New("retry count must not be negative")
	}
	if rc.Count > 0 && rc.Delay <= 0 {
		return errors.New("retry delay must be positive when retries are enabled")
	}
	return nil
}

// Effector will be the function called by the Retry function
type Effector func(context.Context) error

// Retry wraps the effector so that it is retried with exponential backoff
// until it succeeds, the retries are exhausted or the context is done.
func Retry(effector Effector, rc RetryConfig) Effector {
	return func(ctx context.Context) error {
		log := logger.FromContext(ctx)
		for r := 1; ; r++ {
			err := effector(ctx)
			if err == nil || r > rc.Count {
				return err
			}

			delay := getExpBackoff(rc.Delay, r)
			log.WarnContext(ctx, "Remote call failed, retrying", "attempt", r, "delay", delay, "error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
}

// getExpBackoff calculates the delay before the given attempt; the first attempt is 1.
func getExpBackoff(initialDelay time.Duration, attempt int) time.Duration {
	if attempt <= 1 {
		return initialDelay
	}
	return time.Duration(math.Pow(2, float64(attempt-1))) * initialDelay
}
