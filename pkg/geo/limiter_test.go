// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestInterval(t *testing.T) {
	tests := []struct {
		name     string
		rpm      int
		minDelay time.Duration
		want     time.Duration
	}{
		{"budget dominates", 45, 150 * time.Millisecond, time.Minute / 45},
		{"min delay dominates", 1000, 150 * time.Millisecond, 150 * time.Millisecond},
		{"no budget", 0, 150 * time.Millisecond, 150 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, requestInterval(tt.rpm, tt.minDelay))
		})
	}
}

func TestNewLimiter_Spacing(t *testing.T) {
	lim := newLimiter(45, 150*time.Millisecond)
	interval := time.Minute / 45
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, lim.AllowN(t0, 1), "first request passes")
	assert.False(t, lim.AllowN(t0.Add(150*time.Millisecond), 1), "burst is one")
	assert.False(t, lim.AllowN(t0.Add(interval/2), 1))
	assert.True(t, lim.AllowN(t0.Add(interval+time.Millisecond), 1), "token refilled after one interval")
}

func TestNewLimiter_Unlimited(t *testing.T) {
	lim := newLimiter(0, 0)
	t0 := time.Now()
	for range 10 {
		assert.True(t, lim.AllowN(t0, 1))
	}
}
