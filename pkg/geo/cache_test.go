// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCache_AddFirstWins(t *testing.T) {
	c := NewCache()
	first := Geo{City: "Berlin"}
	second := Geo{City: "Bonn"}

	assert.Equal(t, first, c.Add("1.1.1.1", first))
	assert.Equal(t, first, c.Add("1.1.1.1", second))

	got, ok := c.Get("1.1.1.1")
	assert.True(t, ok)
	assert.Equal(t, first, got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Miss(t *testing.T) {
	c := NewCache()
	_, ok := c.Get("1.1.1.1")
	assert.False(t, ok)
}

func TestCache_Failures(t *testing.T) {
	c := NewCache()
	c.MarkFailed("1.1.1.1")
	assert.True(t, c.Failed("1.1.1.1"))
	assert.False(t, c.Failed("8.8.8.8"))

	c.ForgetFailures()
	assert.False(t, c.Failed("1.1.1.1"))

	c.MarkFailed("8.8.8.8")
	c.Add("8.8.8.8", Geo{City: "Mountain View"})
	assert.False(t, c.Failed("8.8.8.8"), "a success clears the remembered failure")
}

func TestCache_ConcurrentAdd(t *testing.T) {
	c := NewCache()
	const writers = 50

	results := make([]Geo, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.Add("9.9.9.9", Geo{City: fmt.Sprintf("city-%d", i)})
		}()
	}
	wg.Wait()

	winner, ok := c.Get("9.9.9.9")
	assert.True(t, ok)
	for _, r := range results {
		assert.Equal(t, winner, r)
	}
}
