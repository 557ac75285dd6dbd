// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// Cache holds resolved metadata per address for the lifetime of the process.
// Entries are never evicted and never overwritten. It also remembers failed
// lookups until [Cache.ForgetFailures] is called.
// A Cache is safe for concurrent use.
type Cache struct {
	entries *gocache.Cache

	mu       sync.Mutex
	failures map[string]struct{}
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries:  gocache.New(gocache.NoExpiration, 0),
		failures: map[string]struct{}{},
	}
}

// Get returns the cached metadata of ip.
func (c *Cache) Get(ip string) (Geo, bool) {
	v, ok := c.entries.Get(ip)
	if !ok {
		return Geo{}, false
	}
	return v.(Geo), true
}

// Add stores geo for ip unless an entry exists already. It returns the
// entry that is cached afterwards, which is the first one ever added.
func (c *Cache) Add(ip string, geo Geo) Geo {
	if err := c.entries.Add(ip, geo, gocache.NoExpiration); err != nil {
		if existing, ok := c.Get(ip); ok {
			return existing
		}
	}
	c.mu.Lock()
	delete(c.failures, ip)
	c.mu.Unlock()
	return geo
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.ItemCount()
}

// MarkFailed remembers that the lookup of ip failed.
func (c *Cache) MarkFailed(ip string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[ip] = struct{}{}
}

// Failed reports whether a failed lookup of ip is remembered.
func (c *Cache) Failed(ip string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.failures[ip]
	return ok
}

// ForgetFailures drops all remembered failures.
func (c *Cache) ForgetFailures() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.failures)
}
