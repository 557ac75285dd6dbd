// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/pkg/geo"
)

const keyPrefix = "tracemap:geo:"

var _ geo.Store = (*Redis)(nil)

// Redis is a [geo.Store] backed by redis. Expiry is left to redis itself.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis connects to the redis server described by the URL.
func NewRedis(ctx context.Context, rawURL string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to reach redis: %w", err), client.Close())
	}

	logger.FromContext(ctx).InfoContext(ctx, "Opened geolocation store", "driver", "redis", "ttl", ttl)
	return &Redis{client: client, ttl: ttl}, nil
}

// Get returns the stored metadata of ip.
func (r *Redis) Get(ctx context.Context, ip string) (geo.Geo, bool, error) {
	data, err := r.client.Get(ctx, keyPrefix+ip).Bytes()
	if errors.Is(err, redis.Nil) {
		return geo.Geo{}, false, nil
	}
	if err != nil {
		return geo.Geo{}, false, fmt.Errorf("failed to get %s: %w", ip, err)
	}

	var g geo.Geo
	if err := json.Unmarshal(data, &g); err != nil {
		return geo.Geo{}, false, fmt.Errorf("failed to decode entry of %s: %w", ip, err)
	}
	return g, true, nil
}

// Put stores the metadata of ip with the configured TTL.
func (r *Redis) Put(ctx context.Context, ip string, g geo.Geo) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to encode entry of %s: %w", ip, err)
	}
	if err := r.client.Set(ctx, keyPrefix+ip, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", ip, err)
	}
	return nil
}

// Close closes the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
