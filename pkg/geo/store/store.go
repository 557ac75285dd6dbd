// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package store provides persistent tiers for resolved geolocation data,
// so that restarts do not spend the provider's request budget again.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/telekom/tracemap/pkg/geo"
)

const (
	TypeSQLite = "sqlite"
	TypeMySQL  = "mysql"
	TypeRedis  = "redis"
)

// ErrUnknownType is returned when the configured store type does not exist.
var ErrUnknownType = errors.New("unknown geolocation store type")

// New opens the store described by cfg.
func New(ctx context.Context, cfg geo.StoreConfig) (geo.Store, error) {
	switch cfg.Type {
	case TypeSQLite, TypeMySQL:
		d := sqliteDialect
		if cfg.Type == TypeMySQL {
			d = mysqlDialect
		}
		s, err := newSQL(ctx, d, cfg.DSN, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case TypeRedis:
		s, err := NewRedis(ctx, cfg.DSN, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, cfg.Type)
	}
}
