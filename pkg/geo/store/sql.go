// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/pkg/geo"
	_ "modernc.org/sqlite"
)

// dialect holds the driver specific statements.
type dialect struct {
	driver  string
	setup   []string
	upsert  string
	maxOpen int
}

var sqliteDialect = dialect{
	driver: "sqlite",
	setup: []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA synchronous=NORMAL`,
		`CREATE TABLE IF NOT EXISTS geo_cache (
			ip         TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	},
	upsert: `INSERT INTO geo_cache (ip, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(ip) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`,
	maxOpen: 1,
}

var mysqlDialect = dialect{
	driver: "mysql",
	setup: []string{
		`CREATE TABLE IF NOT EXISTS geo_cache (
			ip         VARCHAR(45) PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at BIGINT NOT NULL
		)`,
	},
	upsert: `INSERT INTO geo_cache (ip, data, updated_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE data=VALUES(data), updated_at=VALUES(updated_at)`,
	maxOpen: 5,
}

var _ geo.Store = (*SQL)(nil)

// SQL is a [geo.Store] backed by a SQL database.
type SQL struct {
	db     *sql.DB
	upsert string
	ttl    time.Duration
	now    func() time.Time
}

// newSQL opens the database and creates the cache table if necessary.
func newSQL(ctx context.Context, d dialect, dsn string, ttl time.Duration) (*SQL, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", d.driver, err)
	}
	db.SetMaxOpenConns(d.maxOpen)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to reach %s store: %w", d.driver, err), db.Close())
	}
	for _, stmt := range d.setup {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to prepare %s store: %w", d.driver, err), db.Close())
		}
	}

	logger.FromContext(ctx).InfoContext(ctx, "Opened geolocation store", "driver", d.driver, "ttl", ttl)
	return &SQL{db: db, upsert: d.upsert, ttl: ttl, now: time.Now}, nil
}

// Get returns the stored metadata of ip unless it is older than the TTL.
func (s *SQL) Get(ctx context.Context, ip string) (geo.Geo, bool, error) {
	var (
		data      string
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, "SELECT data, updated_at FROM geo_cache WHERE ip = ?", ip).Scan(&data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return geo.Geo{}, false, nil
	}
	if err != nil {
		return geo.Geo{}, false, fmt.Errorf("failed to query %s: %w", ip, err)
	}
	if s.expired(updatedAt) {
		return geo.Geo{}, false, nil
	}

	var g geo.Geo
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return geo.Geo{}, false, fmt.Errorf("failed to decode entry of %s: %w", ip, err)
	}
	return g, true, nil
}

// Put stores the metadata of ip.
func (s *SQL) Put(ctx context.Context, ip string, g geo.Geo) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to encode entry of %s: %w", ip, err)
	}
	if _, err := s.db.ExecContext(ctx, s.upsert, ip, string(data), s.now().Unix()); err != nil {
		return fmt.Errorf("failed to store %s: %w", ip, err)
	}
	return nil
}

// Close closes the database.
func (s *SQL) Close() error {
	return s.db.Close()
}

func (s *SQL) expired(updatedAt int64) bool {
	if s.ttl <= 0 {
		return false
	}
	return time.Unix(updatedAt, 0).Add(s.ttl).Before(s.now())
}
