// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/pkg/orchestrator"
	_ "modernc.org/sqlite"
)

var _ DB = (*SQLite)(nil)

// SQLite keeps every saved run in a local database and loads the latest.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the database at path and creates the runs table.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`PRAGMA journal_mode=WAL`,
		`CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			finished_at INTEGER NOT NULL,
			data        TEXT NOT NULL
		)`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to prepare %s: %w", path, err), db.Close())
		}
	}
	logger.FromContext(ctx).InfoContext(ctx, "Opened run store", "driver", "sqlite", "path", path)
	return &SQLite{db: db}, nil
}

// Save appends the run.
func (s *SQLite) Save(ctx context.Context, run orchestrator.Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}
	_, err = s.db.ExecContext(ctx, "INSERT INTO runs (finished_at, data) VALUES (?, ?)", run.Timestamp.Unix(), string(data))
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// Load returns the most recently saved run.
func (s *SQLite) Load(ctx context.Context) (orchestrator.Run, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM runs ORDER BY id DESC LIMIT 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return orchestrator.Run{}, ErrNotFound
	}
	if err != nil {
		return orchestrator.Run{}, fmt.Errorf("failed to load run: %w", err)
	}

	var run orchestrator.Run
	if err := json.Unmarshal([]byte(data), &run); err != nil {
		return orchestrator.Run{}, fmt.Errorf("failed to decode run: %w", err)
	}
	return run, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
