// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/telekom/tracemap/internal/helper"
	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/pkg/orchestrator"
)

const createRunsTable = `CREATE TABLE IF NOT EXISTS tracemap_runs (
	id          BIGSERIAL PRIMARY KEY,
	finished_at TIMESTAMPTZ NOT NULL,
	data        JSONB NOT NULL
)`

var _ DB = (*Postgres)(nil)

// Postgres keeps every saved run in a postgres table and loads the latest.
type Postgres struct {
	pool  *pgxpool.Pool
	retry helper.RetryConfig
}

// NewPostgres connects to dsn and creates the runs table.
func NewPostgres(ctx context.Context, dsn string, rc helper.RetryConfig) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	setup := helper.Retry(func(ctx context.Context) error {
		_, err := pool.Exec(ctx, createRunsTable)
		return err
	}, rc)
	if err := setup(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to prepare postgres store: %w", err)
	}

	logger.FromContext(ctx).InfoContext(ctx, "Opened run store", "driver", "postgres")
	return &Postgres{pool: pool, retry: rc}, nil
}

// Save appends the run.
func (p *Postgres) Save(ctx context.Context, run orchestrator.Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}
	save := helper.Retry(func(ctx context.Context) error {
		_, err := p.pool.Exec(ctx, "INSERT INTO tracemap_runs (finished_at, data) VALUES ($1, $2)", run.Timestamp, data)
		return err
	}, p.retry)
	if err := save(ctx); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// Load returns the most recently saved run.
func (p *Postgres) Load(ctx context.Context) (orchestrator.Run, error) {
	var (
		data     []byte
		notFound bool
	)
	load := helper.Retry(func(ctx context.Context) error {
		err := p.pool.QueryRow(ctx, "SELECT data FROM tracemap_runs ORDER BY id DESC LIMIT 1").Scan(&data)
		if errors.Is(err, pgx.ErrNoRows) {
			notFound = true
			return nil
		}
		return err
	}, p.retry)
	if err := load(ctx); err != nil {
		return orchestrator.Run{}, fmt.Errorf("failed to load run: %w", err)
	}
	if notFound {
		return orchestrator.Run{}, ErrNotFound
	}

	var run orchestrator.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return orchestrator.Run{}, fmt.Errorf("failed to decode run: %w", err)
	}
	return run, nil
}

// Close closes all pooled connections.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
