// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package db persists the latest [orchestrator.Run] so that a restart can
// render it again without tracing all targets.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/telekom/tracemap/internal/helper"
	"github.com/telekom/tracemap/pkg/orchestrator"
)

const (
	TypeFile     = "file"
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeGitHub   = "github"
)

const defaultPath = "results.json"

// DB stores the latest run.
//
//go:generate go tool moq -out db_moq.go . DB
type DB interface {
	// Save persists run, replacing the previously latest one.
	Save(ctx context.Context, run orchestrator.Run) error
	// Load returns the latest run or [ErrNotFound] if none was saved yet.
	Load(ctx context.Context) (orchestrator.Run, error)
	// Close releases the backend's resources.
	Close() error
}

// Config selects and configures the backend.
type Config struct {
	// Type is one of file, sqlite, postgres or github. Defaults to file.
	Type string `yaml:"type" mapstructure:"type"`
	// Path is the file of the file and sqlite backends.
	Path string `yaml:"path" mapstructure:"path"`
	// DSN is the connection string of the postgres backend.
	DSN string `yaml:"dsn" mapstructure:"dsn"`
	// GitHub configures the github backend.
	GitHub GitHubConfig `yaml:"github" mapstructure:"github"`
	// Retry applies to the remote backends.
	Retry helper.RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// GitHubConfig points to the file in a repository the run is committed to.
type GitHubConfig struct {
	Owner  string `yaml:"owner" mapstructure:"owner"`
	Repo   string `yaml:"repo" mapstructure:"repo"`
	Branch string `yaml:"branch" mapstructure:"branch"`
	Path   string `yaml:"path" mapstructure:"path"`
	Token  string `yaml:"token" mapstructure:"token"`
	// BaseURL is only needed for GitHub Enterprise.
	BaseURL string `yaml:"baseUrl" mapstructure:"baseUrl"`
}

// DefaultRetry is used by the remote backends when no retry is configured.
var DefaultRetry = helper.RetryConfig{
	Count: 3,
	Delay: time.Second,
}

// Validate checks that the selected backend is fully configured.
func (c *Config) Validate() error {
	switch c.Type {
	case "", TypeFile, TypeSQLite:
	case TypePostgres:
		if c.DSN == "" {
			return &ErrInvalidConfig{Field: "dsn", Reason: "required for the postgres store"}
		}
	case TypeGitHub:
		if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
			return &ErrInvalidConfig{Field: "github", Reason: "owner and repo are required"}
		}
	default:
		return &ErrInvalidConfig{Field: "type", Reason: fmt.Sprintf("unknown store type %q", c.Type)}
	}
	if err := c.Retry.Validate(); err != nil {
		return &ErrInvalidConfig{Field: "retry", Reason: err.Error()}
	}
	return nil
}

func (c *Config) path() string {
	if c.Path == "" {
		return defaultPath
	}
	return c.Path
}

func (c *Config) retry() helper.RetryConfig {
	if c.Retry == (helper.RetryConfig{}) {
		return DefaultRetry
	}
	return c.Retry
}

// New opens the backend described by cfg.
func New(ctx context.Context, cfg *Config) (DB, error) {
	switch cfg.Type {
	case "", TypeFile:
		return NewFile(cfg.path()), nil
	case TypeSQLite:
		s, err := NewSQLite(ctx, cfg.path())
		if err != nil {
			return nil, err
		}
		return s, nil
	case TypePostgres:
		p, err := NewPostgres(ctx, cfg.DSN, cfg.retry())
		if err != nil {
			return nil, err
		}
		return p, nil
	case TypeGitHub:
		g, err := NewGitHub(ctx, &cfg.GitHub, cfg.retry())
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, &ErrInvalidConfig{Field: "type", Reason: fmt.Sprintf("unknown store type %q", cfg.Type)}
	}
}
