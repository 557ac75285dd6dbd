// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v55/github"
	"github.com/telekom/tracemap/internal/helper"
	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/pkg/orchestrator"
	"golang.org/x/oauth2"
)

const (
	defaultBranch     = "main"
	defaultGitHubPath = "tracemap/results.json"
)

var _ DB = (*GitHub)(nil)

// GitHub commits the run as a JSON file to a repository branch.
type GitHub struct {
	client *github.Client
	owner  string
	repo   string
	branch string
	path   string
	retry  helper.RetryConfig
}

// NewGitHub returns a store committing to the repository described by cfg.
func NewGitHub(ctx context.Context, cfg *GitHubConfig, rc helper.RetryConfig) (*GitHub, error) {
	var hc *http.Client
	if cfg.Token != "" {
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
	}
	return newGitHub(cfg, hc, rc)
}

func newGitHub(cfg *GitHubConfig, hc *http.Client, rc helper.RetryConfig) (*GitHub, error) {
	client := github.NewClient(hc)
	if cfg.BaseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(cfg.BaseURL, cfg.BaseURL)
		if err != nil {
			return nil, &ErrInvalidConfig{Field: "github.baseUrl", Reason: err.Error()}
		}
	}

	g := &GitHub{
		client: client,
		owner:  cfg.Owner,
		repo:   cfg.Repo,
		branch: cfg.Branch,
		path:   cfg.Path,
		retry:  rc,
	}
	if g.branch == "" {
		g.branch = defaultBranch
	}
	if g.path == "" {
		g.path = defaultGitHubPath
	}
	return g, nil
}

// Save creates or updates the results file.
func (g *GitHub) Save(ctx context.Context, run orchestrator.Run) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}

	save := helper.Retry(func(ctx context.Context) error {
		file, _, err := g.get(ctx)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		opts := &github.RepositoryContentFileOptions{
			Message: github.String(fmt.Sprintf("Update tracemap results of %s", run.Timestamp.Format(time.RFC3339))),
			Content: data,
			Branch:  github.String(g.branch),
		}
		if file != nil {
			opts.SHA = file.SHA
			_, _, err = g.client.Repositories.UpdateFile(ctx, g.owner, g.repo, g.path, opts)
		} else {
			_, _, err = g.client.Repositories.CreateFile(ctx, g.owner, g.repo, g.path, opts)
		}
		return err
	}, g.retry)

	if err := save(ctx); err != nil {
		return fmt.Errorf("failed to commit %s to %s/%s: %w", g.path, g.owner, g.repo, err)
	}
	logger.FromContext(ctx).InfoContext(ctx, "Committed run", "repository", g.owner+"/"+g.repo, "branch", g.branch, "path", g.path)
	return nil
}

// Load reads the results file from the branch.
func (g *GitHub) Load(ctx context.Context) (orchestrator.Run, error) {
	var file *github.RepositoryContent
	load := helper.Retry(func(ctx context.Context) (err error) {
		file, _, err = g.get(ctx)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}, g.retry)
	if err := load(ctx); err != nil {
		return orchestrator.Run{}, fmt.Errorf("failed to fetch %s from %s/%s: %w", g.path, g.owner, g.repo, err)
	}
	if file == nil {
		return orchestrator.Run{}, ErrNotFound
	}

	content, err := file.GetContent()
	if err != nil {
		return orchestrator.Run{}, fmt.Errorf("failed to decode %s: %w", g.path, err)
	}
	var run orchestrator.Run
	if err := json.Unmarshal([]byte(content), &run); err != nil {
		return orchestrator.Run{}, fmt.Errorf("failed to decode %s: %w", g.path, err)
	}
	return run, nil
}

// get returns the current results file or ErrNotFound.
func (g *GitHub) get(ctx context.Context) (*github.RepositoryContent, *github.Response, error) {
	file, _, resp, err := g.client.Repositories.GetContents(ctx, g.owner, g.repo, g.path,
		&github.RepositoryContentGetOptions{Ref: g.branch})
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return nil, resp, ErrNotFound
	}
	if err != nil {
		return nil, resp, err
	}
	if file == nil {
		return nil, resp, fmt.Errorf("%s is not a file", g.path)
	}
	return file, resp, nil
}

// Close is a no-op.
func (*GitHub) Close() error {
	return nil
}
