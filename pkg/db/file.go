// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/pkg/orchestrator"
)

var _ DB = (*File)(nil)

// File stores the run as an indented JSON document.
type File struct {
	path string
}

// NewFile returns a file store writing to path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Save writes the run to a temporary file next to the target and renames
// it, so readers never observe a partially written document.
func (f *File) Save(ctx context.Context, run orchestrator.Run) (err error) {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Join(fmt.Errorf("failed to write run: %w", err), tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}

	logger.FromContext(ctx).InfoContext(ctx, "Saved run", "path", f.path, "targets", len(run.Results))
	return nil
}

// Load reads the run from the file.
func (f *File) Load(ctx context.Context) (orchestrator.Run, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return orchestrator.Run{}, ErrNotFound
	}
	if err != nil {
		return orchestrator.Run{}, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	var run orchestrator.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return orchestrator.Run{}, fmt.Errorf("failed to decode %s: %w", f.path, err)
	}
	logger.FromContext(ctx).DebugContext(ctx, "Loaded run", "path", f.path, "timestamp", run.Timestamp)
	return run, nil
}

// Close is a no-op.
func (*File) Close() error {
	return nil
}
