// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package targets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/telekom/tracemap/internal/logger"
	"gopkg.in/yaml.v3"
)

// Loader reads the target catalog from a file.
type Loader struct {
	path string
	fsys fs.FS
}

// NewLoader returns a loader for the target file at path.
func NewLoader(path string) *Loader {
	return &Loader{
		path: path,
		fsys: os.DirFS(filepath.Dir(path)),
	}
}

// Load reads, parses and validates the target file.
// Both YAML and JSON files are accepted.
func (l *Loader) Load(ctx context.Context) (catalog Catalog, err error) {
	log := logger.FromContext(ctx).With("path", l.path)

	file, err := l.fsys.Open(filepath.Base(l.path))
	if err != nil {
		log.ErrorContext(ctx, "Failed to open target file", "error", err)
		return nil, fmt.Errorf("failed to open target file: %w", err)
	}
	defer func() {
		cerr := file.Close()
		if cerr != nil {
			log.ErrorContext(ctx, "Failed to close target file", "error", cerr)
		}
		err = errors.Join(err, cerr)
	}()

	b, err := io.ReadAll(file)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read target file", "error", err)
		return nil, fmt.Errorf("failed to read target file: %w", err)
	}

	if err := yaml.Unmarshal(b, &catalog); err != nil {
		log.ErrorContext(ctx, "Failed to parse target file", "error", err)
		return nil, fmt.Errorf("failed to parse target file: %w", err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid target file: %w", err)
	}

	log.InfoContext(ctx, "Loaded targets", "categories", len(catalog), "targets", catalog.Len())
	return catalog, nil
}
