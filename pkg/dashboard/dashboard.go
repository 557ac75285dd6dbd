// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package dashboard renders a run into a self-contained page with a map
// of all traced paths.
package dashboard

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"slices"

	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/pkg/db"
	"github.com/telekom/tracemap/pkg/orchestrator"
)

const (
	IndexFile   = "index.html"
	ResultsFile = "results.json"
)

//go:embed templates/index.html.tmpl
var templates embed.FS

// Renderer writes the dashboard into an output directory.
type Renderer struct {
	dir     string
	tmpl    *template.Template
	results *db.File
}

// page is the data the index template is executed with.
type page struct {
	Run        orchestrator.Run
	Categories []string
	Failed     int
}

// New returns a renderer writing into dir.
func New(dir string) (*Renderer, error) {
	tmpl, err := template.New(IndexFile).Funcs(template.FuncMap{
		"latency": formatLatency,
	}).ParseFS(templates, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}
	return &Renderer{
		dir:     dir,
		tmpl:    tmpl.Lookup("index.html.tmpl"),
		results: db.NewFile(filepath.Join(dir, ResultsFile)),
	}, nil
}

// Dir is the directory the dashboard is written to.
func (r *Renderer) Dir() string {
	return r.dir
}

// Render writes index.html with the run embedded and the run itself as
// results.json.
func (r *Renderer) Render(ctx context.Context, run orchestrator.Run) error {
	log := logger.FromContext(ctx)

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, newPage(run)); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	if err := writeFile(filepath.Join(r.dir, IndexFile), buf.Bytes()); err != nil {
		return err
	}
	if err := r.results.Save(ctx, run); err != nil {
		return fmt.Errorf("failed to write %s: %w", ResultsFile, err)
	}

	log.InfoContext(ctx, "Rendered dashboard", "dir", r.dir, "targets", len(run.Results))
	return nil
}

func newPage(run orchestrator.Run) page {
	p := page{Run: run}
	for _, res := range run.Results {
		if !slices.Contains(p.Categories, res.Category) {
			p.Categories = append(p.Categories, res.Category)
		}
		if res.Failed() {
			p.Failed++
		}
	}
	return p
}

func formatLatency(rtt *float64) string {
	if rtt == nil {
		return "*"
	}
	return fmt.Sprintf("%.1f ms", *rtt)
}

// writeFile replaces path through a temporary file in the same directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		return errors.Join(fmt.Errorf("failed to write %s: %w", path, err), tmp.Close(), os.Remove(tmp.Name()))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(fmt.Errorf("failed to close %s: %w", tmp.Name(), err), os.Remove(tmp.Name()))
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Join(fmt.Errorf("failed to set permissions: %w", err), os.Remove(tmp.Name()))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Join(fmt.Errorf("failed to replace %s: %w", path, err), os.Remove(tmp.Name()))
	}
	return nil
}
