// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package tracemap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/pkg/api"
	"github.com/telekom/tracemap/pkg/db"
	"github.com/telekom/tracemap/pkg/orchestrator"
)

const shutdownTimeout = time.Second * 30

// Run prepares the dashboard and serves it until ctx is cancelled or the
// api fails. A saved run is reused unless a refresh is configured.
func (t *Tracemap) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	log := logger.FromContext(ctx)
	defer cancel()

	if err := t.metrics.InitTracing(ctx); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := t.prepare(ctx); err != nil {
		t.shutdown(ctx)
		return err
	}

	routes := api.Routes(t.renderer.Dir(), t, t.metrics.GetRegistry())
	if err := t.api.RegisterRoutes(ctx, routes...); err != nil {
		t.shutdown(ctx)
		return fmt.Errorf("failed to register routes: %w", err)
	}

	go func() {
		t.cErr <- t.api.Run(ctx)
	}()

	var cause error
	for {
		select {
		case <-ctx.Done():
			t.shutdown(ctx)
		case err := <-t.cErr:
			if err != nil {
				log.ErrorContext(ctx, "Non-recoverable error in tracemap component", "error", err)
				cause = err
			}
			t.shutdown(ctx)
		case <-t.cDone:
			log.InfoContext(ctx, "Tracemap was shut down")
			if cause != nil {
				return fmt.Errorf("%w: %w", ErrFinalShutdown, cause)
			}
			return nil
		}
	}
}

// Probe traces all targets once, persists the run and renders the
// dashboard without serving it.
func (t *Tracemap) Probe(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	defer t.shutdown(ctx)

	if err := t.metrics.InitTracing(ctx); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	run, err := t.trace(ctx)
	if err != nil {
		return err
	}
	t.setCurrent(run)
	if err := t.renderer.Render(ctx, run); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

// prepare loads the saved run or traces a new one and renders it.
func (t *Tracemap) prepare(ctx context.Context) error {
	log := logger.FromContext(ctx)

	run, err := t.load(ctx)
	if errors.Is(err, db.ErrNotFound) {
		log.InfoContext(ctx, "No saved run available, tracing all targets")
		run, err = t.trace(ctx)
	}
	if err != nil {
		return err
	}

	t.setCurrent(run)
	if err := t.renderer.Render(ctx, run); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

// load returns the saved run. A run that cannot be read is treated as
// missing so that it gets replaced.
func (t *Tracemap) load(ctx context.Context) (orchestrator.Run, error) {
	log := logger.FromContext(ctx)
	if t.config.Refresh {
		log.InfoContext(ctx, "Refresh requested, ignoring saved run")
		return orchestrator.Run{}, db.ErrNotFound
	}

	run, err := t.db.Load(ctx)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			log.WarnContext(ctx, "Failed to load saved run", "error", err)
		}
		return orchestrator.Run{}, db.ErrNotFound
	}
	log.InfoContext(ctx, "Reusing saved run", "timestamp", run.Timestamp, "targets", len(run.Results))
	return run, nil
}

// trace runs the orchestration over the target catalog and saves the result.
func (t *Tracemap) trace(ctx context.Context) (orchestrator.Run, error) {
	catalog, err := t.loader.Load(ctx)
	if err != nil {
		return orchestrator.Run{}, fmt.Errorf("failed to load targets: %w", err)
	}

	run := t.orchestrator.Orchestrate(ctx, catalog.Flatten())
	if err := ctx.Err(); err != nil {
		return orchestrator.Run{}, fmt.Errorf("tracing was interrupted: %w", err)
	}
	if err := t.db.Save(ctx, run); err != nil {
		return orchestrator.Run{}, fmt.Errorf("failed to save run: %w", err)
	}
	return run, nil
}

// shutdown shuts down tracemap and all managed components gracefully.
func (t *Tracemap) shutdown(ctx context.Context) {
	errC := ctx.Err()
	log := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	t.shutOnce.Do(func() {
		log.InfoContext(ctx, "Shutting down tracemap")
		var sErrs ErrShutdown
		if err := t.api.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sErrs.errAPI = err
		}
		sErrs.errMetrics = t.metrics.Shutdown(ctx)
		sErrs.errDB = t.db.Close()
		for _, c := range t.closers {
			sErrs.errClose = errors.Join(sErrs.errClose, c.Close())
		}

		if sErrs.HasError() {
			log.ErrorContext(ctx, "Failed to shutdown gracefully", "contextError", errC, "errors", sErrs)
		}

		// Signal that shutdown is complete
		t.cDone <- struct{}{}
	})
}
