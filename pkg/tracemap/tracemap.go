// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package tracemap wires the components into the running application.
package tracemap

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/telekom/tracemap/internal/traceroute"
	"github.com/telekom/tracemap/pkg/api"
	"github.com/telekom/tracemap/pkg/config"
	"github.com/telekom/tracemap/pkg/dashboard"
	"github.com/telekom/tracemap/pkg/db"
	"github.com/telekom/tracemap/pkg/geo"
	"github.com/telekom/tracemap/pkg/geo/store"
	"github.com/telekom/tracemap/pkg/orchestrator"
	"github.com/telekom/tracemap/pkg/targets"
	"github.com/telekom/tracemap/pkg/tracemap/metrics"
)

// catalogLoader provides the targets to trace.
type catalogLoader interface {
	Load(ctx context.Context) (targets.Catalog, error)
}

// Tracemap is the main struct of the tracemap application
type Tracemap struct {
	// config is the startup configuration
	config *config.Config
	// db persists the runs
	db db.DB
	// api serves the dashboard and the current run
	api api.API
	// loader reads the target catalog
	loader catalogLoader
	// orchestrator traces the targets
	orchestrator *orchestrator.Orchestrator
	// renderer writes the dashboard
	renderer *dashboard.Renderer
	// metrics is used to collect metrics
	metrics metrics.Provider
	// closers are released on shutdown
	closers []io.Closer

	// mu guards current
	mu      sync.RWMutex
	current *orchestrator.Run

	// cErr is used to handle non-recoverable errors of the components
	cErr chan error
	// cDone is used to signal that tracemap was shut down
	cDone chan struct{}
	// shutOnce is used to ensure that the shutdown function is only called once
	shutOnce sync.Once
}

// New creates all components described by cfg
func New(ctx context.Context, cfg *config.Config, version string) (t *Tracemap, err error) {
	var closers []io.Closer
	defer func() {
		if err != nil {
			for _, c := range closers {
				_ = c.Close()
			}
		}
	}()

	provider, err := geo.NewProvider(&cfg.Geo, "tracemap/"+version)
	if err != nil {
		return nil, fmt.Errorf("failed to create geolocation provider: %w", err)
	}
	var opts []geo.Option
	if cfg.Geo.Store.Enabled() {
		s, sErr := store.New(ctx, cfg.Geo.Store)
		if sErr != nil {
			_ = provider.Close()
			return nil, fmt.Errorf("failed to open geolocation store: %w", sErr)
		}
		opts = append(opts, geo.WithStore(s))
	}
	resolver := geo.NewResolver(provider, &cfg.Geo, opts...)
	closers = append(closers, resolver)

	orchOpts := []orchestrator.Option{orchestrator.WithPrecedence(cfg.Targets.Precedence())}
	if cfg.Targets.Resolve.Enabled {
		addresses, rErr := targets.NewDNSResolver(cfg.Targets.Resolve)
		if rErr != nil {
			return nil, fmt.Errorf("failed to create target resolver: %w", rErr)
		}
		orchOpts = append(orchOpts, orchestrator.WithAddressResolver(addresses))
	}
	orch := orchestrator.New(traceroute.NewClient(), resolver, cfg.Orchestrator, &cfg.Probe, orchOpts...)

	renderer, err := dashboard.New(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	database, err := db.New(ctx, &cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}
	closers = append(closers, database)

	telemetry := cfg.Telemetry
	if !cfg.HasTelemetry() {
		telemetry.Exporter = metrics.NOOP
	}
	m := metrics.New(telemetry, version)
	if err = m.Register(append(orch.GetMetricCollectors(), resolver.GetMetricCollectors()...)...); err != nil {
		return nil, err
	}
	err = metrics.RegisterInstanceInfo(m.GetRegistry(), cfg.Name, map[string]string{
		"version":  version,
		"platform": cfg.Telemetry.Platform,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register instance info: %w", err)
	}

	return newTracemap(cfg, components{
		db:           database,
		api:          api.New(cfg.Api),
		loader:       targets.NewLoader(cfg.Targets.Path),
		orchestrator: orch,
		renderer:     renderer,
		metrics:      m,
		closers:      []io.Closer{resolver},
	}), nil
}

// components are the collaborators of a [Tracemap].
type components struct {
	db           db.DB
	api          api.API
	loader       catalogLoader
	orchestrator *orchestrator.Orchestrator
	renderer     *dashboard.Renderer
	metrics      metrics.Provider
	closers      []io.Closer
}

func newTracemap(cfg *config.Config, c components) *Tracemap {
	return &Tracemap{
		config:       cfg,
		db:           c.db,
		api:          c.api,
		loader:       c.loader,
		orchestrator: c.orchestrator,
		renderer:     c.renderer,
		metrics:      c.metrics,
		closers:      c.closers,
		cErr:         make(chan error, 1),
		cDone:        make(chan struct{}, 1),
	}
}

// Current returns the run that is currently served
func (t *Tracemap) Current() (orchestrator.Run, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.current == nil {
		return orchestrator.Run{}, api.ErrNoRun
	}
	return *t.current, nil
}

func (t *Tracemap) setCurrent(run orchestrator.Run) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = &run
}

var _ api.RunSource = (*Tracemap)(nil)
