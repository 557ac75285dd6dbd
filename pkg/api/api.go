// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package api serves the rendered dashboard and the current run.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/telekom/tracemap/internal/logger"
	"golang.org/x/net/netutil"
)

const readHeaderTimeout = 5 * time.Second

// API serves the dashboard and its endpoints.
//
//go:generate go tool moq -out api_moq.go . API
type API interface {
	// Run serves until the server is shut down
	Run(ctx context.Context) error
	// Shutdown gracefully stops the server
	Shutdown(ctx context.Context) error
	// RegisterRoutes adds routes to the router. It must be called before Run.
	RegisterRoutes(ctx context.Context, routes ...Route) error
}

type api struct {
	server   *http.Server
	router   chi.Router
	tls      TLSConfig
	address  string
	maxConns int
	ready    chan net.Addr
	// routed is set once the middlewares are installed
	routed bool
}

// Route is a single http endpoint
type Route struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
}

// New creates a new api server
func New(cfg Config) API {
	r := chi.NewRouter()
	return &api{
		server:   &http.Server{Handler: r, ReadHeaderTimeout: readHeaderTimeout},
		router:   r,
		tls:      cfg.Tls,
		address:  cfg.address(),
		maxConns: cfg.maxConnections(),
		ready:    make(chan net.Addr, 1),
	}
}

// Run listens on the configured address and serves the registered routes
// until Shutdown is called or the server fails.
func (a *api) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	lis, err := (&net.ListenConfig{}).Listen(ctx, "tcp", a.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.address, err)
	}
	lis = netutil.LimitListener(lis, a.maxConns)
	a.ready <- lis.Addr()

	log.InfoContext(ctx, "Serving api", "address", lis.Addr().String(), "tls", a.tls.Enabled)
	if a.tls.Enabled {
		err = a.server.ServeTLS(lis, a.tls.CertPath, a.tls.KeyPath)
	} else {
		err = a.server.Serve(lis)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Failed to serve api", "error", err)
		return fmt.Errorf("failed serving api: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the api server
func (a *api) Shutdown(ctx context.Context) error {
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed shutting down api server: %w", err)
	}
	return nil
}

// RegisterRoutes registers the given routes with the request context
// carrying the logger of ctx
func (a *api) RegisterRoutes(ctx context.Context, routes ...Route) error {
	if !a.routed {
		a.router.Use(logger.Middleware(ctx), middleware.Recoverer)
		a.routed = true
	}
	for _, rt := range routes {
		switch rt.Method {
		case http.MethodGet:
			a.router.Get(rt.Path, rt.Handler)
		case http.MethodHead:
			a.router.Head(rt.Path, rt.Handler)
		case "*":
			a.router.Handle(rt.Path, rt.Handler)
		default:
			return fmt.Errorf("unsupported method %q for route %s", rt.Method, rt.Path)
		}
	}
	return nil
}
