// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/telekom/tracemap/internal/logger"
	"github.com/telekom/tracemap/pkg/orchestrator"
)

// RunSource provides the run that is currently served.
//
//go:generate go tool moq -out routes_moq.go . RunSource
type RunSource interface {
	// Current returns the latest run or [ErrNoRun].
	Current() (orchestrator.Run, error)
}

// Routes returns all endpoints of tracemap: the dashboard files in dir,
// the current run, its schema, the metrics of registry and a health check.
func Routes(dir string, runs RunSource, registry *prometheus.Registry) []Route {
	return []Route{
		{Path: "/v1/results", Method: http.MethodGet, Handler: handleResults(runs)},
		{Path: "/openapi", Method: http.MethodGet, Handler: handleOpenAPI},
		{Path: "/metrics", Method: http.MethodGet, Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP},
		{Path: "/healthz", Method: http.MethodGet, Handler: handleHealth},
		{Path: "/*", Method: http.MethodGet, Handler: http.FileServer(http.Dir(dir)).ServeHTTP},
	}
}

func handleResults(runs RunSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		run, err := runs.Current()
		if errors.Is(err, ErrNoRun) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			log.ErrorContext(r.Context(), "Failed to get current run", "error", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(run); err != nil {
			log.ErrorContext(r.Context(), "Failed to encode run", "error", err)
		}
	}
}

func handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	data, err := openAPISpec()
	if err != nil {
		log.ErrorContext(r.Context(), "Failed to create openapi spec", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
