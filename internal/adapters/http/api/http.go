// Package api wires the front-end's HTTP surface: the router, liveness and
// Prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/coinfront/pkg/metrics"
)

// Server wires HTTP routes for the front-end.
type Server struct {
	healthHandler  *HealthHandler
	metricsHandler http.Handler
	router         http.Handler
	metrics        *metrics.Manager
}

// NewServer creates a server that hands every non-operational path to router.
func NewServer(router http.Handler, m *metrics.Manager) *Server {
	if m == nil {
		m = metrics.Default()
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		metricsHandler: MetricsHandler(),
		router:         router,
		metrics:        m,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.metrics, s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.metricsHandler)
	mux.HandleFunc("/", MetricsMiddleware(s.metrics, s.router.ServeHTTP, "router"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
