// Package site holds the front-end route table and its views.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/coinfront/pkg/logger"
	"github.com/okian/coinfront/pkg/metrics"
)

// ModeHistory resolves real request paths; no hash fragments.
const ModeHistory = "history"

// Router resolves history-mode paths below a base path to lazily loaded views.
type Router struct {
	base    string
	entries []*entry
	logger  logger.Logger
	metrics *metrics.Manager
}

// entry memoizes a route's view once it has loaded successfully.
type entry struct {
	route Route

	mu   sync.Mutex
	view View
}

// RouterOption applies a configuration option to the Router.
type RouterOption func(*Router)

// WithLogger sets the router logger.
func WithLogger(l logger.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics manager navigations are recorded on.
func WithMetrics(m *metrics.Manager) RouterOption {
	return func(r *Router) {
		if m != nil {
			r.metrics = m
		}
	}
}

// NewRouter builds a router mounted at base. No route loader runs here.
func NewRouter(base string, routes []Route, opts ...RouterOption) *Router {
	r := &Router{
		base:    normalizeBase(base),
		logger:  logger.Nop(),
		metrics: metrics.Default(),
	}
	for _, route := range routes {
		r.entries = append(r.entries, &entry{route: route})
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode reports the navigation mode.
func (r *Router) Mode() string { return ModeHistory }

// Base returns the normalized base path ("" when mounted at root).
func (r *Router) Base() string { return r.base }

// Routes returns the declared route table.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.route
	}
	return out
}

// Resolve maps a request path to a route without loading its view.
func (r *Router) Resolve(path string) (Match, error) {
	rel, ok := r.strip(path)
	if !ok {
		return Match{}, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}
	if e := r.lookup(rel); e != nil {
		return Match{Route: e.route, Path: rel}, nil
	}
	return Match{}, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
}

// Navigate resolves path and activates its view, loading it on first use.
// A failed load is not memoized; the next navigation tries again.
func (r *Router) Navigate(ctx context.Context, path string) (View, error) {
	log := r.logger.With(logger.String("navigation_id", uuid.NewString()), logger.String("path", path))

	rel, ok := r.strip(path)
	var e *entry
	if ok {
		e = r.lookup(rel)
	}
	if e == nil {
		r.metrics.RecordNavigation("", metrics.OutcomeNotFound)
		log.Debug(ctx, "no route matched")
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}

	view, err := r.activate(ctx, e, log)
	if err != nil {
		r.metrics.RecordNavigation(e.route.Name, metrics.OutcomeFailure)
		return nil, err
	}
	r.metrics.RecordNavigation(e.route.Name, metrics.OutcomeSuccess)
	log.Debug(ctx, "navigated", logger.String("route", e.route.Name))
	return view, nil
}

func (r *Router) activate(ctx context.Context, e *entry, log logger.Logger) (View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.view != nil {
		return e.view, nil
	}
	if e.route.Load == nil {
		return nil, fmt.Errorf("%w: route %q has no loader", ErrLoadView, e.route.Name)
	}

	view, err := e.route.Load(ctx)
	if err != nil {
		r.metrics.RecordViewLoad(e.route.Name, metrics.OutcomeFailure)
		log.Error(ctx, "view load failed", logger.String("route", e.route.Name), logger.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadView, e.route.Name, err)
	}
	r.metrics.RecordViewLoad(e.route.Name, metrics.OutcomeSuccess)
	log.Info(ctx, "view loaded", logger.String("route", e.route.Name), logger.String("view", view.Name()))
	e.view = view
	return view, nil
}

// ServeHTTP navigates to the request path and lets the view answer.
// Unmatched paths get a 404 JSON error.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	view, err := r.Navigate(req.Context(), req.URL.Path)
	switch {
	case err == nil:
		view.ServeHTTP(w, req)
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "view_load_failed", err)
	}
}

func (r *Router) lookup(rel string) *entry {
	for _, e := range r.entries {
		if e.route.Path == rel {
			return e
		}
	}
	return nil
}

// strip removes the base from path. ok is false when path is outside it.
func (r *Router) strip(path string) (string, bool) {
	if path == "" {
		path = "/"
	}
	if r.base == "" {
		return path, true
	}
	if path == r.base {
		return "/", true
	}
	if strings.HasPrefix(path, r.base+"/") {
		return path[len(r.base):], true
	}
	return "", false
}

// normalizeBase gives base a leading slash and drops trailing ones.
func normalizeBase(base string) string {
	base = strings.TrimSpace(base)
	base = strings.TrimRight(base, "/")
	if base == "" {
		return ""
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Code: code, Message: err.Error()})
}
