package site

import (
	"context"
	"net/http"
)

// View is a page a route resolves to.
type View interface {
	http.Handler
	Name() string
}

// LoadFunc builds a route's view. It runs on the first navigation to the
// route, never at router construction.
type LoadFunc func(ctx context.Context) (View, error)

// Route maps a path to a named, lazily loaded view.
type Route struct {
	Path string
	Name string
	Load LoadFunc
}

// Match is the result of resolving a path against the route table.
type Match struct {
	Route Route
	// Path is the request path relative to the router base.
	Path string
}
