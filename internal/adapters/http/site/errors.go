package site

import "errors"

// Error constants
var (
	ErrRouteNotFound = errors.New("route not found")
	ErrLoadView      = errors.New("view load failed")
	ErrRender        = errors.New("view render failed")
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrRouteNotFound)
}
