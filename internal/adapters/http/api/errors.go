package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMethodNotAllowed = errors.New("method not allowed")
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
