package client

import (
	"errors"
	"fmt"
)

// Sentinel kinds for client errors.
var (
	ErrRequest = errors.New("build request failed")
	ErrEncode  = errors.New("encode request body failed")
	ErrDecode  = errors.New("decode response body failed")
	ErrStatus  = errors.New("unexpected response status")
)

// StatusError reports a completed request whose status was not 2xx.
type StatusError struct {
	Response *Response
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", ErrStatus, e.Response.Request.Method, e.Response.Request.URL, e.Response.Status)
}

// Unwrap lets callers match with errors.Is(err, ErrStatus).
func (e *StatusError) Unwrap() error { return ErrStatus }
