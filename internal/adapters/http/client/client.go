// Package client provides the shared HTTP client used to call the coin API.
//
// A Client is built once at startup and injected into every component that
// issues requests. It carries a fixed base address and default headers, adds
// no retry, caching or authentication, and reports transport failures to the
// caller exactly as net/http produced them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/coinfront/pkg/logger"
	"github.com/okian/coinfront/pkg/metrics"
)

// Defaults applied by New.
const (
	DefaultBaseURL  = "http://localhost:8088/api"
	ContentTypeJSON = "application/json"
)

const (
	headerContentType   = "Content-Type"
	nanosPerMillisecond = float64(time.Millisecond)
)

// Client issues requests against a fixed base address.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL string
	headers http.Header
	timeout time.Duration
	hc      *http.Client
	logger  logger.Logger
	metrics *metrics.Manager
}

// New builds a Client. Construction never fails; a malformed base address
// surfaces as an error from the first request issued.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		headers: http.Header{},
		hc:      &http.Client{},
		logger:  logger.Nop(),
		metrics: metrics.Default(),
	}
	c.headers.Set(headerContentType, ContentTypeJSON)

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.hc
		hc.Timeout = c.timeout
		c.hc = &hc
	}
	return c
}

// BaseURL returns the configured base address.
func (c *Client) BaseURL() string { return c.baseURL }

// Headers returns a copy of the default headers.
func (c *Client) Headers() http.Header { return c.headers.Clone() }

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, opts...)
}

// Post issues a POST request with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, opts...)
}

// Do issues one request. A non-2xx status returns the Response together with
// a *StatusError. Transport errors are returned as net/http reported them.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	reqID := uuid.NewString()
	log := c.logger.With(logger.String("request_id", reqID), logger.String("method", method), logger.String("path", path))

	payload, err := encodeBody(body)
	if err != nil {
		c.metrics.RecordClientError(method, path, metrics.KindEncode)
		return nil, err
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	for key, values := range c.headers {
		req.Header[key] = append([]string(nil), values...)
	}
	for _, opt := range opts {
		opt(req)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.RecordClientError(method, path, metrics.KindTransport)
		log.Debug(ctx, "request failed", logger.Duration("elapsed", elapsed), logger.Error(err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordClientError(method, path, metrics.KindTransport)
		return nil, err
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       data,
		Request:    req,
	}
	c.metrics.RecordClientRequest(method, path, strconv.Itoa(resp.StatusCode), float64(elapsed)/nanosPerMillisecond)
	log.Debug(ctx, "request completed", logger.Int("status", resp.StatusCode), logger.Duration("elapsed", elapsed))

	if !out.OK() {
		c.metrics.RecordClientError(method, path, metrics.KindStatus)
		return out, &StatusError{Response: out}
	}
	return out, nil
}

// resolve joins path onto the base address. Absolute URLs are used as-is.
func (c *Client) resolve(path string) string {
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	if path == "" {
		return c.baseURL
	}
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// encodeBody returns nil for a nil body, pre-encoded bytes unchanged, and
// JSON for anything else.
func encodeBody(body any) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}
