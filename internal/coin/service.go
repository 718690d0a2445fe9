// Package coin submits coin detail payloads to the upstream API.
package coin

import (
	"context"

	"github.com/okian/coinfront/internal/adapters/http/client"
	"github.com/okian/coinfront/pkg/metrics"
)

// DetailPath is the endpoint coin details are posted to, relative to the
// client's base address.
const DetailPath = "/coin/detail"

// Response is the upstream response returned by the shared client.
type Response = client.Response

// Poster is the subset of the shared client the service needs.
type Poster interface {
	Post(ctx context.Context, path string, body any, opts ...client.RequestOption) (*client.Response, error)
}

// Service submits coin details. It holds no per-call state; concurrent
// calls are independent.
type Service struct {
	client  Poster
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMetrics sets the metrics manager submissions are recorded on.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewService wraps the shared client.
func NewService(c Poster, opts ...Option) *Service {
	s := &Service{client: c, metrics: metrics.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create posts data as the JSON body to DetailPath. It issues exactly one
// request and returns the client's result unchanged.
func (s *Service) Create(ctx context.Context, data any) (*Response, error) {
	resp, err := s.client.Post(ctx, DetailPath, data)
	if err != nil {
		s.metrics.RecordSubmission(metrics.OutcomeFailure)
		return resp, err
	}
	s.metrics.RecordSubmission(metrics.OutcomeSuccess)
	return resp, nil
}

// CreateAsync runs Create on its own goroutine and returns a Future that is
// completed with its result.
func (s *Service) CreateAsync(ctx context.Context, data any) *Future {
	f := newFuture()
	go func() {
		resp, err := s.Create(ctx, data)
		f.complete(Result{Response: resp, Err: err})
	}()
	return f
}
