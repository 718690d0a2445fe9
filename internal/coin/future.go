package coin

import (
	"context"
	"sync"
)

// Result is the settled outcome of an asynchronous submission.
// Response may be set alongside Err when the upstream answered non-2xx.
type Result struct {
	Response *Response
	Err      error
}

// Future is completed exactly once when the submission settles.
type Future struct {
	ch     chan struct{}
	result Result
	once   sync.Once
}

func newFuture() *Future {
	return &Future{ch: make(chan struct{})}
}

// complete settles the future. Later calls are ignored.
func (f *Future) complete(r Result) {
	f.once.Do(func() {
		f.result = r
		close(f.ch)
	})
}

// Done returns a channel closed when the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.ch
}

// Wait blocks until the submission settles or ctx is done. Giving up on the
// wait does not stop the in-flight request.
func (f *Future) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-f.ch:
		return f.result.Response, f.result.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the outcome and whether the future has settled.
func (f *Future) Result() (Result, bool) {
	select {
	case <-f.ch:
		return f.result, true
	default:
		return Result{}, false
	}
}
