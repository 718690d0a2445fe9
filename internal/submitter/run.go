package submitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/coinfront/internal/adapters/http/client"
)

// Creator is the data service operation the submitter drives.
type Creator interface {
	Create(ctx context.Context, data any) (*client.Response, error)
}

// Submit posts every payload through svc using a pool of workers. Each
// payload is submitted exactly once; outcomes are returned in input order.
func Submit(ctx context.Context, svc Creator, payloads []json.RawMessage, workers int) ([]Outcome, Stats) {
	start := time.Now()
	if workers <= 0 {
		workers = 1
	}
	if workers > len(payloads) {
		workers = len(payloads)
	}

	outcomes := make([]Outcome, len(payloads))
	for i := range outcomes {
		outcomes[i].Index = i
	}
	var successful, failed int64

	jobs := make(chan int, workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				resp, err := svc.Create(ctx, payloads[idx])
				outcomes[idx] = Outcome{Index: idx, Response: resp, Err: err}
				if err != nil {
					atomic.AddInt64(&failed, 1)
				} else {
					atomic.AddInt64(&successful, 1)
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for idx := range payloads {
			select {
			case <-ctx.Done():
				return
			case jobs <- idx:
			}
		}
	}()

	wg.Wait()

	ok := int(atomic.LoadInt64(&successful))
	bad := int(atomic.LoadInt64(&failed))
	return outcomes, Stats{
		Submitted:  ok + bad,
		Successful: ok,
		Failed:     bad,
		Duration:   time.Since(start),
	}
}

// Report writes one line per outcome followed by a summary.
func Report(w io.Writer, outcomes []Outcome, stats Stats, verbose bool) {
	for _, o := range outcomes {
		switch {
		case o.Response == nil && o.Err == nil:
			_, _ = fmt.Fprintf(w, "#%d skipped\n", o.Index)
		case o.Response == nil:
			_, _ = fmt.Fprintf(w, "#%d error: %v\n", o.Index, o.Err)
		default:
			_, _ = fmt.Fprintf(w, "#%d %s\n", o.Index, o.Response.Status)
			if o.Err != nil {
				_, _ = fmt.Fprintf(w, "   error: %v\n", o.Err)
			}
			if verbose {
				_, _ = fmt.Fprintf(w, "   %s\n", o.Response.Body)
			}
		}
	}
	_, _ = fmt.Fprintf(w, "submitted=%d successful=%d failed=%d duration=%s\n",
		stats.Submitted, stats.Successful, stats.Failed, stats.Duration.Round(time.Millisecond))
}
