// Package submitter drives the coin data service from the command line.
package submitter

import (
	"time"

	"github.com/okian/coinfront/internal/adapters/http/client"
)

// Config holds configuration for a submission run.
type Config struct {
	BaseURL string        // Base address of the coin API
	Data    string        // Inline JSON payload
	Symbol  string        // Shorthand for {"symbol": Symbol}
	File    string        // File holding a JSON array of payloads
	Workers int           // Number of concurrent workers
	Timeout time.Duration // Per-request timeout; zero means none
	Verbose bool          // Print response bodies
}

// Outcome is the settled result of one payload.
type Outcome struct {
	Index    int
	Response *client.Response
	Err      error
}

// Stats summarizes a run.
type Stats struct {
	Submitted  int
	Successful int
	Failed     int
	Duration   time.Duration
}
