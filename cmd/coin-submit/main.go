package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/coinfront/internal/adapters/http/client"
	"github.com/okian/coinfront/internal/coin"
	"github.com/okian/coinfront/internal/submitter"
	"github.com/okian/coinfront/pkg/logger"
)

// Default configuration constants.
const (
	defaultWorkers = 4
	runTimeout     = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", client.DefaultBaseURL, "Base address of the coin API")
		symbol  = flag.String("symbol", "", `Submit {"symbol": <value>}`)
		data    = flag.String("data", "", "Submit an inline JSON payload")
		file    = flag.String("file", "", "Submit every element of a JSON array file")
		workers = flag.Int("workers", defaultWorkers, "Number of concurrent workers")
		timeout = flag.Duration("timeout", 0, "Per-request timeout (0 means none)")
		verbose = flag.Bool("verbose", false, "Print response bodies")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		submitter.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}
	log := logger.Get()

	cfg := &submitter.Config{
		BaseURL: *baseURL,
		Data:    *data,
		Symbol:  *symbol,
		File:    *file,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	payloads, err := submitter.LoadPayloads(cfg)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		submitter.ShowHelp()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	httpClient := client.New(
		client.WithBaseURL(cfg.BaseURL),
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(log.Named("client")),
	)
	svc := coin.NewService(httpClient)

	outcomes, stats := submitter.Submit(ctx, svc, payloads, cfg.Workers)
	submitter.Report(os.Stdout, outcomes, stats, cfg.Verbose)
	log.Info(ctx, "submission run finished",
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration))

	if stats.Failed > 0 {
		os.Exit(1)
	}
}
