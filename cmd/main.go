package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/coinfront/internal/adapters/http/api"
	"github.com/okian/coinfront/internal/adapters/http/client"
	"github.com/okian/coinfront/internal/adapters/http/site"
	"github.com/okian/coinfront/internal/coin"
	"github.com/okian/coinfront/internal/config"
	"github.com/okian/coinfront/pkg/logger"
	"github.com/okian/coinfront/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWithFormat(cfg.LogFormat); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, log),
		ReadTimeout:       readTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("api_base_url", cfg.APIBaseURL),
			logger.String("base_path", cfg.BasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// newHandler builds the shared client once and injects it down the chain:
// router -> home view -> coin service -> client.
func newHandler(ctx context.Context, cfg *config.Config, log logger.Logger) http.Handler {
	m := metrics.Default()

	httpClient := client.New(
		client.WithBaseURL(cfg.APIBaseURL),
		client.WithTimeout(cfg.RequestTimeout()),
		client.WithLogger(log.Named("client")),
		client.WithMetrics(m),
	)
	coins := coin.NewService(httpClient, coin.WithMetrics(m))

	router := site.NewRouter(cfg.BasePath,
		[]site.Route{site.HomeRoute(coins, log.Named("home"))},
		site.WithLogger(log.Named("router")),
		site.WithMetrics(m),
	)

	mux := http.NewServeMux()
	api.NewServer(router, m).Register(ctx, mux)
	return mux
}
