// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/law-makers/autocrawl/internal/cache"
	"github.com/law-makers/autocrawl/internal/config"
	"github.com/law-makers/autocrawl/internal/engine"
	"github.com/law-makers/autocrawl/internal/engine/crawl"
	"github.com/law-makers/autocrawl/internal/engine/static"
	"github.com/law-makers/autocrawl/internal/proxy"
	"github.com/law-makers/autocrawl/internal/reqctx"
	"github.com/law-makers/autocrawl/internal/retry"
	"github.com/law-makers/autocrawl/internal/ui"
	"github.com/law-makers/autocrawl/internal/utils/output"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per command run. Use Close() to release the cache and
// idle connections on shutdown.
type Application struct {
	Config       *config.Config
	Logger       *zerolog.Logger
	RunID        string
	Cache        cache.Cache
	Proxies      *proxy.Pool
	HTTPClient   *http.Client
	Fetcher      engine.PageFetcher
	Progress     *ui.Progress
	Orchestrator *crawl.Orchestrator
	startTime    time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the detail option cache, unless disabled
//   - Builds the proxy pool and the shared HTTP client
//   - Creates the fetcher, crawler, writer and orchestrator
//
// If any step fails, an error is returned and no resources are allocated.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := SetupLogging(cfg, os.Stderr)
	runID := reqctx.NewRunID()

	var detailCache cache.Cache
	if cfg.CacheEnabled {
		memCache, err := cache.NewMemoryCache(cfg.CacheMaxSizeBytes)
		if err != nil {
			return nil, fmt.Errorf("create cache: %w", err)
		}
		detailCache = memCache
		logger.Debug().
			Int64("max_size_bytes", cfg.CacheMaxSizeBytes).
			Dur("ttl", cfg.CacheTTL).
			Msg("Detail cache initialized")
	}

	pool, err := proxy.NewPool(cfg.Proxies)
	if err != nil {
		if detailCache != nil {
			detailCache.Close()
		}
		return nil, err
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DisableKeepAlives:   false,
	}
	if pool.Len() > 0 {
		transport.Proxy = pool.ProxyFunc()
	}
	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport,
	}
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Int("proxies", pool.Len()).
		Msg("HTTP client initialized")

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.RetryAttempts
	retryCfg.InitialBackoff = cfg.RetryBackoff

	fetcher := static.New(httpClient, static.Options{
		UserAgent: cfg.UserAgent,
		Headers:   cfg.Headers,
		Retry:     retryCfg,
		Proxies:   pool,
	})

	var progress *ui.Progress
	var sink engine.Progress = engine.NopProgress{}
	if cfg.Progress {
		progress = ui.NewProgress(os.Stderr)
		sink = progress
	}

	crawler := crawl.NewCrawler(fetcher, crawl.NewEnricher(fetcher, detailCache, cfg.CacheTTL), crawl.Options{
		SearchURL:     cfg.SearchURL(),
		Host:          cfg.Host,
		MaxPages:      cfg.MaxPages,
		DetailWorkers: cfg.DetailWorkers,
		Progress:      sink,
	})

	orchestrator := crawl.NewOrchestrator(crawler, NewWriter(cfg), crawl.OrchestratorOptions{
		BrandWorkers: cfg.BrandWorkers,
		OutputDir:    cfg.OutputDir,
		Pattern:      cfg.FilenamePattern,
		RunID:        runID,
	})

	app := &Application{
		Config:       cfg,
		Logger:       &logger,
		RunID:        runID,
		Cache:        detailCache,
		Proxies:      pool,
		HTTPClient:   httpClient,
		Fetcher:      fetcher,
		Progress:     progress,
		Orchestrator: orchestrator,
		startTime:    time.Now(),
	}

	logger.Debug().Str("run_id", runID).Msg("Application initialized")
	return app, nil
}

// NewWriter returns the record writer for the configured output format
func NewWriter(cfg *config.Config) crawl.RecordWriter {
	if cfg.Format == config.FormatJSON {
		return output.JSONWriter{}
	}
	return output.NewDelimitedWriter(cfg.Delimiter)
}

// SetupLogging configures the global zerolog logger from cfg and returns it
func SetupLogging(cfg *config.Config, w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.JSONLog {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}
	return log.Logger
}

// Close gracefully shuts down the application and all its resources.
//
// Errors during shutdown are logged but do not prevent other shutdown steps.
func (a *Application) Close(ctx context.Context) error {
	if a.Progress != nil {
		a.Progress.Finish()
		a.Logger.Debug().Int("listings", a.Progress.Total()).Msg("Progress finished")
	}

	if a.Cache != nil {
		a.Logger.Debug().Fields(a.Cache.Stats()).Msg("Detail cache stats")
		a.Cache.Close()
	}

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
