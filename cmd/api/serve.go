package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/pkordes/trip-registry/internal/config"
	"github.com/pkordes/trip-registry/internal/handler"
	"github.com/pkordes/trip-registry/internal/metrics"
	"github.com/pkordes/trip-registry/internal/middleware"
	"github.com/pkordes/trip-registry/internal/repo"
	"github.com/pkordes/trip-registry/internal/service"
)

// shutdownTimeout is how long in-flight requests get to finish after a signal.
const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		return err
	}

	// --- Logger -----------------------------------------------------------
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	pool, db, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		return err
	}
	defer pool.Close()
	defer db.Close()
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		provider, err := newMigrationProvider(db)
		if err != nil {
			return err
		}
		results, err := provider.Up(ctx)
		if err != nil {
			slog.Error("migrations failed", "error", err)
			return err
		}
		slog.Info("migrations applied", "count", len(results))
	}

	// --- Metrics ----------------------------------------------------------
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// --- Services ---------------------------------------------------------
	tripSvc := service.NewTripService(repo.NewTripRepo(pool))
	clientSvc := service.NewClientService(repo.NewTransactor(pool), collector)

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   rate.Limit(cfg.RateLimitRPS),
		Burst: cfg.RateLimitBurst,
	})
	defer limiter.Stop()

	r := newRouter(routerConfig{
		logger:    logger,
		cfg:       cfg,
		server:    handler.NewServer(tripSvc, clientSvc, db),
		collector: collector,
		gatherer:  registry,
		limiter:   limiter,
	})

	// --- HTTP Server ------------------------------------------------------
	// Write timeout leaves headroom over the per-request timeout so the
	// timeout middleware can still answer.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server error", "error", err)
			return err
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}

// routerConfig carries everything newRouter wires together.
type routerConfig struct {
	logger    *slog.Logger
	cfg       config.Config
	server    *handler.Server
	collector *metrics.Collector
	gatherer  prometheus.Gatherer
	limiter   *middleware.RateLimiter
}

// newRouter builds the root handler.
//
// Middleware is applied in order: RequestID → RealIP → Logger → Metrics →
// Recoverer → CORS → Timeout → MaxBodySize. Metrics sits outside Recoverer so
// panics are counted as 500s. The rate limiter only guards the
// API routes so probes and scrapes are never throttled.
func newRouter(rc routerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(rc.logger))
	r.Use(middleware.NewMetricsHandler(rc.collector))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(rc.cfg.CORSOrigins))
	r.Use(chimiddleware.Timeout(rc.cfg.RequestTimeout))
	r.Use(middleware.NewMaxBodySizeHandler(rc.cfg.MaxBodyBytes))

	r.Handle("/metrics", metrics.Handler(rc.gatherer))
	r.Mount("/", rc.server.Routes(rc.limiter.Handler))

	return r
}
