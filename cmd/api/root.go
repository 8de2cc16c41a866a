package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-registry/migrations"
)

var rootCmd = &cobra.Command{
	Use:   "trip-registry",
	Short: "REST API for trips, clients and their registrations",
	Long: `trip-registry serves the trip listing, client removal and client
registration endpoints backed by Postgres.

Configuration is read from environment variables (DATABASE_URL, PORT,
LOG_LEVEL, CORS_ORIGINS, REQUEST_TIMEOUT, MAX_BODY_BYTES, RATE_LIMIT_RPS,
RATE_LIMIT_BURST, MIGRATE_ON_START).`,
	SilenceUsage: true,
}

// newLogger builds the JSON slog logger used by every command.
// An unknown level falls back to info.
func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// openDatabase opens the pgx pool and verifies the database is reachable.
// The returned *sql.DB shares the pool's connections and is what goose and
// the readiness probe use.
func openDatabase(ctx context.Context, dsn string) (*pgxpool.Pool, *sql.DB, error) {
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("create database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	return pool, stdlib.OpenDBFromPool(pool), nil
}

// newMigrationProvider returns a goose provider over the embedded migrations.
func newMigrationProvider(db *sql.DB) (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return provider, nil
}
