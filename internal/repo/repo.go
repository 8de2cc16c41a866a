// Package repo contains all database access logic for the trip registry.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repos translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txBeginner is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
// Beginning on a pgx.Tx opens a savepoint, so a Transactor built on a test
// transaction still rolls back with it.
type txBeginner interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repos bundles the repositories that share one connection or transaction.
type Repos struct {
	Trips         TripRepo
	Clients       ClientRepo
	Registrations RegistrationRepo
}

// NewRepos builds every repository on top of the same db handle.
func NewRepos(db db) Repos {
	return Repos{
		Trips:         NewTripRepo(db),
		Clients:       NewClientRepo(db),
		Registrations: NewRegistrationRepo(db),
	}
}

// Transactor runs a unit of work inside a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}

// pgTransactor is the Postgres implementation of Transactor.
type pgTransactor struct {
	db txBeginner
}

// NewTransactor constructs a Transactor backed by the provided connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewTransactor(db txBeginner) Transactor {
	return &pgTransactor{db: db}
}

// WithinTx begins a transaction, hands fn repos bound to it, and commits or
// rolls back depending on fn's result. The error from fn is returned unchanged.
func (t *pgTransactor) WithinTx(ctx context.Context, fn func(r Repos) error) error {
	return pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
}

// isPgError reports whether err carries the given Postgres SQLSTATE code.
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}
