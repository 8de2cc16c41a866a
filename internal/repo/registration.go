package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/trip-registry/internal/domain"
)

// RegistrationRepo defines the persistence operations for the client_trip join table.
type RegistrationRepo interface {
	// Exists reports whether the client is registered for the trip.
	Exists(ctx context.Context, clientID, tripID int) (bool, error)

	// CountByClient returns the number of trips the client is registered for.
	CountByClient(ctx context.Context, clientID int) (int64, error)

	// Create inserts a registration. Returns domain.ErrAlreadyRegistered if the
	// (client, trip) pair already exists.
	Create(ctx context.Context, ct domain.ClientTrip) error
}

// pgRegistrationRepo is the Postgres implementation of RegistrationRepo.
type pgRegistrationRepo struct {
	db db
}

// NewRegistrationRepo constructs a RegistrationRepo backed by the provided db connection.
func NewRegistrationRepo(db db) RegistrationRepo {
	return &pgRegistrationRepo{db: db}
}

func (r *pgRegistrationRepo) Exists(ctx context.Context, clientID, tripID int) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM client_trip
			WHERE id_client = @client_id AND id_trip = @trip_id
		)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"client_id": clientID, "trip_id": tripID}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.RegistrationRepo.Exists: %w", err)
	}
	return exists, nil
}

func (r *pgRegistrationRepo) CountByClient(ctx context.Context, clientID int) (int64, error) {
	const q = `SELECT count(*) FROM client_trip WHERE id_client = @client_id`

	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"client_id": clientID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.RegistrationRepo.CountByClient: %w", err)
	}
	return n, nil
}

func (r *pgRegistrationRepo) Create(ctx context.Context, ct domain.ClientTrip) error {
	const q = `
		INSERT INTO client_trip (id_client, id_trip, registered_at, payment_date)
		VALUES (@client_id, @trip_id, @registered_at, @payment_date)`

	args := pgx.NamedArgs{
		"client_id":     ct.ClientID,
		"trip_id":       ct.TripID,
		"registered_at": ct.RegisteredAt,
		"payment_date":  ct.PaymentDate, // nil becomes NULL
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		if isPgError(err, pgUniqueViolation) {
			return fmt.Errorf("repo.RegistrationRepo.Create: %w", domain.ErrAlreadyRegistered)
		}
		return fmt.Errorf("repo.RegistrationRepo.Create: %w", err)
	}
	return nil
}
