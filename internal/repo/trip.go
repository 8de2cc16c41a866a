package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/trip-registry/internal/domain"
)

// TripRepo defines the read operations for Trips.
// Trips and countries are written by another system; this service only reads them.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// GetByID retrieves a single trip by its primary key, without countries or clients.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int) (domain.Trip, error)

	// ListPaged returns one page of trips ordered by date_from descending (ties by
	// id ascending) with countries and registered clients populated, plus the
	// total number of trips.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id int) (domain.Trip, error) {
	const q = `
		SELECT id_trip, name, description, date_from, date_to, max_people
		FROM trip
		WHERE id_trip = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged loads the page window first, then its countries and clients with one
// query each, so the number of round trips does not grow with the page size.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `SELECT count(*) FROM trip`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT id_trip, name, description, date_from, date_to, max_people
		FROM trip
		ORDER BY date_from DESC, id_trip
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.PageSize, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}
	if len(trips) == 0 {
		return trips, total, nil
	}

	ids := make([]int, len(trips))
	index := make(map[int]int, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
		index[t.ID] = i
		trips[i].Countries = []domain.Country{}
		trips[i].Clients = []domain.ClientName{}
	}

	if err := r.attachCountries(ctx, ids, index, trips); err != nil {
		return nil, 0, err
	}
	if err := r.attachClients(ctx, ids, index, trips); err != nil {
		return nil, 0, err
	}

	return trips, total, nil
}

// attachCountries fills Countries for every trip in the window, ordered by name.
func (r *pgTripRepo) attachCountries(ctx context.Context, ids []int, index map[int]int, trips []domain.Trip) error {
	const q = `
		SELECT ct.id_trip, c.id_country, c.name
		FROM country_trip ct
		JOIN country c ON c.id_country = ct.id_country
		WHERE ct.id_trip = ANY(@ids)
		ORDER BY c.name, c.id_country`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.ListPaged: countries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID int
			c      domain.Country
		)
		if err := rows.Scan(&tripID, &c.ID, &c.Name); err != nil {
			return fmt.Errorf("repo.TripRepo.ListPaged: countries: scan: %w", err)
		}
		i := index[tripID]
		trips[i].Countries = append(trips[i].Countries, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("repo.TripRepo.ListPaged: countries: rows: %w", err)
	}
	return nil
}

// attachClients fills Clients for every trip in the window in registration order.
func (r *pgTripRepo) attachClients(ctx context.Context, ids []int, index map[int]int, trips []domain.Trip) error {
	const q = `
		SELECT ct.id_trip, c.first_name, c.last_name
		FROM client_trip ct
		JOIN client c ON c.id_client = ct.id_client
		WHERE ct.id_trip = ANY(@ids)
		ORDER BY ct.registered_at, c.id_client`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.ListPaged: clients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tripID int
			c      domain.ClientName
		)
		if err := rows.Scan(&tripID, &c.FirstName, &c.LastName); err != nil {
			return fmt.Errorf("repo.TripRepo.ListPaged: clients: scan: %w", err)
		}
		i := index[tripID]
		trips[i].Clients = append(trips[i].Clients, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("repo.TripRepo.ListPaged: clients: rows: %w", err)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip

	err := s.Scan(&t.ID, &t.Name, &t.Description, &t.DateFrom, &t.DateTo, &t.MaxPeople)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	// date_from and date_to are zone-less; keep their wall clock in UTC.
	t.DateFrom = t.DateFrom.UTC()
	t.DateTo = t.DateTo.UTC()
	return t, nil
}
