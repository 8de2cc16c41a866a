package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/trip-registry/internal/domain"
)

// ClientRepo defines the persistence operations for Clients.
// The lookups take a row lock, so callers should run them inside a Transactor
// unit of work to hold the lock until the check-then-act sequence completes.
type ClientRepo interface {
	// GetByID retrieves and locks a client by primary key.
	// Returns domain.ErrNotFound if no client with that ID exists.
	GetByID(ctx context.Context, id int) (domain.Client, error)

	// GetByPesel retrieves and locks a client by PESEL.
	// Returns domain.ErrNotFound if no client has that PESEL.
	GetByPesel(ctx context.Context, pesel string) (domain.Client, error)

	// Create inserts a new client and returns it with the DB-generated id.
	// Returns an error wrapping domain.ErrConflict if the PESEL is already taken.
	Create(ctx context.Context, client domain.Client) (domain.Client, error)

	// Update overwrites first name, last name, email and telephone.
	// The PESEL is never changed. Returns domain.ErrNotFound if the client is gone.
	Update(ctx context.Context, client domain.Client) error

	// Delete removes a client by ID. Returns domain.ErrNotFound if it does not
	// exist and domain.ErrClientHasTrips if registrations still reference it.
	Delete(ctx context.Context, id int) error
}

// pgClientRepo is the Postgres implementation of ClientRepo.
type pgClientRepo struct {
	db db
}

// NewClientRepo constructs a ClientRepo backed by the provided db connection.
func NewClientRepo(db db) ClientRepo {
	return &pgClientRepo{db: db}
}

func (r *pgClientRepo) GetByID(ctx context.Context, id int) (domain.Client, error) {
	const q = `
		SELECT id_client, first_name, last_name, email, telephone, pesel
		FROM client
		WHERE id_client = @id
		FOR UPDATE`

	result, err := scanClient(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgClientRepo) GetByPesel(ctx context.Context, pesel string) (domain.Client, error) {
	const q = `
		SELECT id_client, first_name, last_name, email, telephone, pesel
		FROM client
		WHERE pesel = @pesel
		FOR UPDATE`

	result, err := scanClient(r.db.QueryRow(ctx, q, pgx.NamedArgs{"pesel": pesel}))
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.GetByPesel: %w", err)
	}
	return result, nil
}

func (r *pgClientRepo) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	const q = `
		INSERT INTO client (first_name, last_name, email, telephone, pesel)
		VALUES (@first_name, @last_name, @email, @telephone, @pesel)
		RETURNING id_client, first_name, last_name, email, telephone, pesel`

	args := pgx.NamedArgs{
		"first_name": client.FirstName,
		"last_name":  client.LastName,
		"email":      client.Email,
		"telephone":  client.Telephone,
		"pesel":      client.Pesel,
	}

	result, err := scanClient(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: pesel taken: %w", domain.ErrConflict)
		}
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgClientRepo) Update(ctx context.Context, client domain.Client) error {
	const q = `
		UPDATE client
		SET first_name = @first_name,
		    last_name  = @last_name,
		    email      = @email,
		    telephone  = @telephone
		WHERE id_client = @id`

	args := pgx.NamedArgs{
		"id":         client.ID,
		"first_name": client.FirstName,
		"last_name":  client.LastName,
		"email":      client.Email,
		"telephone":  client.Telephone,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.ClientRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ClientRepo.Update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgClientRepo) Delete(ctx context.Context, id int) error {
	const q = `DELETE FROM client WHERE id_client = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return fmt.Errorf("repo.ClientRepo.Delete: %w", domain.ErrClientHasTrips)
		}
		return fmt.Errorf("repo.ClientRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ClientRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanClient maps a single database row into a domain.Client.
func scanClient(s scanner) (domain.Client, error) {
	var c domain.Client
	err := s.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Telephone, &c.Pesel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, domain.ErrNotFound
		}
		return domain.Client{}, err
	}
	return c, nil
}
