package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pkordes/trip-registry/internal/domain"
	"github.com/pkordes/trip-registry/internal/repo"
)

// Outcome labels reported to the Recorder.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Recorder receives the outcome of each client operation.
// *metrics.Collector satisfies it.
type Recorder interface {
	RecordRegistration(outcome string)
	RecordRemoval(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordRegistration(string) {}
func (nopRecorder) RecordRemoval(string)      {}

var peselPattern = regexp.MustCompile(`^[0-9]{11}$`)

// ClientService implements client removal and trip registration.
// Every operation runs as one unit of work through the Transactor, so the
// check-then-act sequences hold their row locks until commit.
type ClientService struct {
	tx  repo.Transactor
	rec Recorder
	now func() time.Time
}

// NewClientService constructs a ClientService. rec may be nil.
func NewClientService(tx repo.Transactor, rec Recorder) *ClientService {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &ClientService{tx: tx, rec: rec, now: time.Now}
}

// WithClock replaces the time source used for registration timestamps and the
// trip start check. Intended for tests.
func (s *ClientService) WithClock(now func() time.Time) *ClientService {
	s.now = now
	return s
}

// RemoveClient deletes a client that has no trip registrations.
// Returns domain.ErrNotFound if the client does not exist and
// domain.ErrClientHasTrips if it is still registered for any trip.
func (s *ClientService) RemoveClient(ctx context.Context, clientID int) error {
	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		client, err := r.Clients.GetByID(ctx, clientID)
		if err != nil {
			return err
		}

		n, err := r.Registrations.CountByClient(ctx, client.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrClientHasTrips
		}

		return r.Clients.Delete(ctx, client.ID)
	})
	s.rec.RecordRemoval(outcomeOf(err))
	if err != nil {
		return fmt.Errorf("service.ClientService.RemoveClient: %w", err)
	}
	return nil
}

// RegisterClient registers the client identified by PESEL for the trip.
//
// An existing client has its contact details overwritten; a new PESEL creates a
// client. The duplicate-registration check runs before the trip is loaded, so
// domain.ErrAlreadyRegistered wins over domain.ErrTripUnavailable. The trip must
// exist and must not have started yet. Any rejection rolls back the whole unit
// of work, including the client upsert.
func (s *ClientService) RegisterClient(ctx context.Context, tripID int, client domain.Client, paymentDate *time.Time) error {
	if err := validateClient(client); err != nil {
		s.rec.RecordRegistration(OutcomeRejected)
		return err
	}

	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		clientID, err := upsertClient(ctx, r, tripID, client)
		if err != nil {
			return err
		}

		now := s.now()
		trip, err := r.Trips.GetByID(ctx, tripID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrTripUnavailable
		}
		if err != nil {
			return err
		}
		if trip.HasStarted(now) {
			return domain.ErrTripUnavailable
		}

		return r.Registrations.Create(ctx, domain.ClientTrip{
			ClientID:     clientID,
			TripID:       tripID,
			RegisteredAt: now,
			PaymentDate:  paymentDate,
		})
	})
	s.rec.RecordRegistration(outcomeOf(err))
	if err != nil {
		return fmt.Errorf("service.ClientService.RegisterClient: %w", err)
	}
	return nil
}

// upsertClient returns the id of the client with the given PESEL, updating its
// details when it already exists and creating it otherwise.
func upsertClient(ctx context.Context, r repo.Repos, tripID int, client domain.Client) (int, error) {
	existing, err := r.Clients.GetByPesel(ctx, client.Pesel)
	if errors.Is(err, domain.ErrNotFound) {
		created, err := r.Clients.Create(ctx, client)
		if err != nil {
			return 0, err
		}
		return created.ID, nil
	}
	if err != nil {
		return 0, err
	}

	registered, err := r.Registrations.Exists(ctx, existing.ID, tripID)
	if err != nil {
		return 0, err
	}
	if registered {
		return 0, domain.ErrAlreadyRegistered
	}

	existing.FirstName = client.FirstName
	existing.LastName = client.LastName
	existing.Email = client.Email
	existing.Telephone = client.Telephone
	if err := r.Clients.Update(ctx, existing); err != nil {
		return 0, err
	}
	return existing.ID, nil
}

// validateClient enforces the shape of a registration request body.
//   - first name, last name, email, telephone and PESEL are required.
//   - PESEL is exactly 11 digits.
func validateClient(c domain.Client) error {
	for _, f := range []struct{ name, value string }{
		{"firstName", c.FirstName},
		{"lastName", c.LastName},
		{"email", c.Email},
		{"telephone", c.Telephone},
		{"pesel", c.Pesel},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
	}
	if !peselPattern.MatchString(c.Pesel) {
		return fmt.Errorf("%w: pesel must be 11 digits", domain.ErrValidation)
	}
	return nil
}

// outcomeOf classifies an operation result for metrics.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrNotFound):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
