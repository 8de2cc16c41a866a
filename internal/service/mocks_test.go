package service_test

import (
	"context"
	"maps"
	"sort"

	"github.com/pkordes/trip-registry/internal/domain"
	"github.com/pkordes/trip-registry/internal/repo"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
type mockTripRepo struct {
	getByID   func(ctx context.Context, id int) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

func (m *mockTripRepo) GetByID(ctx context.Context, id int) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}

// mockClientRepo is a hand-written test double for repo.ClientRepo.
type mockClientRepo struct {
	getByID    func(ctx context.Context, id int) (domain.Client, error)
	getByPesel func(ctx context.Context, pesel string) (domain.Client, error)
	create     func(ctx context.Context, c domain.Client) (domain.Client, error)
	update     func(ctx context.Context, c domain.Client) error
	delete     func(ctx context.Context, id int) error
}

func (m *mockClientRepo) GetByID(ctx context.Context, id int) (domain.Client, error) {
	return m.getByID(ctx, id)
}
func (m *mockClientRepo) GetByPesel(ctx context.Context, pesel string) (domain.Client, error) {
	return m.getByPesel(ctx, pesel)
}
func (m *mockClientRepo) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	return m.create(ctx, c)
}
func (m *mockClientRepo) Update(ctx context.Context, c domain.Client) error {
	return m.update(ctx, c)
}
func (m *mockClientRepo) Delete(ctx context.Context, id int) error {
	return m.delete(ctx, id)
}

// mockRegistrationRepo is a hand-written test double for repo.RegistrationRepo.
type mockRegistrationRepo struct {
	exists        func(ctx context.Context, clientID, tripID int) (bool, error)
	countByClient func(ctx context.Context, clientID int) (int64, error)
	create        func(ctx context.Context, ct domain.ClientTrip) error
}

func (m *mockRegistrationRepo) Exists(ctx context.Context, clientID, tripID int) (bool, error) {
	return m.exists(ctx, clientID, tripID)
}
func (m *mockRegistrationRepo) CountByClient(ctx context.Context, clientID int) (int64, error) {
	return m.countByClient(ctx, clientID)
}
func (m *mockRegistrationRepo) Create(ctx context.Context, ct domain.ClientTrip) error {
	return m.create(ctx, ct)
}

// mockTransactor runs fn directly against a fixed set of repos.
type mockTransactor struct {
	repos repo.Repos
	calls int
}

func (m *mockTransactor) WithinTx(_ context.Context, fn func(r repo.Repos) error) error {
	m.calls++
	return fn(m.repos)
}

// compile-time checks: the doubles must satisfy the repo interfaces.
var (
	_ repo.TripRepo         = (*mockTripRepo)(nil)
	_ repo.ClientRepo       = (*mockClientRepo)(nil)
	_ repo.RegistrationRepo = (*mockRegistrationRepo)(nil)
	_ repo.Transactor       = (*mockTransactor)(nil)
)

// ---- in-memory store -------------------------------------------------------

// memStore is a small in-memory stand-in for the database used by the
// property-style tests. WithinTx snapshots the state and restores it when the
// unit of work fails, mirroring a rolled-back transaction.
type memStore struct {
	trips         map[int]domain.Trip
	clients       map[int]domain.Client
	registrations map[[2]int]domain.ClientTrip
	nextClientID  int
}

func newMemStore(trips ...domain.Trip) *memStore {
	s := &memStore{
		trips:         map[int]domain.Trip{},
		clients:       map[int]domain.Client{},
		registrations: map[[2]int]domain.ClientTrip{},
		nextClientID:  1,
	}
	for _, t := range trips {
		s.trips[t.ID] = t
	}
	return s
}

func (s *memStore) WithinTx(_ context.Context, fn func(r repo.Repos) error) error {
	clients := maps.Clone(s.clients)
	registrations := maps.Clone(s.registrations)
	next := s.nextClientID

	err := fn(repo.Repos{
		Trips:         memTrips{s},
		Clients:       memClients{s},
		Registrations: memRegistrations{s},
	})
	if err != nil {
		s.clients, s.registrations, s.nextClientID = clients, registrations, next
	}
	return err
}

func (s *memStore) clientsWithPesel(pesel string) []domain.Client {
	var out []domain.Client
	for _, c := range s.clients {
		if c.Pesel == pesel {
			out = append(out, c)
		}
	}
	return out
}

type memTrips struct{ s *memStore }

func (m memTrips) GetByID(_ context.Context, id int) (domain.Trip, error) {
	t, ok := m.s.trips[id]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	return t, nil
}

func (m memTrips) ListPaged(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	all := make([]domain.Trip, 0, len(m.s.trips))
	for _, t := range m.s.trips {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].DateFrom.Equal(all[j].DateFrom) {
			return all[i].DateFrom.After(all[j].DateFrom)
		}
		return all[i].ID < all[j].ID
	})
	total := int64(len(all))
	start := min(p.Offset(), len(all))
	end := min(start+p.PageSize, len(all))
	return all[start:end], total, nil
}

type memClients struct{ s *memStore }

func (m memClients) GetByID(_ context.Context, id int) (domain.Client, error) {
	c, ok := m.s.clients[id]
	if !ok {
		return domain.Client{}, domain.ErrNotFound
	}
	return c, nil
}

func (m memClients) GetByPesel(_ context.Context, pesel string) (domain.Client, error) {
	if found := m.s.clientsWithPesel(pesel); len(found) > 0 {
		return found[0], nil
	}
	return domain.Client{}, domain.ErrNotFound
}

func (m memClients) Create(_ context.Context, c domain.Client) (domain.Client, error) {
	if len(m.s.clientsWithPesel(c.Pesel)) > 0 {
		return domain.Client{}, domain.ErrConflict
	}
	c.ID = m.s.nextClientID
	m.s.nextClientID++
	m.s.clients[c.ID] = c
	return c, nil
}

func (m memClients) Update(_ context.Context, c domain.Client) error {
	existing, ok := m.s.clients[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Pesel = existing.Pesel
	m.s.clients[c.ID] = c
	return nil
}

func (m memClients) Delete(_ context.Context, id int) error {
	if _, ok := m.s.clients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.s.clients, id)
	return nil
}

type memRegistrations struct{ s *memStore }

func (m memRegistrations) Exists(_ context.Context, clientID, tripID int) (bool, error) {
	_, ok := m.s.registrations[[2]int{clientID, tripID}]
	return ok, nil
}

func (m memRegistrations) CountByClient(_ context.Context, clientID int) (int64, error) {
	var n int64
	for k := range m.s.registrations {
		if k[0] == clientID {
			n++
		}
	}
	return n, nil
}

func (m memRegistrations) Create(_ context.Context, ct domain.ClientTrip) error {
	key := [2]int{ct.ClientID, ct.TripID}
	if _, ok := m.s.registrations[key]; ok {
		return domain.ErrAlreadyRegistered
	}
	m.s.registrations[key] = ct
	return nil
}
