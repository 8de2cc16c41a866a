// Package service contains the business logic for the trip registry.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-registry/internal/domain"
	"github.com/pkordes/trip-registry/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// ListTrips returns one page of trips, most recent start date first, together
// with the total page count computed from the unfiltered trip count.
// Returns domain.ErrValidation if page or page size is below one.
func (s *TripService) ListTrips(ctx context.Context, p domain.PaginationParams) (domain.TripPage, error) {
	if p.Page < 1 || p.PageSize < 1 {
		return domain.TripPage{}, fmt.Errorf("%w: page and pageSize must be at least 1", domain.ErrValidation)
	}

	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return domain.TripPage{}, fmt.Errorf("service.TripService.ListTrips: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}

	return domain.TripPage{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages(total),
		Trips:      trips,
	}, nil
}
