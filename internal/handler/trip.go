package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-registry/internal/domain"
)

// ListTrips handles GET /api/trips.
// Supports ?page= and ?pageSize= query parameters (defaults: page=1, pageSize=10).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, pageSize *int
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "page", query, &page); err != nil {
		writeMessage(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "pageSize", query, &pageSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "pageSize must be an integer")
		return
	}

	params, err := domain.NewPaginationParams(page, pageSize)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	result, err := s.trips.ListTrips(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripPageToResponse(result))
}

// --- mapping helpers --------------------------------------------------------

// tripPageToResponse converts a domain.TripPage into the listing body.
// Slices are always non-nil so they encode as [] rather than null.
func tripPageToResponse(p domain.TripPage) TripPageResponse {
	trips := make([]TripResponse, len(p.Trips))
	for i, t := range p.Trips {
		trips[i] = tripToResponse(t)
	}
	return TripPageResponse{
		PageNum:  p.Page,
		PageSize: p.PageSize,
		AllPages: p.TotalPages,
		Trips:    trips,
	}
}

// tripToResponse converts a domain.Trip into a TripResponse.
func tripToResponse(t domain.Trip) TripResponse {
	countries := make([]CountryResponse, len(t.Countries))
	for i, c := range t.Countries {
		countries[i] = CountryResponse{Name: c.Name}
	}
	clients := make([]ClientNameResponse, len(t.Clients))
	for i, c := range t.Clients {
		clients[i] = ClientNameResponse{FirstName: c.FirstName, LastName: c.LastName}
	}
	return TripResponse{
		Name:        t.Name,
		Description: t.Description,
		DateFrom:    openapi_types.Date{Time: t.DateFrom},
		DateTo:      openapi_types.Date{Time: t.DateTo},
		MaxPeople:   t.MaxPeople,
		Countries:   countries,
		Clients:     clients,
	}
}
