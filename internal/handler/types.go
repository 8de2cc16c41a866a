package handler

import openapi_types "github.com/oapi-codegen/runtime/types"

// MessageResponse is the body of every non-listing response: successes,
// business-rule rejections and errors alike.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz and GET /readyz.
type HealthResponse struct {
	Status string `json:"status"`
}

// TripPageResponse is the body of GET /api/trips.
type TripPageResponse struct {
	PageNum  int            `json:"pageNum"`
	PageSize int            `json:"pageSize"`
	AllPages int            `json:"allPages"`
	Trips    []TripResponse `json:"trips"`
}

// TripResponse is one trip in a listing. Dates serialise as YYYY-MM-DD.
type TripResponse struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	DateFrom    openapi_types.Date   `json:"dateFrom"`
	DateTo      openapi_types.Date   `json:"dateTo"`
	MaxPeople   int                  `json:"maxPeople"`
	Countries   []CountryResponse    `json:"countries"`
	Clients     []ClientNameResponse `json:"clients"`
}

// CountryResponse is a country visited on a trip.
type CountryResponse struct {
	Name string `json:"name"`
}

// ClientNameResponse is a client registered for a trip.
type ClientNameResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ClientRequest is the body of POST /api/trips/{idTrip}/clients.
type ClientRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Pesel     string `json:"pesel"`
}
