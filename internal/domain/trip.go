// Package domain contains the core data types for the trip registry.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Trip is an organised trip clients can register for.
// Trips and their countries are maintained outside this service.
type Trip struct {
	ID          int
	Name        string
	Description string
	MaxPeople   int

	// DateFrom and DateTo are calendar values with their wall clock in UTC.
	DateFrom time.Time
	DateTo   time.Time

	// Countries and Clients are only populated by listing queries.
	Countries []Country
	Clients   []ClientName
}

// Country is a destination visited on a trip.
type Country struct {
	ID   int
	Name string
}

// ClientName is the part of a registered client exposed in trip listings.
type ClientName struct {
	FirstName string
	LastName  string
}

// TripPage is one window of the trip listing plus the metadata needed to
// render pagination controls.
type TripPage struct {
	Page       int
	PageSize   int
	TotalPages int
	Trips      []Trip
}

// HasStarted reports whether the trip's start date is before now.
// A trip that has started but not ended still counts as started.
func (t Trip) HasStarted(now time.Time) bool {
	return t.DateFrom.Before(now)
}
