package domain

import "time"

// Client is a person who registers for trips.
// Pesel is the national identification number and acts as the natural key:
// it never changes once the client exists.
type Client struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Telephone string
	Pesel     string
}

// ClientTrip records one client's registration for one trip.
// PaymentDate is nil until the client has paid.
type ClientTrip struct {
	ClientID     int
	TripID       int
	RegisteredAt time.Time
	PaymentDate  *time.Time
}
