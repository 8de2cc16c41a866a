// Package handler implements the HTTP handlers for the trip registry API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, client.go) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-registry/internal/domain"
	"github.com/pkordes/trip-registry/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	ListTrips(ctx context.Context, p domain.PaginationParams) (domain.TripPage, error)
}

// ClientServicer defines the client removal and registration operations.
type ClientServicer interface {
	RemoveClient(ctx context.Context, clientID int) error
	RegisterClient(ctx context.Context, tripID int, client domain.Client, paymentDate *time.Time) error
}

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server holds the dependencies of every API endpoint.
type Server struct {
	trips   TripServicer
	clients ClientServicer
	db      Pinger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, clients ClientServicer, db Pinger) *Server {
	return &Server{trips: trips, clients: clients, db: db}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}

// Routes returns a chi router with every endpoint registered.
// Cross-cutting middleware is applied by the caller in cmd/api; apiMiddleware
// wraps only the /api routes (e.g. the rate limiter), leaving probes untouched.
func (s *Server) Routes(apiMiddleware ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/readyz", s.GetReady)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/api/trips", func(r chi.Router) {
		r.Use(apiMiddleware...)
		r.Get("/", s.ListTrips)
		r.Delete("/{idClient}", s.DeleteClient)
		r.Post("/{idTrip}/clients", s.AddClientToTrip)
	})

	return r
}

// serveOpenAPI serves the embedded API description.
func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
