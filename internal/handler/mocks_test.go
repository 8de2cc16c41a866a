package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-registry/internal/domain"
	"github.com/pkordes/trip-registry/internal/handler"
)

// mockTripServicer is a test double for handler.TripServicer.
type mockTripServicer struct {
	listTrips func(ctx context.Context, p domain.PaginationParams) (domain.TripPage, error)
}

func (m *mockTripServicer) ListTrips(ctx context.Context, p domain.PaginationParams) (domain.TripPage, error) {
	return m.listTrips(ctx, p)
}

// mockClientServicer is a test double for handler.ClientServicer.
// Set only the method fields your test needs.
type mockClientServicer struct {
	removeClient   func(ctx context.Context, clientID int) error
	registerClient func(ctx context.Context, tripID int, client domain.Client, paymentDate *time.Time) error
}

func (m *mockClientServicer) RemoveClient(ctx context.Context, clientID int) error {
	return m.removeClient(ctx, clientID)
}
func (m *mockClientServicer) RegisterClient(ctx context.Context, tripID int, c domain.Client, paymentDate *time.Time) error {
	return m.registerClient(ctx, tripID, c, paymentDate)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer   = (*mockTripServicer)(nil)
	_ handler.ClientServicer = (*mockClientServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into its chi router.
// This mirrors how the serve command wires it in production.
func newHTTPHandler(trips handler.TripServicer, clients handler.ClientServicer) http.Handler {
	return handler.NewServer(trips, clients, nil).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeMessage(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var resp handler.MessageResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Message
}
