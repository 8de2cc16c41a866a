package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-registry/internal/metrics"
)

func TestCollector_RecordRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.RecordRegistration("success")
	c.RecordRegistration("success")
	c.RecordRegistration("rejected")

	count, err := testutil.GatherAndCount(reg, "trip_registry_registrations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per outcome")
}

func TestCollector_RecordRemoval(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.RecordRemoval("rejected")

	count, err := testutil.GatherAndCount(reg, "trip_registry_client_removals_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCollector_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.RecordRequest(http.MethodGet, "/api/trips", http.StatusOK, 25*time.Millisecond)
	c.RecordRequest(http.MethodGet, "/api/trips", http.StatusBadRequest, 5*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "trip_registry_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "trip_registry_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)
	c.RecordRegistration("success")

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `trip_registry_registrations_total{outcome="success"} 1`)
}
