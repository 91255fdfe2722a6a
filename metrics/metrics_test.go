package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordProjectEvent(t *testing.T) {
	m := New()

	m.RecordProjectEvent(EventCreated)
	m.RecordProjectEvent(EventCreated)
	m.RecordProjectEvent(EventClosed)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ProjectEvents.WithLabelValues(EventCreated)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ProjectEvents.WithLabelValues(EventClosed)))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordProjectEvent(EventDeleted)
		m.RecordOrphanBidsRemoved(3)
	})
}

func TestRecordOrphanBidsRemoved_IgnoresZero(t *testing.T) {
	m := New()
	m.RecordOrphanBidsRemoved(0)
	m.RecordOrphanBidsRemoved(4)
	assert.Equal(t, float64(4), testutil.ToFloat64(m.OrphanBidsRemoved))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.RecordProjectEvent(EventUpdated)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `devconnect_project_events_total{event="updated"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
