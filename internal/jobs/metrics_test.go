package jobmetrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecordsOutcome(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	require.NoError(t, m.Track("warranty:sweep").End(nil))
	boom := errors.New("boom")
	require.ErrorIs(t, m.Track("warranty:sweep").End(boom), boom)

	rec := httptest.NewRecorder()
	promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `scaledesk_jobs_total{job="warranty:sweep",status="success"} 1`)
	assert.Contains(t, body, `scaledesk_jobs_total{job="warranty:sweep",status="failure"} 1`)
	assert.Contains(t, body, `scaledesk_jobs_failures_total{job="warranty:sweep"} 1`)
	assert.Contains(t, body, `scaledesk_job_duration_seconds_count{job="warranty:sweep"} 2`)
}

func TestNilMetricsTracker(t *testing.T) {
	var m *Metrics
	boom := errors.New("boom")
	assert.ErrorIs(t, m.Track("x").End(boom), boom)
}
