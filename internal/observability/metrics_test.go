package observability //nolint:testpackage // testing internal implementation.

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_CountersStartAtZero(t *testing.T) {
	t.Parallel()

	m := NewMetrics()

	assert.InDelta(t, 0, testutil.ToFloat64(m.FilesScanned), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.CacheHits), 0)

	m.FilesScanned.Inc()
	m.RecordsExtracted.Add(3)
	m.Diagnostics.WithLabelValues("malformed_import").Inc()

	assert.InDelta(t, 1, testutil.ToFloat64(m.FilesScanned), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.RecordsExtracted), 0)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	t.Parallel()

	first := NewMetrics()
	second := NewMetrics()

	first.FilesScanned.Inc()

	assert.InDelta(t, 1, testutil.ToFloat64(first.FilesScanned), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(second.FilesScanned), 0)
}

func TestMetrics_HandlerServesScrape(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.FilesScanned.Inc()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)

	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "importscout_files_scanned_total 1")
}
