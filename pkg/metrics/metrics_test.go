package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.ObserveSnapshot(10, 2, 3)
	r.ObserveSnapshot(5, 0, 1)
	r.ObserveReload(ReloadSuccess, 150*time.Millisecond)
	r.ObserveReload(ReloadFailure, time.Second)
	r.ObserveReload(ReloadSuccess, time.Millisecond)

	assert.Equal(t, 15.0, testutil.ToFloat64(r.recordsParsed))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.linesSkipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.snapshotMonths))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.reloads.WithLabelValues(ReloadSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reloads.WithLabelValues(ReloadFailure)))
}

func TestRecorderHandler(t *testing.T) {
	r := NewRecorder()
	r.ObserveSnapshot(3, 1, 2)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ledger_records_parsed_total 3")
	assert.Contains(t, rec.Body.String(), "ledger_lines_skipped_total 1")
}
