package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCredential(t *testing.T) {
	m := NewMetrics()

	m.RecordCredential(OutcomeRejected, "expired")
	m.RecordCredential(OutcomeRejected, "expired")
	m.RecordCredential(OutcomeIssued, "")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.credentials.WithLabelValues(OutcomeRejected, "expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.credentials.WithLabelValues(OutcomeIssued, "")))
}

func TestRecordRequestAndError(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/health/live", http.MethodGet, 200, 5*time.Millisecond)
	m.RecordError("/player/growid/validate/checktoken", http.MethodPost, "INVALID_OR_EXPIRED_CREDENTIAL")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/health/live", http.MethodGet, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("/player/growid/validate/checktoken", http.MethodPost, "INVALID_OR_EXPIRED_CREDENTIAL")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", http.MethodGet, 200, time.Millisecond)
		m.RecordError("/", http.MethodGet, "X")
		m.RecordCredential(OutcomeIssued, "")
	})
}

func TestHandlerServesRegistry(t *testing.T) {
	m := NewMetrics()
	m.RecordCredential(OutcomeReissued, "")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `growid_credentials_total{outcome="reissued",reason=""} 1`)
}
