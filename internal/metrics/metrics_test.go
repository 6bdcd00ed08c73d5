package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Exposition(t *testing.T) {
	m := New()
	m.Submission("redirect")
	m.Submission("invalid")
	m.HashFetch(true, 20*time.Millisecond)
	m.SessionsActive(3)
	m.Request(http.MethodPost, "/checkout", http.StatusUnprocessableEntity, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)
	assert.Contains(t, out, `checkout_submissions_total{outcome="redirect"} 1`)
	assert.Contains(t, out, `checkout_submissions_total{outcome="invalid"} 1`)
	assert.Contains(t, out, `checkout_sessions_active 3`)
	assert.Contains(t, out, `http_requests_total{method="POST",path="/checkout",status="4xx"} 1`)
	assert.Contains(t, out, `checkout_hash_fetch_duration_seconds_count{result="ok"} 1`)
}
