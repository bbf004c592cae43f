package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Counters(t *testing.T) {
	r := New()

	r.ObserveMatch("board", 77)
	r.NotificationResult("webhook", "sent")
	r.NotificationResult("webhook", "sent")
	r.CacheResult("jobs", true)
	r.CacheResult("jobs", false)
	r.WSConnected()
	r.WSConnected()
	r.WSDisconnected()

	assert.Equal(t, float64(2), testutil.ToFloat64(r.Notifications.WithLabelValues("webhook", "sent")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.CacheLookups.WithLabelValues("jobs", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.WSClients))
	assert.Equal(t, 1, testutil.CollectAndCount(r.MatchScores))
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.ObserveMatch("x", 10)
		r.NotificationResult("x", "y")
		r.CacheResult("x", true)
		r.WSConnected()
		r.WSDisconnected()
	})
}

func TestRegistry_Handler(t *testing.T) {
	r := New()
	r.HTTPRequests.WithLabelValues("GET", "/jobs", "200").Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `http_requests_total{method="GET",route="/jobs",status="200"} 1`))
}
