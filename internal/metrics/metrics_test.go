package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jwtpizza/pizza-service/internal/metrics"
)

func metricValue(t *testing.T, report []metrics.Metric, name string) float64 {
	t.Helper()
	for _, m := range report {
		if m.Name == name {
			return m.Value
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestCollectorCounters(t *testing.T) {
	c := metrics.NewCollector()

	c.TrackRequest("GET", 10*time.Millisecond)
	c.TrackRequest("GET", 30*time.Millisecond)
	c.TrackRequest("POST", 20*time.Millisecond)
	c.TrackAuthAttempt(true)
	c.TrackAuthAttempt(false)
	c.TrackAuthAttempt(false)
	c.TrackActiveUser(1)
	c.TrackActiveUser(2)
	c.TrackActiveUser(1)
	c.TrackPizzaPurchase(true, 100*time.Millisecond, 0.05)
	c.TrackPizzaPurchase(false, 200*time.Millisecond, 0.01)

	report := c.Snapshot()
	require.Equal(t, float64(3), metricValue(t, report, "http_requests_total"))
	require.Equal(t, float64(2), metricValue(t, report, "http_requests_get"))
	require.Equal(t, float64(1), metricValue(t, report, "http_requests_post"))
	require.Equal(t, float64(1), metricValue(t, report, "auth_success"))
	require.Equal(t, float64(2), metricValue(t, report, "auth_failure"))
	require.Equal(t, float64(2), metricValue(t, report, "active_users"))
	require.Equal(t, float64(1), metricValue(t, report, "pizza_sold"))
	require.Equal(t, float64(1), metricValue(t, report, "pizza_failures"))
	require.InDelta(t, 0.05, metricValue(t, report, "pizza_revenue"), 1e-9)
	require.InDelta(t, 20, metricValue(t, report, "service_latency_avg"), 1e-9)
	require.InDelta(t, 150, metricValue(t, report, "pizza_creation_latency_avg"), 1e-9)
}

func TestActiveUserWindowPrunesStaleUsers(t *testing.T) {
	now := time.Date(2024, 5, 18, 12, 0, 0, 0, time.UTC)
	c := metrics.NewCollector(metrics.WithNowTime(func() time.Time { return now }))

	c.TrackActiveUser(1)
	require.Equal(t, 1, c.ActiveUserCount())

	now = now.Add(5 * time.Minute)
	c.TrackActiveUser(2)
	require.Equal(t, 2, c.ActiveUserCount())

	// user 1 falls out of the ten-minute window, user 2 stays
	now = now.Add(6 * time.Minute)
	require.Equal(t, 1, c.ActiveUserCount())
}
