// Package metrics tracks service activity counters and pushes them
// periodically to a Grafana-compatible HTTP sink.
package metrics

import (
	"strings"
	"sync"
	"time"
)

const activeUserWindow = 10 * time.Minute

// Metric is a single named measurement in a report.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Type  string  `json:"type"` // counter or gauge
}

// Collector accumulates request, auth, and order metrics. All methods are
// safe for concurrent use.
type Collector struct {
	mu sync.Mutex

	httpTotal    int
	httpByMethod map[string]int

	authSuccess int
	authFailure int

	activeUsers map[int]time.Time

	pizzasSold    int
	pizzaFailures int
	revenue       float64

	serviceLatencyTotal time.Duration
	serviceLatencyCount int
	pizzaLatencyTotal   time.Duration
	pizzaLatencyCount   int

	nowTime func() time.Time
}

// CollectorOption defines a function type to modify the Collector instance.
type CollectorOption func(*Collector)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CollectorOption {
	return func(c *Collector) {
		c.nowTime = nowFunc
	}
}

func NewCollector(options ...CollectorOption) *Collector {
	c := &Collector{
		httpByMethod: make(map[string]int),
		activeUsers:  make(map[int]time.Time),
		nowTime:      time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// TrackRequest records one handled HTTP request and its latency.
func (c *Collector) TrackRequest(method string, latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.httpTotal++
	c.httpByMethod[strings.ToLower(method)]++
	c.serviceLatencyTotal += latency
	c.serviceLatencyCount++
}

// TrackAuthAttempt records the outcome of a login attempt.
func (c *Collector) TrackAuthAttempt(success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if success {
		c.authSuccess++
	} else {
		c.authFailure++
	}
}

// TrackActiveUser marks a user as active now.
func (c *Collector) TrackActiveUser(userID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeUsers[userID] = c.nowTime()
}

// TrackPizzaPurchase records a fulfillment attempt, its latency, and the
// revenue on success.
func (c *Collector) TrackPizzaPurchase(success bool, latency time.Duration, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if success {
		c.pizzasSold++
		c.revenue += price
	} else {
		c.pizzaFailures++
	}
	c.pizzaLatencyTotal += latency
	c.pizzaLatencyCount++
}

// ActiveUserCount returns the number of users active within the window,
// pruning stale entries.
func (c *Collector) ActiveUserCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := c.nowTime().Add(-activeUserWindow)
	for id, seen := range c.activeUsers {
		if seen.Before(cutoff) {
			delete(c.activeUsers, id)
		}
	}
	return len(c.activeUsers)
}

// Snapshot produces the current report.
func (c *Collector) Snapshot() []Metric {
	active := c.ActiveUserCount()

	c.mu.Lock()
	defer c.mu.Unlock()

	avg := func(total time.Duration, count int) float64 {
		if count == 0 {
			return 0
		}
		return float64(total.Milliseconds()) / float64(count)
	}

	metrics := []Metric{
		{Name: "http_requests_total", Value: float64(c.httpTotal), Type: "counter"},
		{Name: "http_requests_get", Value: float64(c.httpByMethod["get"]), Type: "counter"},
		{Name: "http_requests_post", Value: float64(c.httpByMethod["post"]), Type: "counter"},
		{Name: "http_requests_put", Value: float64(c.httpByMethod["put"]), Type: "counter"},
		{Name: "http_requests_delete", Value: float64(c.httpByMethod["delete"]), Type: "counter"},
		{Name: "auth_success", Value: float64(c.authSuccess), Type: "counter"},
		{Name: "auth_failure", Value: float64(c.authFailure), Type: "counter"},
		{Name: "active_users", Value: float64(active), Type: "gauge"},
		{Name: "pizza_sold", Value: float64(c.pizzasSold), Type: "counter"},
		{Name: "pizza_failures", Value: float64(c.pizzaFailures), Type: "counter"},
		{Name: "pizza_revenue", Value: c.revenue, Type: "counter"},
		{Name: "service_latency_avg", Value: avg(c.serviceLatencyTotal, c.serviceLatencyCount), Type: "gauge"},
		{Name: "pizza_creation_latency_avg", Value: avg(c.pizzaLatencyTotal, c.pizzaLatencyCount), Type: "gauge"},
	}
	return metrics
}
