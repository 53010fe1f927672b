package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rechargehub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rechargehub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rechargehub",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Auth metrics
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rechargehub",
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Total number of login and signup attempts",
		},
		[]string{"mode", "status"},
	)

	// Checkout metrics
	checkoutGateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rechargehub",
			Subsystem: "checkout",
			Name:      "gate_total",
			Help:      "Checkout gate decisions by outcome",
		},
		[]string{"outcome"},
	)

	rechargesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rechargehub",
			Subsystem: "checkout",
			Name:      "recharges_total",
			Help:      "Total number of payment attempts",
		},
		[]string{"status"},
	)

	// Upstream API metrics
	backendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rechargehub",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Duration of requests to the recharge API in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "status"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Get route pattern from chi
		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAuthAttempt records a login or signup attempt
func RecordAuthAttempt(mode, status string) {
	authAttemptsTotal.WithLabelValues(mode, status).Inc()
}

// RecordGateOutcome records a checkout gate decision
func RecordGateOutcome(outcome string) {
	checkoutGateTotal.WithLabelValues(outcome).Inc()
}

// RecordRecharge records a payment attempt result
func RecordRecharge(status string) {
	rechargesTotal.WithLabelValues(status).Inc()
}

// RecordBackendRequest records a request to the recharge API
func RecordBackendRequest(operation, status string, duration time.Duration) {
	backendRequestDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// BackendTransport is an http.RoundTripper that times every request to
// the recharge API. Operations are labelled by method and top-level
// path segment so plan and recharge ids stay out of the label set.
type BackendTransport struct {
	Base http.RoundTripper
}

func (t *BackendTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	RecordBackendRequest(backendOperation(req), status, time.Since(start))

	return resp, err
}

func backendOperation(req *http.Request) string {
	path := req.URL.Path
	if len(path) > 1 {
		if i := strings.Index(path[1:], "/"); i >= 0 {
			path = path[:i+1]
		}
	}
	return req.Method + " " + path
}
