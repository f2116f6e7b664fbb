package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "blog",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blog",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "blog",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	triggerInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blog",
			Subsystem: "identity",
			Name:      "trigger_invocations_total",
			Help:      "Post-confirmation trigger invocations by source and outcome.",
		},
		[]string{"source", "outcome"},
	)

	authFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blog",
			Subsystem: "identity",
			Name:      "signin_failures_total",
			Help:      "Rejected sign-in attempts by reason.",
		},
		[]string{"reason"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		triggerInvocations,
		authFailures,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func InFlightInc() { httpInFlight.Inc() }
func InFlightDec() { httpInFlight.Dec() }

// ObserveHTTP records one finished request. route is the matched pattern, not the raw path.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveTrigger records the outcome of a post-confirmation trigger ("added", "skipped", "failed").
func ObserveTrigger(source, outcome string) {
	triggerInvocations.WithLabelValues(source, outcome).Inc()
}

// ObserveSignInFailure records a rejected sign-in ("invalid_credentials", "not_confirmed", "locked").
func ObserveSignInFailure(reason string) {
	authFailures.WithLabelValues(reason).Inc()
}
