// Package metrics defines the Prometheus collectors of the dashboard.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream fetch outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeBreakerOpen = "breaker_open"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_http_request_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_upstream_requests_total",
		Help: "Candle fetches against upstream sources by outcome.",
	}, []string{"source", "outcome"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_upstream_request_seconds",
		Help:    "Upstream candle fetch latency, retries included.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"source"})

	upstreamRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_upstream_retries_total",
		Help: "Retried upstream fetches.",
	}, []string{"source"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_cache_lookups_total",
		Help: "Candle cache lookups by namespace and result.",
	}, []string{"namespace", "result"})
)

// ObserveHTTP records one served request.
func ObserveHTTP(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveUpstream records one upstream fetch.
func ObserveUpstream(source, outcome string, d time.Duration) {
	upstreamRequests.WithLabelValues(source, outcome).Inc()
	upstreamDuration.WithLabelValues(source).Observe(d.Seconds())
}

// UpstreamRetry counts a retry against source.
func UpstreamRetry(source string) {
	upstreamRetries.WithLabelValues(source).Inc()
}

func CacheHit(namespace string)  { cacheLookups.WithLabelValues(namespace, "hit").Inc() }
func CacheMiss(namespace string) { cacheLookups.WithLabelValues(namespace, "miss").Inc() }

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
