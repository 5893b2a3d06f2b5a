package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var WebFastBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1,
	0.25, 0.5, 1, 2.5, 5, 10,
}

type HTTPMetrics struct {
	reqs *prometheus.CounterVec
	dur  *prometheus.HistogramVec
	infl prometheus.Gauge

	pathLabeler func(*http.Request) string
}

type httpConfig struct {
	buckets     []float64
	pathLabeler func(*http.Request) string
}

type HTTPOption func(*httpConfig)

func WithBuckets(b []float64) HTTPOption {
	return func(c *httpConfig) { c.buckets = b }
}

func WithPathLabeler(fn func(*http.Request) string) HTTPOption {
	return func(c *httpConfig) { c.pathLabeler = fn }
}

func NewHTTPMetrics(reg *prometheus.Registry, namespace, service string, opts ...HTTPOption) *HTTPMetrics {
	cfg := &httpConfig{
		buckets:     prometheus.DefBuckets,
		pathLabeler: sanitizePathLabel,
	}
	for _, o := range opts {
		o(cfg)
	}

	h := &HTTPMetrics{
		reqs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "code"}),
		dur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   cfg.buckets,
		}, []string{"method", "path", "code"}),
		infl: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		pathLabeler: cfg.pathLabeler,
	}

	reg.MustRegister(h.reqs, h.dur, h.infl)
	return h
}

func (h *HTTPMetrics) observe(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	h.reqs.WithLabelValues(method, path, code).Inc()
	h.dur.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// sanitizePathLabel collapses record names in REST paths so the label
// cardinality stays bounded: /v1/contacts/John Doe -> /v1/contacts/:name.
func sanitizePathLabel(r *http.Request) string {
	p := r.URL.Path
	if p == "" || p == "/" {
		return "/"
	}
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i := range parts {
		if i > 0 && parts[i-1] == "contacts" {
			parts[i] = ":name"
		}
	}
	return "/" + strings.Join(parts, "/")
}
