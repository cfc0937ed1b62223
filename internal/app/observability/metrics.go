package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	QuotesGenerated *prometheus.CounterVec
	QuoteFailures   *prometheus.CounterVec
	LeadsReceived   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coalo_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coalo_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		QuotesGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coalo_quotes_generated_total",
				Help: "Quotes issued, by tier and billing cadence",
			},
			[]string{"tier", "cadence"},
		),
		QuoteFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coalo_quote_failures_total",
				Help: "Quote generation failures, by stage",
			},
			[]string{"stage"},
		),
		LeadsReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coalo_contact_leads_total",
				Help: "Contact form submissions accepted, by preferred contact method",
			},
			[]string{"preferred_contact"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.QuotesGenerated,
		m.QuoteFailures,
		m.LeadsReceived,
	)
	return m
}

func (m *Metrics) QuoteGenerated(tier, cadence string) {
	m.QuotesGenerated.WithLabelValues(tier, cadence).Inc()
}

func (m *Metrics) QuoteFailed(stage string) {
	m.QuoteFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) LeadReceived(preferred string) {
	m.LeadsReceived.WithLabelValues(preferred).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by chi route pattern,
// so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
