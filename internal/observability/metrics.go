// Package observability holds the Prometheus metrics for the string analyzer.
package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/divah21/stage-one-backend/internal/model"
)

const namespace = "string_analyzer"

// StatsFunc reports the live store summary for the store gauges.
type StatsFunc func(ctx context.Context) (*model.Stats, error)

// Metrics groups the collectors registered on one private registry.
type Metrics struct {
	registry *prometheus.Registry

	// requests counts HTTP requests.
	// Labels: method, route (gin full path, "unmatched" for 404s), status
	requests *prometheus.CounterVec

	// requestDuration measures HTTP handling latency.
	// Labels: method, route
	requestDuration *prometheus.HistogramVec

	// stringsCreated counts successful analyses stored.
	stringsCreated prometheus.Counter

	// errorsTotal counts failed requests by error kind.
	// Labels: code
	errorsTotal *prometheus.CounterVec
}

// New registers the collectors on a fresh registry. When stats is non-nil
// the store size and palindrome count are exported as gauges evaluated at
// scrape time.
func New(stats StatsFunc) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route"}),
		stringsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "strings_created_total",
			Help:      "Total strings analyzed and stored",
		}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "Total failed requests by error code",
		}, []string{"code"}),
	}

	if stats != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "strings",
			Help:      "Strings currently stored",
		}, func() float64 {
			st := scrapeStats(stats)
			return float64(st.TotalStrings)
		})
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "palindromes",
			Help:      "Palindromes currently stored",
		}, func() float64 {
			st := scrapeStats(stats)
			return float64(st.Palindromes)
		})
	}

	return m
}

func scrapeStats(stats StatsFunc) model.Stats {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	st, err := stats(ctx)
	if err != nil || st == nil {
		return model.Stats{}
	}
	return *st
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// StringCreated counts one stored analysis.
func (m *Metrics) StringCreated() {
	if m == nil {
		return
	}
	m.stringsCreated.Inc()
}

// Error counts one failed request by error kind code.
func (m *Metrics) Error(code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(code).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
