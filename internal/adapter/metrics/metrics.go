// Package metrics exposes registry and HTTP metrics for Prometheus.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"nft-lending-backend/internal/domain/loan"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nft_lending"

type Metrics struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	opLatency  *prometheus.HistogramVec
	requests   *prometheus.CounterVec
	reqLatency *prometheus.HistogramVec
	relayed    prometheus.Counter
	liquidated prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "operations_total",
			Help:      "Loan registry operations by outcome code.",
		}, []string{"op", "result"}),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "operation_duration_seconds",
			Help:      "Loan registry operation latency, including the transaction.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		reqLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		relayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "relay",
			Name:      "events_published_total",
			Help:      "Loan events published to Kafka.",
		}),
		liquidated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "keeper",
			Name:      "liquidations_total",
			Help:      "Loans liquidated by the expiry keeper.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.operations, m.opLatency, m.requests, m.reqLatency, m.relayed, m.liquidated,
	)
	return m
}

// Observe records one registry operation. result is "ok", the registry
// error code, or "error" for anything else.
func (m *Metrics) Observe(op string, err error, took time.Duration) {
	m.operations.WithLabelValues(op, result(err)).Inc()
	m.opLatency.WithLabelValues(op).Observe(took.Seconds())
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	var le *loan.Error
	if errors.As(err, &le) {
		return le.Code
	}
	return "error"
}

func (m *Metrics) EventsPublished(n int) { m.relayed.Add(float64(n)) }

func (m *Metrics) Liquidated(n int) { m.liquidated.Add(float64(n)) }

// Middleware counts requests by route template, not raw path.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.requests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.reqLatency.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
