package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors the dashboard exports.
type Metrics struct {
	registry *prometheus.Registry

	Loads         *prometheus.CounterVec
	LoadDuration  prometheus.Histogram
	DatasetRows   prometheus.Gauge
	Summaries     *prometheus.CounterVec
	FilteredRows  prometheus.Histogram
	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
}

// New registers every collector on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "footfall",
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by result.",
		}, []string{"result"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "footfall",
			Name:      "dataset_load_duration_seconds",
			Help:      "Time spent fetching and parsing the dataset.",
			Buckets:   prometheus.DefBuckets,
		}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "footfall",
			Name:      "dataset_rows",
			Help:      "Rows in the currently loaded dataset.",
		}),
		Summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "footfall",
			Name:      "summaries_total",
			Help:      "Summaries computed, by age column.",
		}, []string{"age"}),
		FilteredRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "footfall",
			Name:      "summary_filtered_rows",
			Help:      "Rows left after filtering, per summary.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "footfall",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "footfall",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.Loads, m.LoadDuration, m.DatasetRows,
		m.Summaries, m.FilteredRows,
		m.HTTPRequests, m.HTTPDurations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry for tests and custom gatherers.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveLoad records one dataset load.
func (m *Metrics) ObserveLoad(elapsed time.Duration, rows int, err error) {
	m.LoadDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.Loads.WithLabelValues("error").Inc()
		m.DatasetRows.Set(0)
		return
	}
	m.Loads.WithLabelValues("ok").Inc()
	m.DatasetRows.Set(float64(rows))
}

// ObserveSummary records one computed summary.
func (m *Metrics) ObserveSummary(age string, filtered int) {
	m.Summaries.WithLabelValues(age).Inc()
	m.FilteredRows.Observe(float64(filtered))
}

// Middleware counts requests per registered route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok && !c.Response().Committed {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.HTTPRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.HTTPDurations.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
