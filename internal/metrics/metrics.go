// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the service metrics, registered on one registry.
type Collector struct {
	rowsIngested  prometheus.Counter
	rowsRejected  prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpLatency   prometheus.Histogram
	deleteMatches *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		rowsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "results_rows_ingested_total",
			Help: "Result rows successfully reconciled into the store.",
		}),
		rowsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "results_rows_rejected_total",
			Help: "Result rows rejected by per-row validation.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "results_http_requests_total",
			Help: "HTTP responses by status code and method.",
		}, []string{"status", "method"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "results_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		deleteMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "results_smart_delete_total",
			Help: "Smart-delete outcomes by match kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		c.rowsIngested,
		c.rowsRejected,
		c.httpRequests,
		c.httpLatency,
		c.deleteMatches,
	)

	return c
}

// RecordRowIngested counts one reconciled row.
func (c *Collector) RecordRowIngested() {
	c.rowsIngested.Inc()
}

// RecordRowRejected counts one rejected row.
func (c *Collector) RecordRowRejected() {
	c.rowsRejected.Inc()
}

// RecordHTTPRequest counts one finished HTTP request.
func (c *Collector) RecordHTTPRequest(status int, method string, latency time.Duration) {
	c.httpRequests.WithLabelValues(strconv.Itoa(status), method).Inc()
	c.httpLatency.Observe(latency.Seconds())
}

// RecordSmartDelete counts one smart-delete outcome.
func (c *Collector) RecordSmartDelete(kind string) {
	c.deleteMatches.WithLabelValues(kind).Inc()
}
