package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	reportsGeneratedTotal *prometheus.CounterVec
	reportDurationSeconds *prometheus.HistogramVec
	reportRowsTotal       *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the report API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iqac_api_requests_total",
			Help: "Total number of report API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "iqac_api_latency_seconds",
			Help:    "Latency distribution for report API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iqac_api_errors_total",
			Help: "Total number of error responses returned by report endpoints.",
		}, []string{"method", "route", "status"})

		reportsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iqac_reports_generated_total",
			Help: "Report generations by activity type, format and outcome.",
		}, []string{"activity_type", "format", "outcome"})

		reportDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "iqac_report_duration_seconds",
			Help:    "Time spent aggregating and rendering a report.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"activity_type", "format"})

		reportRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iqac_report_rows_total",
			Help: "Rows rendered into reports.",
		}, []string{"activity_type"})

		prometheus.MustRegister(
			apiRequestsTotal, apiLatencySeconds, apiErrorsTotal,
			reportsGeneratedTotal, reportDurationSeconds, reportRowsTotal,
		)
	})
}

// APIRequests exposes the counter for report API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for report API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// ReportsGenerated exposes the generation outcome counter.
func ReportsGenerated() *prometheus.CounterVec {
	RegisterMetrics()
	return reportsGeneratedTotal
}

// ReportDuration exposes the generation latency histogram.
func ReportDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return reportDurationSeconds
}

// ReportRows exposes the rendered row counter.
func ReportRows() *prometheus.CounterVec {
	RegisterMetrics()
	return reportRowsTotal
}
