package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	analysesTotal     *prometheus.CounterVec
	analysisDuration  prometheus.Histogram
	tradesGated       *prometheus.CounterVec
	positionsOpen     prometheus.Gauge
	cashDeployedPct   prometheus.Gauge
	scansTotal        prometheus.Counter
	scanCandidates    prometheus.Histogram
	taxReportsTotal   prometheus.Counter
	washSalesDetected prometheus.Counter
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "magnus_analyses_total",
			Help: "Total number of strategy analyses",
		},
		[]string{"strategy", "recommendation"},
	)
	r.analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "magnus_analysis_duration_seconds",
			Help:    "Strategy analysis duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
	r.tradesGated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "magnus_trades_gated_total",
			Help: "Total number of trades evaluated by the risk manager",
		},
		[]string{"strategy", "verdict"},
	)
	r.positionsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "magnus_positions_open",
			Help: "Number of open positions",
		},
	)
	r.cashDeployedPct = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "magnus_cash_deployed_pct",
			Help: "Percentage of portfolio cash committed to open positions",
		},
	)
	r.scansTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "magnus_scans_total",
			Help: "Total number of covered call scans",
		},
	)
	r.scanCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "magnus_scan_candidates",
			Help:    "Number of candidates returned per scan",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)
	r.taxReportsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "magnus_tax_reports_total",
			Help: "Total number of tax reports generated",
		},
	)
	r.washSalesDetected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "magnus_wash_sales_detected_total",
			Help: "Total number of wash sales detected in tax reports",
		},
	)

	reg.MustRegister(r.analysesTotal)
	reg.MustRegister(r.analysisDuration)
	reg.MustRegister(r.tradesGated)
	reg.MustRegister(r.positionsOpen)
	reg.MustRegister(r.cashDeployedPct)
	reg.MustRegister(r.scansTotal)
	reg.MustRegister(r.scanCandidates)
	reg.MustRegister(r.taxReportsTotal)
	reg.MustRegister(r.washSalesDetected)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordAnalysis records a completed strategy analysis.
func (r *Registry) RecordAnalysis(strategy, recommendation string, duration float64) {
	r.analysesTotal.WithLabelValues(strategy, recommendation).Inc()
	r.analysisDuration.Observe(duration)
}

// RecordTradeGate records a risk manager verdict on a proposed trade.
func (r *Registry) RecordTradeGate(strategy string, approved bool) {
	verdict := "approved"
	if !approved {
		verdict = "rejected"
	}
	r.tradesGated.WithLabelValues(strategy, verdict).Inc()
}

// SetPositionsOpen sets the open position gauge.
func (r *Registry) SetPositionsOpen(count int) {
	r.positionsOpen.Set(float64(count))
}

// SetCashDeployedPct sets the deployed-cash gauge.
func (r *Registry) SetCashDeployedPct(pct float64) {
	r.cashDeployedPct.Set(pct)
}

// RecordScan records a covered call scan and its candidate count.
func (r *Registry) RecordScan(candidates int) {
	r.scansTotal.Inc()
	r.scanCandidates.Observe(float64(candidates))
}

// RecordTaxReport records a generated tax report and any wash sales found.
func (r *Registry) RecordTaxReport(washSales int) {
	r.taxReportsTotal.Inc()
	r.washSalesDetected.Add(float64(washSales))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
