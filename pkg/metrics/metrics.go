// Package metrics exposes prometheus instruments for the conversion API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/codeGROOVE-dev/tzplan/pkg/planner"
)

// Metrics holds the API's instruments.
type Metrics struct {
	Conversions       prometheus.Counter
	RowsConverted     prometheus.Counter
	InvalidZones      *prometheus.CounterVec
	DegradedInputs    *prometheus.CounterVec
	ResponseCacheHits prometheus.Counter
	RateLimited       prometheus.Counter
	Requests          *prometheus.CounterVec
	Duration          prometheus.Histogram
}

// New registers the instruments with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Conversions: f.NewCounter(prometheus.CounterOpts{
			Name: "tzplan_conversions_total",
			Help: "Total number of scenarios converted",
		}),
		RowsConverted: f.NewCounter(prometheus.CounterOpts{
			Name: "tzplan_rows_converted_total",
			Help: "Total number of target zone rows produced",
		}),
		InvalidZones: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tzplan_invalid_zones_total",
			Help: "Zone identifiers that degraded to UTC",
		}, []string{"role"}),
		DegradedInputs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tzplan_degraded_inputs_total",
			Help: "Scenario inputs replaced by a default",
		}, []string{"input"}),
		ResponseCacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "tzplan_response_cache_hits_total",
			Help: "Conversions answered from the response cache",
		}),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "tzplan_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		}),
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tzplan_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tzplan_conversion_duration_seconds",
			Help:    "Time spent converting one scenario",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
	}
}

// ObserveResult records one conversion.
func (m *Metrics) ObserveResult(res planner.Result, took time.Duration) {
	m.Conversions.Inc()
	m.RowsConverted.Add(float64(len(res.Rows)))
	m.Duration.Observe(took.Seconds())

	if res.BaseInvalid {
		m.InvalidZones.WithLabelValues("base").Inc()
	}
	for i := range res.Rows {
		if res.Rows[i].Invalid {
			m.InvalidZones.WithLabelValues("target").Inc()
		}
	}
	if res.StartMalformed {
		m.DegradedInputs.WithLabelValues("start").Inc()
	}
	if res.WindowMalformed {
		m.DegradedInputs.WithLabelValues("work_window").Inc()
	}
	if res.Fold != "" {
		m.DegradedInputs.WithLabelValues("fold_" + res.Fold).Inc()
	}
}
