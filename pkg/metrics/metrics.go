// Package metrics holds the Prometheus collectors for report traffic and
// advisory outcomes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg      *prometheus.Registry
	reports  *prometheus.CounterVec
	advisory *prometheus.CounterVec
	duration prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agroscore_reports_total",
			Help: "Reports produced, by source.",
		}, []string{"source"}),
		advisory: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agroscore_advisory_total",
			Help: "Advisory gateway calls, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "agroscore_report_duration_seconds",
			Help:    "Time to compute a report, advisory wait included.",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5, 10},
		}),
	}
	m.reg.MustRegister(m.reports, m.advisory, m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

// The methods below accept a nil receiver so services can run without metrics.

func (m *Metrics) Report(source string, took time.Duration) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(source).Inc()
	m.duration.Observe(took.Seconds())
}

func (m *Metrics) Advisory(outcome string) {
	if m == nil {
		return
	}
	m.advisory.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }
