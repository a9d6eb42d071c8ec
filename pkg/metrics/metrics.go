// Package metrics exposes the Prometheus metrics of tailrd.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	TailRequests *prometheus.CounterVec
	BytesServed  prometheus.Counter
	Reloads      *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
// sources is sampled on every scrape to report the number of registered sources.
func New(sources func() float64) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TailRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tailrd_tail_requests_total",
			Help: "Total number of tail requests, by unit",
		}, []string{"unit"}),
		BytesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tailrd_tail_bytes_served_total",
			Help: "Total number of bytes written to tail responses",
		}),
		Reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tailrd_reloads_total",
			Help: "Total number of source reloads, by result",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.TailRequests,
		m.BytesServed,
		m.Reloads,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "tailrd_sources",
			Help: "Number of registered sources",
		}, sources),
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveReload counts one reload attempt.
func (m *Metrics) ObserveReload(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.Reloads.WithLabelValues(result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
