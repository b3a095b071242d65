package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmdmdm-nz/usbnetd/internal/nwapi"
)

// Metrics counts module invocations made through the API. Each Service owns
// its registry so several services can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	LinkUps  *prometheus.CounterVec
	Searches prometheus.Counter
	Reports  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		LinkUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "usbnetd_link_up_total",
			Help: "Link-up requests, labeled by the status reported by the module.",
		}, []string{"status"}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "usbnetd_searches_total",
			Help: "Searches started.",
		}),
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "usbnetd_search_reports_total",
			Help: "Search reports received from the module, labeled by status.",
		}, []string{"status"}),
	}
	reg.MustRegister(m.LinkUps, m.Searches, m.Reports)
	return m
}

func (m *Metrics) observeLinkUp(status nwapi.Status) {
	m.LinkUps.WithLabelValues(status.String()).Inc()
}

func (m *Metrics) observeReport(status nwapi.SearchStatus) {
	m.Reports.WithLabelValues(status.String()).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
