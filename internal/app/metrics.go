package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transport labels.
const (
	transportHTTP = "http"
	transportWS   = "ws"
)

// Result labels.
const (
	resultValid   = "valid"
	resultInvalid = "invalid"
	resultError   = "error"
	resultLimited = "rate_limited"
)

// Metrics counts validation outcomes.
type Metrics struct {
	validations *prometheus.CounterVec
	wsConns     prometheus.Gauge
}

// NewMetrics registers the validation collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "monitorshape",
			Name:      "validations_total",
			Help:      "Monitor record validations by transport and result.",
		}, []string{"transport", "result"}),
		wsConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "monitorshape",
			Name:      "websocket_connections",
			Help:      "Open websocket validation connections.",
		}),
	}
	for _, c := range []prometheus.Collector{m.validations, m.wsConns} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// observe records one validation outcome.
func (m *Metrics) observe(transport, result string) {
	m.validations.WithLabelValues(transport, result).Inc()
}

// metricsHandler exposes the app registry.
func (a *App) metricsHandler() http.Handler {
	return promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})
}
