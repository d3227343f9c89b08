package node

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Metrics instruments node RPC calls.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the node RPC metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "node_rpc_requests_total",
				Help: "The total number of node RPC calls by method and outcome",
			},
			[]string{"method", "status"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "node_rpc_duration_seconds",
				Help:    "Latency in seconds of node RPC calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

func (m *Metrics) observe(method string, started time.Time, err error) {
	if m == nil {
		return
	}

	status := statusOK
	if err != nil {
		status = statusError
	}

	m.Requests.WithLabelValues(method, status).Inc()
	m.Duration.WithLabelValues(method).Observe(time.Since(started).Seconds())
}
