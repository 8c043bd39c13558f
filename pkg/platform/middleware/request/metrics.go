package request

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EndpointLatency *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "notarium_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint", "status"}),
	}
}

// ObserveEndpointLatency records one request. The endpoint label should be
// the route pattern, not the raw path, to keep cardinality bounded.
func (m *Metrics) ObserveEndpointLatency(method, endpoint string, status int, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(method, endpoint, strconv.Itoa(status)).Observe(durationSeconds)
}
