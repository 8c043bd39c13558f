package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ListingsSubmitted  prometheus.Counter
	VerificationToggle *prometheus.CounterVec
	VisibilityToggle   *prometheus.CounterVec
	SyntheticFallback  prometheus.Counter
	BrowseDuration     prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		ListingsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "notarium_listings_submitted_total",
			Help: "Total number of listing registrations submitted",
		}),
		VerificationToggle: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "notarium_verification_toggles_total",
			Help: "Total verification flag changes by direction",
		}, []string{"direction"}),
		VisibilityToggle: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "notarium_visibility_toggles_total",
			Help: "Total visibility flag changes by direction",
		}, []string{"direction"}),
		SyntheticFallback: promauto.NewCounter(prometheus.CounterOpts{
			Name: "notarium_synthetic_fallbacks_total",
			Help: "Times the directory served synthetic listings instead of stored records",
		}),
		BrowseDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "notarium_browse_duration_seconds",
			Help:    "Duration of directory browse queries (fetch, filter, paginate)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementListingsSubmitted() {
	m.ListingsSubmitted.Inc()
}

func (m *Metrics) IncrementVerificationToggle(verified bool) {
	m.VerificationToggle.WithLabelValues(direction(verified)).Inc()
}

func (m *Metrics) IncrementVisibilityToggle(visible bool) {
	m.VisibilityToggle.WithLabelValues(direction(visible)).Inc()
}

func (m *Metrics) IncSyntheticFallback() {
	m.SyntheticFallback.Inc()
}

func (m *Metrics) ObserveBrowse(start time.Time) {
	m.BrowseDuration.Observe(time.Since(start).Seconds())
}

func direction(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
