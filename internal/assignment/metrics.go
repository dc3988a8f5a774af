package assignment

import (
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for assignment activity.
type Metrics struct {
	assignments *prometheus.CounterVec
	poolSize    prometheus.Gauge
}

// NewMetrics registers assignment collectors with reg, reusing collectors that
// are already registered under the same names.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	assignments := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assessment",
			Name:      "assignments_total",
			Help:      "Participants assigned to a taxonomy, by taxonomy and phase.",
		},
		[]string{"taxonomy", "phase"},
	)
	poolSize := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "assessment",
			Name:      "assignment_pool_size",
			Help:      "Size of the candidate pool at the most recent assignment.",
		},
	)

	if err := reg.Register(assignments); err != nil {
		already, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		assignments = already.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(poolSize); err != nil {
		already, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		poolSize = already.ExistingCollector.(prometheus.Gauge)
	}

	return &Metrics{assignments: assignments, poolSize: poolSize}, nil
}

func (m *Metrics) observe(taxonomy types.Taxonomy, phase Phase, pool int) {
	if m == nil {
		return
	}
	m.assignments.WithLabelValues(string(taxonomy), string(phase)).Inc()
	m.poolSize.Set(float64(pool))
}
