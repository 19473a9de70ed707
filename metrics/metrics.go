// Package metrics exposes the Prometheus counters of the foliar engines.
//
// A nil *Metrics is valid and records nothing, so library code can carry an
// optional collector without checks at every call site.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foliar"

// Metrics groups every counter. Build it with New.
type Metrics struct {
	// orientationsTotal counts acyclic edge orientations enumerated.
	//
	// Labels:
	//   - kind: "closed" or "ideal"
	orientationsTotal *prometheus.CounterVec

	// foliationsTotal counts orientations passing GivesFoliation.
	foliationsTotal *prometheus.CounterVec

	saturationsTotal    prometheus.Counter
	certifierNodesTotal prometheus.Counter
	contradictionsTotal prometheus.Counter
	torsionTotal        prometheus.Counter

	// retriesTotal counts search retries by the reason that caused them.
	retriesTotal *prometheus.CounterVec
}

// New registers every counter against reg. A nil reg uses a private
// registry, which keeps tests independent of the default one.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Metrics{
		orientationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orient",
			Name:      "orientations_total",
			Help:      "Acyclic edge orientations enumerated, by complex kind.",
		}, []string{"kind"}),
		foliationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orient",
			Name:      "foliations_total",
			Help:      "Edge orientations whose branched surface carries a foliation, by complex kind.",
		}, []string{"kind"}),
		saturationsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "disorder",
			Name:      "saturations_total",
			Help:      "Monoid saturations run.",
		}),
		certifierNodesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "disorder",
			Name:      "certifier_nodes_total",
			Help:      "Nodes of the sign-choice tree visited.",
		}),
		contradictionsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "disorder",
			Name:      "contradictions_total",
			Help:      "Saturations that produced the identity.",
		}),
		torsionTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "torsion",
			Name:      "computations_total",
			Help:      "Turaev torsions computed.",
		}),
		retriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "retries_total",
			Help:      "Search retries, by exhaustion reason.",
		}, []string{"reason"}),
	}
}

// Orientation records one enumerated orientation of the given kind.
func (m *Metrics) Orientation(kind string) {
	if m != nil {
		m.orientationsTotal.WithLabelValues(kind).Inc()
	}
}

// Foliation records one orientation that gives a foliation.
func (m *Metrics) Foliation(kind string) {
	if m != nil {
		m.foliationsTotal.WithLabelValues(kind).Inc()
	}
}

// Saturation records one monoid saturation.
func (m *Metrics) Saturation() {
	if m != nil {
		m.saturationsTotal.Inc()
	}
}

// CertifierNode records one visited node of the certifier search.
func (m *Metrics) CertifierNode() {
	if m != nil {
		m.certifierNodesTotal.Inc()
	}
}

// Contradiction records a saturation that reached the identity.
func (m *Metrics) Contradiction() {
	if m != nil {
		m.contradictionsTotal.Inc()
	}
}

// Torsion records one torsion computation.
func (m *Metrics) Torsion() {
	if m != nil {
		m.torsionTotal.Inc()
	}
}

// Retry records a search retry caused by reason.
func (m *Metrics) Retry(reason string) {
	if m != nil {
		m.retriesTotal.WithLabelValues(reason).Inc()
	}
}
