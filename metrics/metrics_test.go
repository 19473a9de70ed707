package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/foliar/metrics"
)

func TestMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Orientation("closed")
	m.Orientation("closed")
	m.Foliation("ideal")
	m.Saturation()
	m.CertifierNode()
	m.Contradiction()
	m.Torsion()
	m.Retry("ball_too_small")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 7)
	for _, mf := range mfs {
		if mf.GetName() == "foliar_orient_orientations_total" {
			assert.Equal(t, 2.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.Orientation("closed")
		m.Foliation("closed")
		m.Saturation()
		m.CertifierNode()
		m.Contradiction()
		m.Torsion()
		m.Retry("x")
	})
}

func TestMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	assert.Panics(t, func() { metrics.New(reg) })
}
