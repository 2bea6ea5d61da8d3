package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSpin(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSpin(false, 100, 250, 2, false)
	m.ObserveSpin(true, 0, 40, 1, true)
	m.ObserveBonusPurchase()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.spins.WithLabelValues(KindPaid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.spins.WithLabelValues(KindFree)))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.bet))
	assert.Equal(t, 250.0, testutil.ToFloat64(m.win.WithLabelValues(KindPaid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bonusTriggers))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bonusPurchases))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSpin(false, 1, 1, 1, true)
		m.ObserveBonusPurchase()
		m.ObserveCascadeLimit()
	})
}
