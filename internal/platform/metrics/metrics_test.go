package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.SaleCommitted("cash", "atomic", 20*time.Millisecond)
	m.SaleCommitted("cash", "atomic", 10*time.Millisecond)
	m.CommitFailed("no_open_session")
	m.StockFlagged("low", 2)
	m.StockFlagged("negative", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.salesCommitted.WithLabelValues("cash", "atomic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commitFailures.WithLabelValues("no_open_session")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.stockFlags.WithLabelValues("low")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.stockFlags.WithLabelValues("negative")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SaleCommitted("card", "parallel", time.Second)
		m.CommitFailed("x")
		m.TxRetried()
		m.VoidTransition("approved")
		m.SessionEvent("opened")
		m.WeatherLookup("timeout")
		m.PublishFailed("sale.committed")
		m.ObserveHTTP("GET", "/health", "200", time.Millisecond)
	})
}
