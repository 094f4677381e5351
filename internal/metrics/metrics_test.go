package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/rl1809/coffee-maker/internal/core/domain"
)

func TestObservePurchase(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObservePurchase("success", 50, 25)
	m.ObservePurchase("insufficient_funds", 0, 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.purchases.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.purchases.WithLabelValues("insufficient_funds")))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.revenue))
	assert.Equal(t, 28.0, testutil.ToFloat64(m.changeReturned))
}

func TestSetStock(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.SetStock(domain.Stock{Coffee: 12, Milk: 12, Sugar: 14, Chocolate: 15})

	assert.Equal(t, 12.0, testutil.ToFloat64(m.stock.WithLabelValues("coffee")))
	assert.Equal(t, 14.0, testutil.ToFloat64(m.stock.WithLabelValues("sugar")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.stock.WithLabelValues("chocolate")))
}

func TestObserveHTTPAndSales(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveHTTP("POST", "/api/purchase", 200, 10*time.Millisecond)
	m.ObserveSalePersisted(nil)
	m.ObserveSalePersisted(errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/purchase", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.salesPersisted.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.salesPersisted.WithLabelValues("error")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePurchase("success", 1, 1)
		m.SetStock(domain.Stock{})
		m.ObserveHTTP("GET", "/", 200, time.Second)
		m.ObserveSalePersisted(nil)
	})
}
