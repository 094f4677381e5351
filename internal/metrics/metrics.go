package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rl1809/coffee-maker/internal/core/domain"
)

const namespace = "coffeemaker"

// Metrics groups the collectors of one machine. A nil *Metrics records nothing.
type Metrics struct {
	purchases      *prometheus.CounterVec
	revenue        prometheus.Counter
	changeReturned prometheus.Counter
	stock          *prometheus.GaugeVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	salesPersisted *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		purchases: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "purchases_total",
				Help:      "Purchase attempts by outcome",
			},
			[]string{"outcome"},
		),
		revenue: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_total",
			Help:      "Sum of prices of successful purchases",
		}),
		changeReturned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_returned_total",
			Help:      "Sum of change handed back, including refunds of failed purchases",
		}),
		stock: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "inventory_units",
				Help:      "Current ingredient stock",
			},
			[]string{"ingredient"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		salesPersisted: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sales_persisted_total",
				Help:      "Sales written to the ledger by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) ObservePurchase(outcome string, price, change int) {
	if m == nil {
		return
	}
	m.purchases.WithLabelValues(outcome).Inc()
	m.revenue.Add(float64(price))
	m.changeReturned.Add(float64(change))
}

func (m *Metrics) SetStock(s domain.Stock) {
	if m == nil {
		return
	}
	for _, i := range domain.Ingredients {
		m.stock.WithLabelValues(i.String()).Set(float64(s.Get(i)))
	}
}

func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveSalePersisted(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.salesPersisted.WithLabelValues(result).Inc()
}
