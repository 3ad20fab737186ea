package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// OrderMetrics records business counters for placed orders.
type OrderMetrics struct {
	placed    *prometheus.CounterVec
	totals    *prometheus.HistogramVec
	discounts *prometheus.CounterVec
}

// NewOrderMetrics registers order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pizzeria_orders_placed_total",
		Help: "Orders placed, labeled by delivery type.",
	}, []string{"delivery_type"})
	totals := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pizzeria_order_total_eur",
		Help:    "Final order totals in EUR.",
		Buckets: []float64{5, 10, 20, 35, 50, 75, 100, 150},
	}, []string{"delivery_type"})
	discounts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pizzeria_order_discount_eur_total",
		Help: "Cumulative discount amounts granted in EUR, labeled by kind.",
	}, []string{"kind"})
	reg.MustRegister(placed, totals, discounts)
	return &OrderMetrics{
		placed:    placed,
		totals:    totals,
		discounts: discounts,
	}
}

// ObservePlaced records one placed order and its final total.
func (o *OrderMetrics) ObservePlaced(deliveryType string, total decimal.Decimal) {
	if o == nil || o.placed == nil {
		return
	}
	o.placed.WithLabelValues(deliveryType).Inc()
	o.totals.WithLabelValues(deliveryType).Observe(total.InexactFloat64())
}

// AddDiscount accumulates a granted discount amount under the given kind.
func (o *OrderMetrics) AddDiscount(kind string, amount decimal.Decimal) {
	if o == nil || o.discounts == nil {
		return
	}
	if amount.IsZero() {
		return
	}
	o.discounts.WithLabelValues(kind).Add(amount.InexactFloat64())
}
