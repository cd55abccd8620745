// Package telemetry exposes Prometheus metrics for quotation activity.
package telemetry

import (
	"github.com/dukerupert/cotizador/internal/quote"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// QuoteMetrics holds Prometheus metrics for quotation editing.
// It implements quote.Observer so a Session can report to it directly.
type QuoteMetrics struct {
	Recalculations *prometheus.CounterVec
	Adjustments    *prometheus.CounterVec
	QuoteTotal     prometheus.Histogram
	LineItems      prometheus.Histogram
}

var _ quote.Observer = (*QuoteMetrics)(nil)

// NewQuoteMetrics creates the quotation metrics and registers them with reg.
// A nil reg registers with the default registry.
func NewQuoteMetrics(reg prometheus.Registerer, namespace string) *QuoteMetrics {
	if namespace == "" {
		namespace = "cotizador"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	subsystem := "quote"
	factory := promauto.With(reg)

	return &QuoteMetrics{
		Recalculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recalculations_total",
				Help:      "Total quotation recalculations",
			},
			[]string{"op"}, // op: new, add_item, set_item, set_discount, undo, import, ...
		),
		Adjustments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "adjustments_total",
				Help:      "Total inputs clamped or coerced during pricing",
			},
			[]string{"section", "reason"}, // section: items, discount, tax, down_payment
		),
		QuoteTotal: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_amount",
				Help:      "Quotation total after tax, in currency units",
				Buckets:   []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
			},
		),
		LineItems: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "line_items",
				Help:      "Number of line items per recalculation",
				Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
			},
		),
	}
}

// Recalculated implements quote.Observer.
func (m *QuoteMetrics) Recalculated(op string, items int, totals quote.Totals) {
	m.Recalculations.WithLabelValues(op).Inc()
	m.QuoteTotal.Observe(totals.Total.InexactFloat64())
	m.LineItems.Observe(float64(items))
}

// Adjusted implements quote.Observer.
func (m *QuoteMetrics) Adjusted(adj quote.Adjustment) {
	m.Adjustments.WithLabelValues(adj.Group(), string(adj.Reason)).Inc()
}
