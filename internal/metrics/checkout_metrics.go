package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics содержит метрики размещения заказов.
type CheckoutMetrics struct {
	// Счётчики исходов
	ordersPlaced    prometheus.Counter
	ordersRejected  *prometheus.CounterVec
	ordersFailed    prometheus.Counter
	stockRestoreErr prometheus.Counter

	// Гистограммы
	placeDuration prometheus.Histogram
	itemsPerOrder prometheus.Histogram
}

// Причины отказов для label `reason`.
const (
	RejectReasonCustomerNotFound  = "customer_not_found"
	RejectReasonNoProductsFound   = "no_products_found"
	RejectReasonProductNotFound   = "product_not_found"
	RejectReasonInsufficientStock = "insufficient_stock"
	RejectReasonInvalidRequest    = "invalid_request"
)

// NewCheckoutMetrics создаёт новый экземпляр метрик checkout.
func NewCheckoutMetrics() *CheckoutMetrics {
	return newCheckoutMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCheckoutMetricsWithRegisterer(registerer prometheus.Registerer) *CheckoutMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CheckoutMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_orders_placed_total",
			Help: "Total number of orders placed successfully",
		}),
		ordersRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_orders_rejected_total",
			Help: "Total number of order placements rejected by business rules",
		}, []string{"reason"}),
		ordersFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_orders_failed_total",
			Help: "Total number of order placements failed on collaborator errors",
		}),
		stockRestoreErr: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_checkout_stock_restore_failures_total",
			Help: "Total number of failed stock compensations after persistence errors",
		}),
		placeDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_checkout_place_duration_seconds",
			Help:    "Duration of order placement in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		itemsPerOrder: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_checkout_items_per_order",
			Help:    "Number of line items per placed order",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderPlaced увеличивает счётчик размещённых заказов и
// записывает количество позиций.
func (m *CheckoutMetrics) RecordOrderPlaced(itemCount int) {
	m.ordersPlaced.Inc()
	m.itemsPerOrder.Observe(float64(itemCount))
}

// RecordOrderRejected увеличивает счётчик бизнес-отказов по причине.
func (m *CheckoutMetrics) RecordOrderRejected(reason string) {
	m.ordersRejected.WithLabelValues(reason).Inc()
}

// RecordOrderFailed увеличивает счётчик инфраструктурных сбоев.
func (m *CheckoutMetrics) RecordOrderFailed() {
	m.ordersFailed.Inc()
}

// RecordStockRestoreFailure увеличивает счётчик неудачных компенсаций стока.
func (m *CheckoutMetrics) RecordStockRestoreFailure() {
	m.stockRestoreErr.Inc()
}

// RecordPlaceDuration записывает время размещения заказа.
func (m *CheckoutMetrics) RecordPlaceDuration(duration time.Duration) {
	m.placeDuration.Observe(duration.Seconds())
}
