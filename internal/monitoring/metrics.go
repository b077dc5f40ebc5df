package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Order metrics
	ordersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_bot_orders_total",
			Help: "Total number of orders placed",
		},
		[]string{"symbol", "side", "type"},
	)

	orderErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_bot_order_errors_total",
			Help: "Total number of failed operations by error kind",
		},
		[]string{"kind"},
	)

	cancellationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_bot_cancellations_total",
			Help: "Total number of order cancellations",
		},
		[]string{"symbol"},
	)

	// Market data metrics
	lastPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "order_bot_last_price",
			Help: "Last observed price per symbol",
		},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(ordersTotal)
	prometheus.MustRegister(orderErrorsTotal)
	prometheus.MustRegister(cancellationsTotal)
	prometheus.MustRegister(lastPrice)
}

// Handler returns the Prometheus metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordOrder records a successfully placed order.
func RecordOrder(symbol, side, orderType string) {
	ordersTotal.WithLabelValues(symbol, side, orderType).Inc()
}

// RecordError records a failed operation by error kind
// (validation, symbol_not_found, exchange_api, partial_failure).
func RecordError(kind string) {
	orderErrorsTotal.WithLabelValues(kind).Inc()
}

// RecordCancellation records an order cancellation.
func RecordCancellation(symbol string) {
	cancellationsTotal.WithLabelValues(symbol).Inc()
}

// UpdatePrice updates the last observed price for a symbol.
func UpdatePrice(symbol string, price float64) {
	lastPrice.WithLabelValues(symbol).Set(price)
}
