package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Reconciliation decisions, one per inbound gateway result
	reconciliationOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reconciliation_outcomes_total",
		Help: "Total gateway results reconciled, by decision",
	}, []string{
		"channel", // return, webhook
		"method",  // credit, cvs, paypay, ...
		"outcome", // completed, on_hold, failed, canceled, ignored
		"code",    // domain error code for ignored/failed results, empty otherwise
	})

	// Order status writes issued to the order ledger
	orderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_total",
		Help: "Total order status transitions applied",
	}, []string{
		"method",
		"status", // processing, completed, on-hold, failed, cancelled
		"result", // ok, error
	})

	// Webhook deliveries by gateway status (ack is always "0")
	webhookNotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_notifications_total",
		Help: "Total webhook notifications acknowledged",
	}, []string{
		"status",
	})

	// Return-channel visits sent back to checkout
	checkoutRedirectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_redirects_total",
		Help: "Total return-channel visits redirected to the checkout page",
	}, []string{
		"method",
	})
)

// RecordReconciliation records one reconciliation decision
func RecordReconciliation(channel, method, outcome, code string) {
	reconciliationOutcomesTotal.WithLabelValues(channel, method, outcome, code).Inc()
}

// RecordOrderTransition records an order status write
func RecordOrderTransition(method, status string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	orderTransitionsTotal.WithLabelValues(method, status, result).Inc()
}

// RecordWebhookNotification records an acknowledged webhook delivery.
// Statuses outside the known vocabulary are folded into "unknown" to keep
// label cardinality bounded.
func RecordWebhookNotification(status string, known bool) {
	if !known {
		status = "unknown"
	}
	webhookNotificationsTotal.WithLabelValues(status).Inc()
}

// RecordCheckoutRedirect records a shopper sent back to checkout
func RecordCheckoutRedirect(method string) {
	checkoutRedirectsTotal.WithLabelValues(method).Inc()
}
