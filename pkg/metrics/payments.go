package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain counters for the payment flow. Registered on the default registry
// and exposed by the same listener as the HTTP metrics.
var (
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "payments",
		Name:      "webhook_events_total",
		Help:      "Webhook deliveries by terminal outcome.",
	}, []string{"outcome"})

	PurchasesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "payments",
		Name:      "purchases_created_total",
		Help:      "Purchase records created from paid orders, by product type.",
	}, []string{"product_type"})

	DuplicateWebhooks = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "payments",
		Name:      "duplicate_webhooks_total",
		Help:      "order.paid redeliveries suppressed by the payment_id idempotency check.",
	})

	CheckoutsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "payments",
		Name:      "checkouts_created_total",
		Help:      "Checkout sessions created with the provider.",
	})

	AnalyticsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "analytics",
		Name:      "events_dropped_total",
		Help:      "Analytics events dropped because the dispatch buffer was full.",
	})
)
