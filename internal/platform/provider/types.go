package provider

import "time"

// CheckoutIDPlaceholder is substituted by the provider with the real checkout
// ID when it redirects to the success URL.
const CheckoutIDPlaceholder = "{CHECKOUT_ID}"

// Metadata is the opaque key/value bag attached to a checkout session and
// echoed back on webhook events. UserID is empty for guest checkouts.
type Metadata struct {
	UserID      string `json:"userId,omitempty"`
	UserEmail   string `json:"userEmail,omitempty"`
	ProductType string `json:"productType,omitempty"`
	ProductID   string `json:"productId,omitempty"`
}

// CheckoutSession is the provider's view of a hosted checkout. It is
// transient and provider-owned; this system reads it on verification calls
// and never persists it.
type CheckoutSession struct {
	ID            string    `json:"id"`
	URL           string    `json:"url"`
	Status        string    `json:"status"`
	TotalAmount   int64     `json:"totalAmount"`
	Currency      string    `json:"currency"`
	CustomerEmail string    `json:"customerEmail"`
	CreatedAt     time.Time `json:"createdAt"`
	Metadata      Metadata  `json:"metadata"`
}

// Event is a verified webhook delivery.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data OrderData `json:"data"`
}

const EventTypeOrderPaid = "order.paid"

// OrderData is the payload of order lifecycle events. ID is the checkout ID
// and is used downstream as the purchase idempotency key.
type OrderData struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	TotalAmount   int64     `json:"totalAmount"`
	Currency      string    `json:"currency"`
	CustomerEmail string    `json:"customerEmail"`
	CreatedAt     time.Time `json:"createdAt"`
	Metadata      Metadata  `json:"metadata"`
}

// CreateCheckoutRequest is the input to CreateCheckoutSession.
type CreateCheckoutRequest struct {
	ProductID     string   `json:"productId"`
	CustomerEmail string   `json:"customerEmail,omitempty"`
	SuccessURL    string   `json:"successUrl"`
	Metadata      Metadata `json:"metadata"`
	EmbedOrigin   string   `json:"embedOrigin,omitempty"`
}
