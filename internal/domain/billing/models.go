package billing

import (
	"encoding/json"
	"errors"
)

var (
	// ErrUserNotFound is returned when the billing operation references an unknown user
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput is returned when required billing parameters are missing
	ErrInvalidInput = errors.New("invalid input")
)

// Customer is a payment-provider customer record
type Customer struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"metadata"`
}

// CheckoutSession is a payment-provider checkout session
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	Subscription  string            `json:"subscription"`
	Customer      string            `json:"customer"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

// CheckoutParams holds everything needed to open a subscription checkout
type CheckoutParams struct {
	CustomerID string
	PriceID    string
	SuccessURL string
	CancelURL  string
	UserID     string
}

// CheckoutResult carries the hosted checkout URL back to the client
type CheckoutResult struct {
	URL string `json:"url"`
}

// CheckPaymentResult reports whether a checkout session ended in an active subscription
type CheckPaymentResult struct {
	Success       bool   `json:"success"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}

// Webhook event types handled by the service. Everything else is acknowledged
// and ignored.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// Event is a payment-provider webhook event. Data.Object is decoded lazily
// because its shape depends on Type.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// subscriptionObject is the slice of a subscription event payload we care about
type subscriptionObject struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
}
