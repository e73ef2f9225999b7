package domain

import "time"

// Order statuses. COMPLETE is reached only by attaching a verified payment;
// FAILED only via the explicit administrative path.
const (
	OrderPending  = "PENDING"
	OrderComplete = "COMPLETE"
	OrderFailed   = "FAILED"
)

type Order struct {
	ID         string      `json:"id"`
	CustomerID *string     `json:"customerId,omitempty"`
	Status     string      `json:"status"`
	Currency   string      `json:"currency"`
	TotalCents int64       `json:"totalCents"`
	PaymentID  *string     `json:"paymentId,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	Lines      []OrderLine `json:"lineItems,omitempty"`
}

// OrderLine records a product at the price the catalog resolved during
// reconciliation, not the price the client displayed.
type OrderLine struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	ProductID      string    `json:"productId"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Payment is created exclusively from a verified payment-processor webhook
// event and is immutable afterwards.
type Payment struct {
	ID          string    `json:"id"`
	ProviderRef string    `json:"providerRef"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	OrderID     string    `json:"orderId"`
	CreatedAt   time.Time `json:"createdAt"`
}
