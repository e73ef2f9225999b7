package domain

import "time"

// BasketLine is one selected product in a shopping session. UnitPriceCents
// is the price cached at add time; it drives display totals only and is
// never trusted at checkout.
type BasketLine struct {
	ProductID      string    `json:"productId"`
	Name           string    `json:"name,omitempty"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int       `json:"quantity"`
	AddedAt        time.Time `json:"addedAt"`
}

// BasketTotals are the derived aggregates for a basket, in minor currency
// units.
type BasketTotals struct {
	SubtotalCents int64 `json:"subtotalCents"`
	TaxCents      int64 `json:"taxCents"`
	ShippingCents int64 `json:"shippingCents"`
	TotalCents    int64 `json:"totalCents"`
	Quantity      int   `json:"quantity"`
}

// BasketSnapshot is a read-only view of the basket: the line items in
// insertion order plus the derived totals.
type BasketSnapshot struct {
	Lines  []BasketLine `json:"lineItems"`
	Totals BasketTotals `json:"totals"`
}
