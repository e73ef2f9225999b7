// Package pricing holds the storefront pricing policy shared by the basket
// display totals and the checkout reconciler. Tax and shipping are fixed
// constants, not jurisdiction-derived.
package pricing

// All arithmetic stays in integer minor units. Tax is applied once to the
// summed subtotal, never per line, and truncated toward zero. Shipping is a
// flat fee waived when the basket holds no items.
const (
	TaxRateBasisPoints = 1750
	ShippingFeeCents   = 50

	Currency = "gbp"
)

// Quote is the derived charge breakdown for a summed subtotal.
type Quote struct {
	SubtotalCents int64
	TaxCents      int64
	ShippingCents int64
	TotalCents    int64
}

// QuoteFor derives tax, shipping and total from a subtotal. itemCount is
// the number of distinct line items; with zero items everything is zero.
func QuoteFor(subtotalCents int64, itemCount int) Quote {
	if itemCount == 0 || subtotalCents < 0 {
		return Quote{}
	}
	tax := subtotalCents * TaxRateBasisPoints / 10000
	return Quote{
		SubtotalCents: subtotalCents,
		TaxCents:      tax,
		ShippingCents: ShippingFeeCents,
		TotalCents:    subtotalCents + tax + ShippingFeeCents,
	}
}
