// Package checkout reconciles a client-supplied basket against the catalog
// and drives payment. Client-cached prices are display-only; every charge
// is computed from prices the catalog resolves here.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/payments"
	"storefront/internal/pricing"
	orderrepo "storefront/internal/repository/order"
)

// ErrInvalidInput marks a client-supplied order list that fails boundary
// validation.
var ErrInvalidInput = errors.New("invalid checkout input")

type Service struct {
	orders   orderRepo
	products productRepo
	intents  payments.IntentClient
	logger   *log.Logger
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	AttachPayment(ctx context.Context, orderID, providerRef string, amountCents int64, currency string) (*domain.Payment, error)
	SetStatus(ctx context.Context, orderID, status string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(orders orderRepo, products productRepo, intents payments.IntentClient, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, products: products, intents: intents, logger: logger}
}

// ItemInput is the client-supplied order entry. Price is deliberately
// absent: it is resolved server-side.
type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Result carries what the browser needs to confirm payment.
type Result struct {
	OrderID      string `json:"orderId"`
	TotalCents   int64  `json:"totalCents"`
	Currency     string `json:"currency"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

// CreateOrder re-resolves every product price from the catalog, persists the
// order with its lines in one transaction, and creates a payment intent for
// the computed total. Any unresolvable product aborts the whole call with
// ErrProductNotFound; nothing is persisted in that case. The order stays
// PENDING until the payment webhook attaches a verified payment.
func (s *Service) CreateOrder(ctx context.Context, customerID *string, items []ItemInput) (*Result, error) {
	merged, err := mergeItems(items)
	if err != nil {
		return nil, err
	}

	lines := make([]orderrepo.CreateOrderLine, 0, len(merged))
	var subtotal int64
	for _, item := range merged {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, item.ProductID)
			}
			return nil, err
		}
		lines = append(lines, orderrepo.CreateOrderLine{
			ProductID:      product.ID,
			Quantity:       item.Quantity,
			UnitPriceCents: product.PriceCents,
		})
		subtotal += product.PriceCents * int64(item.Quantity)
	}

	quote := pricing.QuoteFor(subtotal, len(lines))
	ord, err := s.orders.Create(ctx, orderrepo.CreateOrderInput{
		CustomerID: customerID,
		Currency:   pricing.Currency,
		TotalCents: quote.TotalCents,
		Lines:      lines,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("checkout: order %s created, total=%d", ord.ID, ord.TotalCents)

	result := &Result{OrderID: ord.ID, TotalCents: ord.TotalCents, Currency: ord.Currency}
	if s.intents != nil {
		intent, err := s.intents.CreateIntent(ctx, ord.TotalCents, ord.Currency, ord.ID)
		if err != nil {
			// order already persisted; it stays PENDING for a retried payment
			s.logger.Printf("checkout: intent for order %s failed: %v", ord.ID, err)
			return nil, err
		}
		result.ClientSecret = intent.ClientSecret
	}
	return result, nil
}

// AttachPayment records a verified payment against an order and completes
// it. Re-delivery with the same provider reference is a no-op once the
// order is COMPLETE.
func (s *Service) AttachPayment(ctx context.Context, orderID, providerRef string, amountCents int64, currency string) (*domain.Payment, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, domain.ErrOrderNotFound
	}
	if strings.TrimSpace(providerRef) == "" {
		return nil, fmt.Errorf("%w: payment reference required", ErrInvalidInput)
	}
	if currency == "" {
		currency = pricing.Currency
	}
	return s.orders.AttachPayment(ctx, orderID, providerRef, amountCents, currency)
}

// MarkFailed is the explicit administrative transition; failure is never
// inferred from a missing webhook.
func (s *Service) MarkFailed(ctx context.Context, orderID string) error {
	return s.orders.SetStatus(ctx, orderID, domain.OrderFailed)
}

// mergeItems validates the boundary DTOs and folds duplicate product ids
// into a single entry, preserving first-seen order.
func mergeItems(items []ItemInput) ([]ItemInput, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrInvalidInput)
	}
	index := make(map[string]int, len(items))
	merged := make([]ItemInput, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ProductID)
		if id == "" {
			return nil, fmt.Errorf("%w: productId required", ErrInvalidInput)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		if at, ok := index[id]; ok {
			merged[at].Quantity += item.Quantity
			continue
		}
		index[id] = len(merged)
		merged = append(merged, ItemInput{ProductID: id, Quantity: item.Quantity})
	}
	return merged, nil
}
