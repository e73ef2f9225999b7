package order

import (
	"context"

	"storefront/internal/domain"
)

type CreateOrderLine struct {
	ProductID      string
	Quantity       int
	UnitPriceCents int64
}

type CreateOrderInput struct {
	CustomerID *string
	Currency   string
	TotalCents int64
	Lines      []CreateOrderLine
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, limit int) ([]domain.Order, error)
	AttachPayment(ctx context.Context, orderID, providerRef string, amountCents int64, currency string) (*domain.Payment, error)
	SetStatus(ctx context.Context, orderID, status string) error
	ListPayments(ctx context.Context, limit int) ([]domain.Payment, error)
}
