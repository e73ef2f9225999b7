package checkout

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/payments"
	orderrepo "storefront/internal/repository/order"
)

type stubOrderRepo struct {
	created     *orderrepo.CreateOrderInput
	createOrder *domain.Order
	createErr   error

	attachOrderID string
	attachRef     string
	attachAmount  int64
	attachCalls   int
	attachPayment *domain.Payment
	attachErr     error

	statusOrderID string
	statusValue   string
	statusErr     error
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error) {
	s.created = &in
	return s.createOrder, s.createErr
}

func (s *stubOrderRepo) AttachPayment(_ context.Context, orderID, providerRef string, amountCents int64, _ string) (*domain.Payment, error) {
	s.attachCalls++
	s.attachOrderID = orderID
	s.attachRef = providerRef
	s.attachAmount = amountCents
	return s.attachPayment, s.attachErr
}

func (s *stubOrderRepo) SetStatus(_ context.Context, orderID, status string) error {
	s.statusOrderID = orderID
	s.statusValue = status
	return s.statusErr
}

type stubProductRepo struct {
	products map[string]*domain.Product
	calls    []string
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.calls = append(s.calls, id)
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

type stubIntents struct {
	intent     *payments.Intent
	err        error
	lastAmount int64
	lastOrder  string
}

func (s *stubIntents) CreateIntent(_ context.Context, amountCents int64, _, orderID string) (*payments.Intent, error) {
	s.lastAmount = amountCents
	s.lastOrder = orderID
	return s.intent, s.err
}

func catalogWith(products ...*domain.Product) *stubProductRepo {
	m := make(map[string]*domain.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &stubProductRepo{products: m}
}

func TestCreateOrderValidation(t *testing.T) {
	svc := New(&stubOrderRepo{}, catalogWith(), nil, nil)

	if _, err := svc.CreateOrder(context.Background(), nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected items error, got %v", err)
	}
	if _, err := svc.CreateOrder(context.Background(), nil, []ItemInput{{ProductID: " ", Quantity: 1}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected productId error, got %v", err)
	}
	if _, err := svc.CreateOrder(context.Background(), nil, []ItemInput{{ProductID: "p1", Quantity: 0}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected quantity error, got %v", err)
	}
}

func TestCreateOrderUnknownProductAborts(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := New(orders, catalogWith(&domain.Product{ID: "p1", PriceCents: 1000}), nil, nil)

	_, err := svc.CreateOrder(context.Background(), nil, []ItemInput{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "missing", Quantity: 1},
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
	if orders.created != nil {
		t.Fatalf("expected no order persisted, got %+v", orders.created)
	}
}

func TestCreateOrderUsesCatalogPrices(t *testing.T) {
	orders := &stubOrderRepo{createOrder: &domain.Order{ID: "order-1", Currency: "gbp", TotalCents: 2987}}
	catalog := catalogWith(
		&domain.Product{ID: "p1", PriceCents: 1000},
		&domain.Product{ID: "p2", PriceCents: 500},
	)
	svc := New(orders, catalog, nil, nil)

	res, err := svc.CreateOrder(context.Background(), nil, []ItemInput{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OrderID != "order-1" || res.TotalCents != 2987 {
		t.Fatalf("unexpected result: %+v", res)
	}
	// subtotal 2500, tax 437, shipping 50
	if orders.created.TotalCents != 2987 {
		t.Fatalf("expected persisted total 2987, got %d", orders.created.TotalCents)
	}
	if len(orders.created.Lines) != 2 || orders.created.Lines[0].UnitPriceCents != 1000 {
		t.Fatalf("unexpected lines: %+v", orders.created.Lines)
	}
}

func TestCreateOrderMergesDuplicateItems(t *testing.T) {
	orders := &stubOrderRepo{createOrder: &domain.Order{ID: "order-1"}}
	catalog := catalogWith(&domain.Product{ID: "p1", PriceCents: 1000})
	svc := New(orders, catalog, nil, nil)

	_, err := svc.CreateOrder(context.Background(), nil, []ItemInput{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p1", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders.created.Lines) != 1 || orders.created.Lines[0].Quantity != 3 {
		t.Fatalf("expected merged line with quantity 3, got %+v", orders.created.Lines)
	}
	if len(catalog.calls) != 1 {
		t.Fatalf("expected single catalog lookup, got %v", catalog.calls)
	}
}

func TestCreateOrderGuestCheckout(t *testing.T) {
	orders := &stubOrderRepo{createOrder: &domain.Order{ID: "order-1"}}
	svc := New(orders, catalogWith(&domain.Product{ID: "p1", PriceCents: 100}), nil, nil)

	if _, err := svc.CreateOrder(context.Background(), nil, []ItemInput{{ProductID: "p1", Quantity: 1}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders.created.CustomerID != nil {
		t.Fatalf("expected nil customer for guest checkout")
	}
}

func TestCreateOrderCreatesIntentForTotal(t *testing.T) {
	orders := &stubOrderRepo{createOrder: &domain.Order{ID: "order-1", Currency: "gbp", TotalCents: 167}}
	intents := &stubIntents{intent: &payments.Intent{ID: "pi_1", ClientSecret: "pi_1_secret"}}
	svc := New(orders, catalogWith(&domain.Product{ID: "p1", PriceCents: 100}), intents, nil)

	res, err := svc.CreateOrder(context.Background(), nil, []ItemInput{{ProductID: "p1", Quantity: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ClientSecret != "pi_1_secret" {
		t.Fatalf("expected client secret, got %+v", res)
	}
	if intents.lastAmount != 167 || intents.lastOrder != "order-1" {
		t.Fatalf("intent created with amount=%d order=%s", intents.lastAmount, intents.lastOrder)
	}
}

func TestCreateOrderIntentFailureSurfaces(t *testing.T) {
	orders := &stubOrderRepo{createOrder: &domain.Order{ID: "order-1"}}
	intents := &stubIntents{err: errors.New("processor down")}
	svc := New(orders, catalogWith(&domain.Product{ID: "p1", PriceCents: 100}), intents, nil)

	_, err := svc.CreateOrder(context.Background(), nil, []ItemInput{{ProductID: "p1", Quantity: 1}})
	if err == nil || err.Error() != "processor down" {
		t.Fatalf("expected processor error, got %v", err)
	}
	// the order itself was persisted and stays PENDING
	if orders.created == nil {
		t.Fatalf("expected order persisted before intent attempt")
	}
}

func TestAttachPayment(t *testing.T) {
	pay := &domain.Payment{ID: "pay-1", ProviderRef: "pi_1", OrderID: "order-1"}
	orders := &stubOrderRepo{attachPayment: pay}
	svc := New(orders, catalogWith(), nil, nil)

	got, err := svc.AttachPayment(context.Background(), "order-1", "pi_1", 2987, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != pay {
		t.Fatalf("unexpected payment: %+v", got)
	}
	if orders.attachOrderID != "order-1" || orders.attachRef != "pi_1" || orders.attachAmount != 2987 {
		t.Fatalf("attach called with %s %s %d", orders.attachOrderID, orders.attachRef, orders.attachAmount)
	}
}

func TestAttachPaymentValidation(t *testing.T) {
	svc := New(&stubOrderRepo{}, catalogWith(), nil, nil)

	if _, err := svc.AttachPayment(context.Background(), "", "pi_1", 1, ""); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}
	if _, err := svc.AttachPayment(context.Background(), "order-1", "", 1, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected reference error, got %v", err)
	}
}

func TestAttachPaymentUnknownOrder(t *testing.T) {
	orders := &stubOrderRepo{attachErr: domain.ErrOrderNotFound}
	svc := New(orders, catalogWith(), nil, nil)

	_, err := svc.AttachPayment(context.Background(), "missing", "pi_1", 1, "")
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}
}

func TestMarkFailed(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := New(orders, catalogWith(), nil, nil)

	if err := svc.MarkFailed(context.Background(), "order-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders.statusOrderID != "order-1" || orders.statusValue != domain.OrderFailed {
		t.Fatalf("unexpected status call: %s %s", orders.statusOrderID, orders.statusValue)
	}
}
