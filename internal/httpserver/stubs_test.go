package httpserver

import (
	"context"
	"io"
	"log"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
	"storefront/internal/service/checkout"
)

type stubOrderRepo struct {
	createOrder *domain.Order
	createErr   error

	attachCalls   int
	attachOrderID string
	attachRef     string
	attachPayment *domain.Payment
	attachErr     error

	order   *domain.Order
	orders  []domain.Order
	pays    []domain.Payment
	listErr error

	statusOrderID string
	statusValue   string
	statusErr     error
}

func (s *stubOrderRepo) Create(_ context.Context, _ orderrepo.CreateOrderInput) (*domain.Order, error) {
	return s.createOrder, s.createErr
}

func (s *stubOrderRepo) AttachPayment(_ context.Context, orderID, providerRef string, _ int64, _ string) (*domain.Payment, error) {
	s.attachCalls++
	s.attachOrderID = orderID
	s.attachRef = providerRef
	return s.attachPayment, s.attachErr
}

func (s *stubOrderRepo) SetStatus(_ context.Context, orderID, status string) error {
	s.statusOrderID = orderID
	s.statusValue = status
	return s.statusErr
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	if s.order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *stubOrderRepo) List(_ context.Context, _ int) ([]domain.Order, error) {
	return s.orders, s.listErr
}

func (s *stubOrderRepo) ListPayments(_ context.Context, _ int) ([]domain.Payment, error) {
	return s.pays, s.listErr
}

type stubProductRepo struct {
	products map[string]*domain.Product
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) List(_ context.Context, _ string, _ int) ([]domain.Product, string, error) {
	var out []domain.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, "", nil
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

type stubCustomerRepo struct {
	customers []domain.Customer
}

func (s *stubCustomerRepo) List(_ context.Context, _ int) ([]domain.Customer, error) {
	return s.customers, nil
}

func (s *stubCustomerRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	return &c, nil
}

func (s *stubCustomerRepo) GetByID(_ context.Context, _ string) (*domain.Customer, error) {
	return nil, domain.ErrNotFound
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testCheckout(orders *stubOrderRepo, products *stubProductRepo) *checkout.Service {
	return checkout.New(orders, products, nil, testLogger())
}
