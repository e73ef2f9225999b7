package catalog

import (
	"context"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Page is one cursor-paginated slice of the catalog, newest first.
type Page struct {
	Products   []domain.Product `json:"products"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// List returns a page of products. limit is clamped to 1..100 with a
// default of 10; cursor is an opaque product id from a previous page.
func (s *Service) List(ctx context.Context, cursor string, limit int) (*Page, error) {
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	products, next, err := s.repo.List(ctx, cursor, limit)
	if err != nil {
		return nil, err
	}
	return &Page{Products: products, NextCursor: next}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}
