package importer

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,description,image,price_cents,currency,stock
Canvas Tote Bag,Heavy cotton tote,https://example.com/tote.jpg,1200,GBP,40
Enamel Camping Mug,Speckled enamel mug,,950,,25`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}
	if len(repo.items) != 2 {
		t.Fatalf("expected 2 products saved, got %d", len(repo.items))
	}
	if repo.items[0].Name != "Canvas Tote Bag" || repo.items[0].PriceCents != 1200 || repo.items[0].Currency != "gbp" {
		t.Fatalf("unexpected product data: %+v", repo.items[0])
	}
	if repo.items[1].Currency != "gbp" {
		t.Fatalf("expected default currency gbp, got %q", repo.items[1].Currency)
	}
	if repo.items[1].Stock != 25 {
		t.Fatalf("expected stock 25, got %d", repo.items[1].Stock)
	}
}

func TestCSVImporter_InvalidPrice(t *testing.T) {
	csvData := `name,price_cents
Broken Product,not-a-number`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for invalid price")
	}
}

func TestCSVImporter_MissingName(t *testing.T) {
	csvData := `name,price_cents
,100`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for missing name")
	}
}
