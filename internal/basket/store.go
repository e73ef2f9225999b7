package basket

import (
	"time"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

// Storage is the persistence port for the basket. Implementations keep the
// serialized line items for one device; swapping in the in-memory
// implementation keeps tests off the filesystem.
type Storage interface {
	Load() ([]domain.BasketLine, error)
	Save(lines []domain.BasketLine) error
	Clear() error
}

// Store holds the selected line items for one shopping session and keeps
// them persisted through the injected Storage after every mutation.
//
// A Store belongs to a single session and is not safe for concurrent use.
type Store struct {
	storage Storage
	lines   []domain.BasketLine
	now     func() time.Time
}

// New builds a Store backed by storage, restoring any previously persisted
// line items. A storage read failure starts the session with an empty
// basket rather than surfacing an error to the UI.
func New(storage Storage) *Store {
	s := &Store{storage: storage, now: time.Now}
	if storage != nil {
		if lines, err := storage.Load(); err == nil {
			s.lines = lines
		}
	}
	return s
}

// AddItem merges product into the basket: an already-present product gets
// its quantity incremented, otherwise a new line is appended with the price
// captured now. Invalid input is ignored; basket mutations never raise to
// the UI.
func (s *Store) AddItem(p domain.Product, quantity int) {
	if p.ID == "" || quantity < 1 || p.PriceCents < 0 {
		return
	}
	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity += quantity
			s.persist()
			return
		}
	}
	s.lines = append(s.lines, domain.BasketLine{
		ProductID:      p.ID,
		Name:           p.Name,
		UnitPriceCents: p.PriceCents,
		Quantity:       quantity,
		AddedAt:        s.now().UTC(),
	})
	s.persist()
}

// RemoveItem deletes the line for productID. Removing an absent product is
// a no-op, not an error.
func (s *Store) RemoveItem(productID string) {
	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(s.lines) {
		return
	}
	s.lines = kept
	s.persist()
}

// Clear empties the basket and removes the persisted state.
func (s *Store) Clear() {
	s.lines = nil
	if s.storage != nil {
		_ = s.storage.Clear()
	}
}

// Snapshot returns the current line items in insertion order together with
// the derived totals. It never mutates the store.
func (s *Store) Snapshot() domain.BasketSnapshot {
	lines := make([]domain.BasketLine, len(s.lines))
	copy(lines, s.lines)

	var subtotal int64
	qty := 0
	for _, line := range lines {
		subtotal += line.UnitPriceCents * int64(line.Quantity)
		qty += line.Quantity
	}
	q := pricing.QuoteFor(subtotal, len(lines))

	return domain.BasketSnapshot{
		Lines: lines,
		Totals: domain.BasketTotals{
			SubtotalCents: q.SubtotalCents,
			TaxCents:      q.TaxCents,
			ShippingCents: q.ShippingCents,
			TotalCents:    q.TotalCents,
			Quantity:      qty,
		},
	}
}

func (s *Store) persist() {
	if s.storage == nil {
		return
	}
	_ = s.storage.Save(s.lines)
}
