package basket

import (
	"errors"
	"testing"

	"storefront/internal/domain"
)

func product(id string, price int64) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, PriceCents: price, Currency: "gbp"}
}

func TestAddItemMergesQuantities(t *testing.T) {
	store := New(NewMemory())
	store.AddItem(product("p1", 1000), 1)
	store.AddItem(product("p1", 1000), 2)

	snap := store.Snapshot()
	if len(snap.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(snap.Lines))
	}
	if snap.Lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", snap.Lines[0].Quantity)
	}
}

func TestAddItemKeepsPriceFromFirstAdd(t *testing.T) {
	store := New(NewMemory())
	store.AddItem(product("p1", 1000), 1)
	store.AddItem(product("p1", 9999), 1)

	snap := store.Snapshot()
	if snap.Lines[0].UnitPriceCents != 1000 {
		t.Fatalf("expected cached price 1000, got %d", snap.Lines[0].UnitPriceCents)
	}
}

func TestAddItemIgnoresInvalidInput(t *testing.T) {
	store := New(NewMemory())
	store.AddItem(domain.Product{}, 1)
	store.AddItem(product("p1", 1000), 0)
	store.AddItem(product("p2", 1000), -3)
	store.AddItem(domain.Product{ID: "p3", PriceCents: -5}, 1)

	if snap := store.Snapshot(); len(snap.Lines) != 0 {
		t.Fatalf("expected empty basket, got %d lines", len(snap.Lines))
	}
}

func TestRemoveItem(t *testing.T) {
	store := New(NewMemory())
	store.AddItem(product("p1", 1000), 1)
	store.AddItem(product("p2", 500), 1)

	store.RemoveItem("p1")
	snap := store.Snapshot()
	if len(snap.Lines) != 1 || snap.Lines[0].ProductID != "p2" {
		t.Fatalf("unexpected lines after remove: %+v", snap.Lines)
	}

	// absent product is a no-op, not an error
	store.RemoveItem("p1")
	store.RemoveItem("never-added")
	if snap := store.Snapshot(); len(snap.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(snap.Lines))
	}
}

func TestClearRemovesPersistedState(t *testing.T) {
	storage := NewMemory()
	store := New(storage)
	store.AddItem(product("p1", 1000), 2)

	store.Clear()
	if snap := store.Snapshot(); len(snap.Lines) != 0 || snap.Totals.TotalCents != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if lines, _ := storage.Load(); lines != nil {
		t.Fatalf("expected storage cleared, got %+v", lines)
	}
}

func TestSnapshotTotals(t *testing.T) {
	store := New(NewMemory())
	store.AddItem(product("p1", 1000), 2)
	store.AddItem(product("p2", 500), 1)

	got := store.Snapshot().Totals
	if got.SubtotalCents != 2500 {
		t.Fatalf("expected subtotal 2500, got %d", got.SubtotalCents)
	}
	if got.TaxCents != 437 {
		t.Fatalf("expected tax 437, got %d", got.TaxCents)
	}
	if got.ShippingCents != 50 {
		t.Fatalf("expected shipping 50, got %d", got.ShippingCents)
	}
	if got.TotalCents != 2987 {
		t.Fatalf("expected total 2987, got %d", got.TotalCents)
	}
	if got.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", got.Quantity)
	}
}

func TestSnapshotEmptyBasket(t *testing.T) {
	store := New(NewMemory())
	got := store.Snapshot().Totals
	if got.SubtotalCents != 0 || got.TaxCents != 0 || got.ShippingCents != 0 || got.TotalCents != 0 {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	store := New(NewMemory())
	store.AddItem(product("p1", 1000), 1)

	snap := store.Snapshot()
	snap.Lines[0].Quantity = 99

	if store.Snapshot().Lines[0].Quantity != 1 {
		t.Fatalf("snapshot mutation leaked into store")
	}
}

func TestStoreRestoresFromStorage(t *testing.T) {
	storage := NewMemory()
	first := New(storage)
	first.AddItem(product("p1", 1000), 2)

	second := New(storage)
	snap := second.Snapshot()
	if len(snap.Lines) != 1 || snap.Lines[0].Quantity != 2 {
		t.Fatalf("expected restored basket, got %+v", snap.Lines)
	}
}

func TestMutationsSurviveSaveFailure(t *testing.T) {
	storage := NewMemory()
	storage.FailSave = errors.New("disk full")
	store := New(storage)

	// mutations never raise to the UI, even when persistence fails
	store.AddItem(product("p1", 1000), 1)
	if snap := store.Snapshot(); len(snap.Lines) != 1 {
		t.Fatalf("expected in-memory state intact, got %+v", snap.Lines)
	}
}
