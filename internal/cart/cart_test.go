package cart

import (
	"errors"
	"testing"

	"github.com/rogerio-castellano/pos-tracker/internal/models"
	"github.com/rogerio-castellano/pos-tracker/internal/repo"
)

func seedCatalog(t *testing.T, products ...models.Product) *repo.InMemoryProductRepository {
	t.Helper()
	catalog := repo.NewInMemoryProductRepository()
	for _, p := range products {
		if _, err := catalog.Create(p); err != nil {
			t.Fatalf("seeding catalog: %v", err)
		}
	}
	return catalog
}

func TestAdd(t *testing.T) {
	catalog := seedCatalog(t,
		models.Product{Name: "Rice 5kg", Price: 120, Quantity: 10},
		models.Product{Name: "Sugar 1kg", Price: 30, Quantity: 0},
	)
	c := New(catalog)

	if err := c.Add(1); err != nil {
		t.Fatalf("adding in-stock product: %v", err)
	}
	if got := c.Len(); got != 1 {
		t.Errorf("expected 1 item, got %d", got)
	}

	// adding again is a no-op, not a quantity bump
	if err := c.Add(1); err != nil {
		t.Fatalf("re-adding product: %v", err)
	}
	items := c.Items()
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Errorf("expected single item with quantity 1, got %+v", items)
	}

	if err := c.Add(2); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("expected ErrOutOfStock for depleted product, got %v", err)
	}
	if err := c.Add(99); !errors.Is(err, repo.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestIncrementStopsAtStock(t *testing.T) {
	catalog := seedCatalog(t, models.Product{Name: "Milk", Price: 10, Quantity: 2})
	c := New(catalog)

	if err := c.Add(1); err != nil {
		t.Fatal(err)
	}
	if err := c.Increment(1); err != nil {
		t.Fatalf("increment within stock: %v", err)
	}
	if err := c.Increment(1); !errors.Is(err, ErrStockLimitExceeded) {
		t.Errorf("expected ErrStockLimitExceeded, got %v", err)
	}
	if err := c.Increment(42); !errors.Is(err, ErrNotInCart) {
		t.Errorf("expected ErrNotInCart, got %v", err)
	}
}

func TestDecrementRemovesAtOne(t *testing.T) {
	catalog := seedCatalog(t, models.Product{Name: "Milk", Price: 10, Quantity: 5})
	c := New(catalog)

	c.Add(1)
	c.Increment(1)

	if err := c.Decrement(1); err != nil {
		t.Fatal(err)
	}
	if got := c.Items()[0].Quantity; got != 1 {
		t.Errorf("expected quantity 1, got %d", got)
	}

	if err := c.Decrement(1); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cart after decrementing to zero")
	}
	if err := c.Decrement(1); !errors.Is(err, ErrNotInCart) {
		t.Errorf("expected ErrNotInCart, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	catalog := seedCatalog(t,
		models.Product{Name: "A", Price: 1, Quantity: 5},
		models.Product{Name: "B", Price: 2, Quantity: 5},
	)
	c := New(catalog)
	c.Add(1)
	c.Add(2)

	if err := c.Remove(1); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 item after remove, got %d", c.Len())
	}
	if err := c.Remove(1); !errors.Is(err, ErrNotInCart) {
		t.Errorf("expected ErrNotInCart, got %v", err)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cart after clear")
	}
}

func TestTotalUsesLivePrices(t *testing.T) {
	catalog := seedCatalog(t,
		models.Product{Name: "Rice 5kg", Price: 120, Quantity: 10},
		models.Product{Name: "Oil 1L", Price: 45.5, Quantity: 10},
	)
	c := New(catalog)
	c.Add(1)
	c.Increment(1)
	c.Add(2)

	if got, want := c.Total(), 120*2+45.5; got != want {
		t.Errorf("expected total %.2f, got %.2f", want, got)
	}

	// a price change is reflected on the next read
	p, _ := catalog.GetByID(1)
	p.Price = 130
	catalog.Update(p)
	if got, want := c.Total(), 130*2+45.5; got != want {
		t.Errorf("expected total %.2f after price change, got %.2f", want, got)
	}
}

func TestTotalSkipsDeletedProducts(t *testing.T) {
	catalog := seedCatalog(t,
		models.Product{Name: "A", Price: 10, Quantity: 5},
		models.Product{Name: "B", Price: 20, Quantity: 5},
	)
	c := New(catalog)
	c.Add(1)
	c.Add(2)

	catalog.Delete(1)

	if got := c.Total(); got != 20 {
		t.Errorf("expected dangling reference to contribute 0, total 20, got %.2f", got)
	}
	if resolved := c.Resolve(); len(resolved) != 1 || resolved[0].Product.ID != 2 {
		t.Errorf("expected resolve to skip the deleted product, got %+v", resolved)
	}
}

func TestSessionStore(t *testing.T) {
	catalog := seedCatalog(t, models.Product{Name: "A", Price: 10, Quantity: 5})
	store := NewSessionStore()

	c1 := store.Get(1, catalog)
	c1.Add(1)

	if got := store.Get(1, catalog); got != c1 {
		t.Errorf("expected the same cart on repeat lookup")
	}
	if other := store.Get(2, catalog); other.Len() != 0 {
		t.Errorf("expected a fresh cart per owner")
	}

	store.Drop(1)
	if got := store.Get(1, catalog); got.Len() != 0 {
		t.Errorf("expected a fresh cart after drop")
	}
}
