package postgres

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func seedProductForIntegrationTest(t *testing.T, store *Store, id string, priceMinor int64, qty int32) {
	t.Helper()

	err := NewProductRepository(store).Upsert(domain.Product{
		ID:         id,
		Name:       "Товар " + id,
		PriceMinor: priceMinor,
		Qty:        qty,
	})
	if err != nil {
		t.Fatalf("seed product %s: %v", id, err)
	}
}

func TestProductRepository_PostgresFindAllByID(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)

	seedProductForIntegrationTest(t, store, "product-1", 1000, 5)
	seedProductForIntegrationTest(t, store, "product-2", 2500, 2)

	products, err := repo.FindAllByID([]string{"product-1", "product-2", "missing-product"})
	if err != nil {
		t.Fatalf("find all by id: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "product-1" || products[0].PriceMinor != 1000 || products[0].Qty != 5 {
		t.Fatalf("unexpected product-1 payload: %+v", products[0])
	}
	if products[1].ID != "product-2" || products[1].PriceMinor != 2500 {
		t.Fatalf("unexpected product-2 payload: %+v", products[1])
	}

	empty, err := repo.FindAllByID(nil)
	if err != nil {
		t.Fatalf("find with empty ids: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty result, got %d products", len(empty))
	}
}

func TestProductRepository_PostgresUpdateQuantity(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)

	seedProductForIntegrationTest(t, store, "product-1", 1000, 5)
	seedProductForIntegrationTest(t, store, "product-2", 2500, 2)

	err := repo.UpdateQuantity([]domain.StockUpdate{
		{ProductID: "product-1", Qty: 3},
		{ProductID: "product-2", Qty: 1},
	})
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}

	products, err := repo.FindAllByID([]string{"product-1", "product-2"})
	if err != nil {
		t.Fatalf("find after update: %v", err)
	}
	if products[0].Qty != 3 || products[1].Qty != 1 {
		t.Fatalf("unexpected quantities after update: %+v", products)
	}
}

func TestProductRepository_PostgresUpdateQuantityIsAtomic(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)

	seedProductForIntegrationTest(t, store, "product-1", 1000, 5)

	err := repo.UpdateQuantity([]domain.StockUpdate{
		{ProductID: "product-1", Qty: 1},
		{ProductID: "missing-product", Qty: 4},
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	products, err := repo.FindAllByID([]string{"product-1"})
	if err != nil {
		t.Fatalf("find after failed batch: %v", err)
	}
	if products[0].Qty != 5 {
		t.Fatalf("quantity changed despite failed batch: %d", products[0].Qty)
	}

	err = repo.UpdateQuantity([]domain.StockUpdate{{ProductID: "product-1", Qty: -1}})
	if !errors.Is(err, domain.ErrStockNegative) {
		t.Fatalf("expected ErrStockNegative, got %v", err)
	}
}
