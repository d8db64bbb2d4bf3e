package memory_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func seedProducts(repo interface{ Add(domain.Product) }) {
	repo.Add(domain.Product{ID: "product-1", Name: "widget", PriceMinor: 1000, Qty: 5})
	repo.Add(domain.Product{ID: "product-2", Name: "gadget", PriceMinor: 2500, Qty: 2})
}

func TestProductRepository_FindAllByID(t *testing.T) {
	repo := memory.NewProductRepository()
	seedProducts(repo)

	products, err := repo.FindAllByID([]string{"product-2", "product-1", "unknown"})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "product-2" || products[1].ID != "product-1" {
		t.Fatalf("expected request order to be preserved, got %v", products)
	}
}

func TestProductRepository_FindAllByID_Duplicates(t *testing.T) {
	repo := memory.NewProductRepository()
	seedProducts(repo)

	products, err := repo.FindAllByID([]string{"product-1", "product-1"})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected duplicates to collapse to 1 product, got %d", len(products))
	}
}

func TestProductRepository_UpdateQuantity(t *testing.T) {
	repo := memory.NewProductRepository()
	seedProducts(repo)

	err := repo.UpdateQuantity([]domain.StockUpdate{
		{ProductID: "product-1", Qty: 2},
		{ProductID: "product-2", Qty: 0},
	})
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}

	products, err := repo.FindAllByID([]string{"product-1", "product-2"})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if products[0].Qty != 2 || products[1].Qty != 0 {
		t.Fatalf("unexpected quantities after update: %d, %d", products[0].Qty, products[1].Qty)
	}
}

func TestProductRepository_UpdateQuantity_UnknownProduct(t *testing.T) {
	repo := memory.NewProductRepository()
	seedProducts(repo)

	err := repo.UpdateQuantity([]domain.StockUpdate{
		{ProductID: "product-1", Qty: 1},
		{ProductID: "unknown", Qty: 1},
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	// Батч атомарен: первый товар не должен быть изменён.
	products, err := repo.FindAllByID([]string{"product-1"})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if products[0].Qty != 5 {
		t.Fatalf("expected stock untouched after failed batch, got %d", products[0].Qty)
	}
}

func TestProductRepository_UpdateQuantity_NegativeStock(t *testing.T) {
	repo := memory.NewProductRepository()
	seedProducts(repo)

	err := repo.UpdateQuantity([]domain.StockUpdate{{ProductID: "product-1", Qty: -1}})
	if !errors.Is(err, domain.ErrStockNegative) {
		t.Fatalf("expected ErrStockNegative, got %v", err)
	}
}
