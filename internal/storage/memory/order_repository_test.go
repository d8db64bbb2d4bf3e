package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:          "order-1",
		CustomerID:  "customer-1",
		Status:      domain.OrderStatusPlaced,
		AmountMinor: 500,
		Items: []domain.OrderItem{
			{ID: "item-1", ProductID: "product-1", Qty: 5, PriceMinor: 100, CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderRepository_CreateGet(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder()

	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.ID != order.ID {
		t.Fatalf("expected id %s, got %s", order.ID, stored.ID)
	}
	if len(stored.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(stored.Items))
	}
}

func TestOrderRepository_CreateDuplicate(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder()

	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(order); !errors.Is(err, domain.ErrOrderAlreadyExists) {
		t.Fatalf("expected ErrOrderAlreadyExists, got %v", err)
	}
}

func TestOrderRepository_GetMissing(t *testing.T) {
	repo := memory.NewOrderRepository()

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListByCustomer(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder()
	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	other := newOrder()
	other.ID = "order-2"
	other.CustomerID = "customer-2"
	if err := repo.Create(other); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	orders, err := repo.ListByCustomer(order.CustomerID, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0].ID != order.ID {
		t.Fatalf("expected order %s, got %s", order.ID, orders[0].ID)
	}
}
