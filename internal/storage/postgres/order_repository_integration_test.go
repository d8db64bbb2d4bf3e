package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func seedCustomerForIntegrationTest(t *testing.T, store *Store, id string) {
	t.Helper()

	err := NewCustomerRepository(store).Upsert(domain.Customer{
		ID:        id,
		Name:      "Интеграционный покупатель",
		Email:     id + "@example.com",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed customer %s: %v", id, err)
	}
}

func sampleOrder(id, customerID string, createdAt time.Time) domain.Order {
	items := []domain.OrderItem{
		{
			ID:         uuid.NewString(),
			ProductID:  "product-1",
			Qty:        2,
			PriceMinor: 1000,
			CreatedAt:  createdAt,
		},
		{
			ID:         uuid.NewString(),
			ProductID:  "product-2",
			Qty:        1,
			PriceMinor: 2500,
			CreatedAt:  createdAt,
		},
	}

	return domain.Order{
		ID:          id,
		CustomerID:  customerID,
		Status:      domain.OrderStatusPlaced,
		AmountMinor: 4500,
		Items:       items,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestOrderRepository_PostgresCreateGetList(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)
	seedCustomerForIntegrationTest(t, store, "customer-1")

	now := time.Now().UTC().Round(time.Microsecond)
	order1 := sampleOrder("order-1", "customer-1", now.Add(-2*time.Minute))
	order2 := sampleOrder("order-2", "customer-1", now.Add(-time.Minute))

	if err := repo.Create(order1); err != nil {
		t.Fatalf("create order1: %v", err)
	}
	if err := repo.Create(order2); err != nil {
		t.Fatalf("create order2: %v", err)
	}

	got, err := repo.Get(order1.ID)
	if err != nil {
		t.Fatalf("get order1: %v", err)
	}
	if got.ID != order1.ID || got.CustomerID != order1.CustomerID || got.Status != order1.Status {
		t.Fatalf("unexpected order payload: %+v", got)
	}
	if got.AmountMinor != order1.AmountMinor {
		t.Fatalf("unexpected amount: got=%d want=%d", got.AmountMinor, order1.AmountMinor)
	}
	if len(got.Items) != len(order1.Items) {
		t.Fatalf("unexpected items count: got=%d want=%d", len(got.Items), len(order1.Items))
	}
	for i, item := range got.Items {
		if item.ProductID != order1.Items[i].ProductID || item.PriceMinor != order1.Items[i].PriceMinor {
			t.Fatalf("unexpected item %d: %+v", i, item)
		}
	}

	listed, err := repo.ListByCustomer("customer-1", 1)
	if err != nil {
		t.Fatalf("list by customer with limit: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != order2.ID {
		t.Fatalf("unexpected list result with limit: %+v", listed)
	}

	all, err := repo.ListByCustomer("customer-1", 0)
	if err != nil {
		t.Fatalf("list by customer without limit: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}
}

func TestOrderRepository_PostgresErrors(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)
	seedCustomerForIntegrationTest(t, store, "customer-2")

	now := time.Now().UTC().Round(time.Microsecond)
	base := sampleOrder("order-errors", "customer-2", now)

	if _, err := repo.Get("missing-order"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	if err := repo.Create(base); err != nil {
		t.Fatalf("create order: %v", err)
	}
	if err := repo.Create(base); !errors.Is(err, domain.ErrOrderAlreadyExists) {
		t.Fatalf("expected ErrOrderAlreadyExists, got %v", err)
	}

	listed, err := repo.ListByCustomer("unknown-customer", 0)
	if err != nil {
		t.Fatalf("list unknown customer: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty list, got %d orders", len(listed))
	}
}
