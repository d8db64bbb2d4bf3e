package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestCustomerRepository_PostgresUpsertAndFind(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewCustomerRepository(store)

	now := time.Now().UTC().Round(time.Microsecond)
	customer := domain.Customer{
		ID:        "customer-1",
		Name:      "Анна",
		Email:     "anna@example.com",
		CreatedAt: now,
	}

	if err := repo.Upsert(customer); err != nil {
		t.Fatalf("upsert customer: %v", err)
	}

	got, err := repo.FindByID(customer.ID)
	if err != nil {
		t.Fatalf("find customer: %v", err)
	}
	if got.ID != customer.ID || got.Name != customer.Name || got.Email != customer.Email {
		t.Fatalf("unexpected customer payload: %+v", got)
	}

	customer.Email = "anna+new@example.com"
	if err := repo.Upsert(customer); err != nil {
		t.Fatalf("upsert updated customer: %v", err)
	}
	got, err = repo.FindByID(customer.ID)
	if err != nil {
		t.Fatalf("find updated customer: %v", err)
	}
	if got.Email != "anna+new@example.com" {
		t.Fatalf("expected updated email, got %s", got.Email)
	}

	if _, err := repo.FindByID("missing-customer"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}
