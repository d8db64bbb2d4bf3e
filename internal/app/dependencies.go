package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

// Dependencies содержит собранный граф зависимостей приложения.
type Dependencies struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository
	Outbox    domain.OutboxRepository

	Checkout *checkout.Service

	// Store заполнен только для postgres-драйвера.
	Store *postgres.Store

	Logger *log.Entry
}

// NewDependencies собирает хранилище и checkout-сервис согласно конфигурации.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply postgres migrations: %w", err)
			}
		}
		deps.Store = store
		deps.Customers = postgres.NewCustomerRepository(store)
		deps.Products = postgres.NewProductRepository(store)
		deps.Orders = postgres.NewOrderRepository(store)
		deps.Outbox = postgres.NewOutboxRepository(store)
		logger.Info("postgres storage initialized")
	case StorageDriverMemory:
		customers := memory.NewCustomerRepository()
		products := memory.NewProductRepository()
		seedDemoCatalog(customers, products)
		deps.Customers = customers
		deps.Products = products
		deps.Orders = memory.NewOrderRepository()
		deps.Outbox = memory.NewOutboxRepository()
		logger.Info("in-memory storage initialized with demo catalog")
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}

	deps.Checkout = checkout.NewService(
		deps.Customers,
		deps.Products,
		deps.Orders,
		deps.Outbox,
		logger.WithField("component", "checkout"),
	)

	return deps, nil
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d == nil || d.Store == nil {
		return nil
	}
	return d.Store.Close()
}

type customerSeeder interface {
	Add(customer domain.Customer)
}

type productSeeder interface {
	Add(product domain.Product)
}

// seedDemoCatalog наполняет in-memory хранилище данными для локальной
// разработки, чтобы PlaceOrder работал сразу после запуска.
func seedDemoCatalog(customers customerSeeder, products productSeeder) {
	now := time.Now().UTC()

	customers.Add(domain.Customer{
		ID:        "demo-customer",
		Name:      "Демо покупатель",
		Email:     "demo@example.com",
		CreatedAt: now,
	})

	products.Add(domain.Product{
		ID:         "demo-keyboard",
		Name:       "Клавиатура",
		PriceMinor: 450000,
		Qty:        25,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	products.Add(domain.Product{
		ID:         "demo-mouse",
		Name:       "Мышь",
		PriceMinor: 190000,
		Qty:        40,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}
