package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Customer
}

// NewCustomerRepository возвращает in-memory справочник покупателей
// для локальной разработки и тестов.
func NewCustomerRepository() *customerRepositoryInMemory {
	return &customerRepositoryInMemory{
		items: make(map[string]domain.Customer),
	}
}

// Add сохраняет покупателя, перезаписывая запись с тем же ID.
func (r *customerRepositoryInMemory) Add(customer domain.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[customer.ID] = customer
}

// FindByID возвращает покупателя или ErrCustomerNotFound, если его нет.
func (r *customerRepositoryInMemory) FindByID(id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
