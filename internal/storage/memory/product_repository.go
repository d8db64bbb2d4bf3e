package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory каталог товаров
// для локальной разработки и тестов.
func NewProductRepository() *productRepositoryInMemory {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Add сохраняет товар, перезаписывая запись с тем же ID.
func (r *productRepositoryInMemory) Add(product domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[product.ID] = product
}

// FindAllByID возвращает товары по набору идентификаторов.
// Порядок результата следует порядку ids, повторы и отсутствующие
// идентификаторы пропускаются.
func (r *productRepositoryInMemory) FindAllByID(ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(ids))
	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := r.items[id]; ok {
			result = append(result, product)
		}
	}

	return result, nil
}

// UpdateQuantity применяет новые остатки атомарно для всего батча:
// сначала проверяется весь набор, затем выполняется запись.
func (r *productRepositoryInMemory) UpdateQuantity(updates []domain.StockUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, update := range updates {
		if _, ok := r.items[update.ProductID]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, update.ProductID)
		}
		if update.Qty < 0 {
			return fmt.Errorf("%w: %s", domain.ErrStockNegative, update.ProductID)
		}
	}

	now := time.Now().UTC()
	for _, update := range updates {
		product := r.items[update.ProductID]
		product.Qty = update.Qty
		product.UpdatedAt = now
		r.items[update.ProductID] = product
	}

	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
