package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) *productRepository {
	return &productRepository{db: store.DB()}
}

// FindAllByID резолвит набор идентификаторов одним запросом.
// Отсутствующие идентификаторы молча пропускаются.
func (r *productRepository) FindAllByID(ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price_minor, qty, created_at, updated_at
		FROM products
		WHERE id = ANY($1)
		ORDER BY id ASC
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, len(ids))
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.PriceMinor, &product.Qty,
			&product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// UpdateQuantity применяет новые остатки в одной транзакции:
// либо записывается весь батч, либо ничего.
func (r *productRepository) UpdateQuantity(updates []domain.StockUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, update := range updates {
		if update.Qty < 0 {
			err = fmt.Errorf("%w: %s", domain.ErrStockNegative, update.ProductID)
			return err
		}

		var res sql.Result
		res, err = tx.ExecContext(ctx, `
			UPDATE products
			SET qty = $1,
			    updated_at = NOW()
			WHERE id = $2
		`, update.Qty, update.ProductID)
		if err != nil {
			return fmt.Errorf("update product qty: %w", err)
		}

		var affected int64
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			err = fmt.Errorf("%w: %s", domain.ErrProductNotFound, update.ProductID)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit stock update: %w", err)
	}

	return nil
}

// Upsert сохраняет товар (используется при наполнении каталога).
func (r *productRepository) Upsert(product domain.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price_minor, qty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    price_minor = EXCLUDED.price_minor,
		    qty = EXCLUDED.qty,
		    updated_at = NOW()
	`, product.ID, product.Name, product.PriceMinor, product.Qty)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
