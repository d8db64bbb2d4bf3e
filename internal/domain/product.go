package domain

import "time"

// Product описывает товар каталога со складским остатком.
// Каталогом владеет внешняя сторона; сервис читает товар и
// запрашивает изменение Qty при размещении заказа.
type Product struct {
	ID   string
	Name string
	// PriceMinor — текущая цена за единицу в минимальных денежных единицах.
	PriceMinor int64
	// Qty — доступный складской остаток.
	Qty       int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет корректность полей товара.
func (p *Product) Validate() []error {
	var errs []error

	if p.ID == "" {
		errs = append(errs, ErrProductIDRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrItemPriceInvalid)
	}
	if p.Qty < 0 {
		errs = append(errs, ErrStockNegative)
	}

	return errs
}

// StockUpdate задаёт новый абсолютный остаток товара для батчевого обновления.
type StockUpdate struct {
	ProductID string
	Qty       int32
}
