package domain

import "time"

// OrderStatus описывает состояние заказа.
type OrderStatus string

const (
	// OrderStatusPlaced — заказ размещён; сток списан, позиции зафиксированы.
	// Заказ после создания неизменяем, других статусов в этом сервисе нет.
	OrderStatusPlaced OrderStatus = "placed"
)

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ID позиции нужен для однозначной идентификации и аудита.
	ID string
	// ProductID — идентификатор товара в каталоге.
	ProductID string
	// Qty — купленное количество единиц товара.
	Qty int32
	// PriceMinor — цена за единицу на момент размещения заказа
	// (snapshot, в минимальных денежных единицах).
	PriceMinor int64
	// CreatedAt фиксирует момент добавления позиции в заказ.
	CreatedAt time.Time
}

// Order агрегирует размещённый заказ и его позиции.
type Order struct {
	ID          string
	CustomerID  string
	Status      OrderStatus
	AmountMinor int64
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if o.AmountMinor < 0 {
		errs = append(errs, ErrAmountNegative)
	}

	// Сверяем сумму заказа с суммой позиций: qty * price.
	var calc int64
	for _, item := range o.Items {
		if item.ProductID == "" {
			errs = append(errs, ErrProductIDRequired)
		}
		if item.Qty <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		calc += int64(item.Qty) * item.PriceMinor
	}
	if calc != o.AmountMinor {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}

// OrderLineRequest — желаемая позиция покупки со стороны вызывающего кода.
type OrderLineRequest struct {
	ProductID string
	Qty       int32
}

// Validate проверяет корректность запрошенной позиции.
func (l *OrderLineRequest) Validate() []error {
	var errs []error

	if l.ProductID == "" {
		errs = append(errs, ErrProductIDRequired)
	}
	if l.Qty <= 0 {
		errs = append(errs, ErrItemQtyInvalid)
	}

	return errs
}
