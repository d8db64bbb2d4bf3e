package domain

import "time"

// Customer описывает покупателя. Справочником покупателей владеет внешняя
// сторона; для размещения заказа достаточно, чтобы покупатель существовал.
type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
