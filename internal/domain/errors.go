package domain

import "errors"

var (
	// ErrCustomerNotFound возвращается, если покупатель не найден в справочнике.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrNoProductsFound возвращается, если батчевый поиск не нашёл ни одного товара.
	ErrNoProductsFound = errors.New("no products found")
	// ErrProductNotFound возвращается, если конкретный товар из запроса не найден в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock возвращается, если запрошенное количество превышает остаток.
	ErrInsufficientStock = errors.New("insufficient stock")

	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отрицательной суммы заказа.
	ErrAmountNegative = errors.New("amount_minor must be non-negative")
	// Ошибка расхождения суммы заказа с суммой позиций.
	ErrAmountMismatch = errors.New("amount_minor does not match items total")
	// Ошибка отсутствующего идентификатора товара.
	ErrProductIDRequired = errors.New("product_id is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item qty must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка отрицательного складского остатка.
	ErrStockNegative = errors.New("stock qty must be non-negative")

	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists сигнализирует о конфликте идентификаторов при сохранении.
	ErrOrderAlreadyExists = errors.New("order already exists")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// IsBusinessRejection проверяет, относится ли ошибка к бизнес-отказам
// размещения заказа (в отличие от инфраструктурных сбоев коллабораторов).
func IsBusinessRejection(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrNoProductsFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrInsufficientStock)
}
