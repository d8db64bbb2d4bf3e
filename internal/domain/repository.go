package domain

// CustomerRepository описывает доступ к справочнику покупателей.
type CustomerRepository interface {
	// FindByID возвращает покупателя или ErrCustomerNotFound, если его нет.
	FindByID(id string) (Customer, error)
}

// ProductRepository описывает доступ к каталогу товаров и складским остаткам.
type ProductRepository interface {
	// FindAllByID возвращает товары по набору идентификаторов одним запросом.
	// Отсутствующие идентификаторы молча пропускаются; пустой результат —
	// штатный случай, который интерпретирует вызывающий код.
	FindAllByID(ids []string) ([]Product, error)
	// UpdateQuantity применяет новые остатки для набора товаров.
	// Батч атомарен: либо применяются все обновления, либо ни одно.
	UpdateQuantity(updates []StockUpdate) error
}

// OrderRepository описывает требования к хранилищу заказов.
// Заказ после создания неизменяем, операций обновления нет.
type OrderRepository interface {
	// Create сохраняет новый заказ. Возвращает ErrOrderAlreadyExists,
	// если запись с таким ID уже существует.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// ListByCustomer возвращает заказы покупателя с опциональным ограничением на количество.
	ListByCustomer(customerID string, limit int) ([]Order, error)
}
