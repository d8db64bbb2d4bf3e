package checkout

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Service размещает заказ покупателя против каталога товаров со складским
// учётом: проверяет покупателя и товары, списывает сток одним батчем и
// сохраняет заказ с ценами на момент покупки.
//
// Сервис не хранит состояния и безопасен для конкурентного использования;
// вызовы коллабораторов строго последовательны, внутренних retry нет.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	outbox    domain.OutboxRepository // опциональный outbox для события order.placed
	logger    *log.Entry
	metrics   *metrics.CheckoutMetrics
}

// NewService создаёт рабочий экземпляр сервиса размещения заказов.
func NewService(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}
	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		outbox:    outbox,
		logger:    logger,
		metrics:   metrics.NewCheckoutMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) *Service {
	svc := NewService(customers, products, orders, outbox, logger)
	svc.metrics = nil
	return svc
}

// PlaceOrder размещает заказ: находит покупателя, резолвит товары одним
// батчем, проверяет остатки, списывает сток и сохраняет заказ со
// snapshot-ценами. Любой бизнес-отказ прерывает процесс до первой мутации.
//
// Если сохранение заказа падает после списания стока, сервис компенсирует
// списание, возвращая остатки, наблюдавшиеся на момент валидации.
func (s *Service) PlaceOrder(customerID string, lines []domain.OrderLineRequest) (domain.Order, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordPlaceDuration(time.Since(start))
		}
	}()

	if err := validateRequest(customerID, lines); err != nil {
		return domain.Order{}, s.reject(metrics.RejectReasonInvalidRequest, customerID, err)
	}

	customer, err := s.customers.FindByID(customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.Order{}, s.reject(metrics.RejectReasonCustomerNotFound, customerID, err)
		}
		return domain.Order{}, s.fail(customerID, fmt.Errorf("find customer: %w", err))
	}

	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.FindAllByID(ids)
	if err != nil {
		return domain.Order{}, s.fail(customerID, fmt.Errorf("find products: %w", err))
	}
	if len(products) == 0 {
		return domain.Order{}, s.reject(metrics.RejectReasonNoProductsFound, customerID, domain.ErrNoProductsFound)
	}

	resolved := make(map[string]struct{}, len(products))
	for _, product := range products {
		resolved[product.ID] = struct{}{}
	}
	// Частично не найденные товары отклоняем явно: молча игнорировать
	// неизвестный идентификатор в запросе нельзя.
	for _, line := range lines {
		if _, ok := resolved[line.ProductID]; !ok {
			err := fmt.Errorf("%w: %s", domain.ErrProductNotFound, line.ProductID)
			return domain.Order{}, s.reject(metrics.RejectReasonProductNotFound, customerID, err)
		}
	}

	now := time.Now().UTC()
	items := make([]domain.OrderItem, 0, len(products))
	updates := make([]domain.StockUpdate, 0, len(products))
	restores := make([]domain.StockUpdate, 0, len(products))
	var amountSum int64

	for _, product := range products {
		line, ok := firstLineFor(product.ID, lines)
		if !ok {
			// Защитная ветка: резолв выводится из запроса и сюда попадать не должен.
			err := fmt.Errorf("%w: %s", domain.ErrProductNotFound, product.ID)
			return domain.Order{}, s.reject(metrics.RejectReasonProductNotFound, customerID, err)
		}

		remaining := product.Qty - line.Qty
		if remaining < 0 {
			err := fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.ID)
			return domain.Order{}, s.reject(metrics.RejectReasonInsufficientStock, customerID, err)
		}

		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			ProductID:  product.ID,
			Qty:        line.Qty,
			PriceMinor: product.PriceMinor,
			CreatedAt:  now,
		})
		updates = append(updates, domain.StockUpdate{ProductID: product.ID, Qty: remaining})
		restores = append(restores, domain.StockUpdate{ProductID: product.ID, Qty: product.Qty})
		amountSum += int64(line.Qty) * product.PriceMinor
	}

	if err := s.products.UpdateQuantity(updates); err != nil {
		return domain.Order{}, s.fail(customerID, fmt.Errorf("update stock: %w", err))
	}

	order := domain.Order{
		ID:          uuid.NewString(),
		CustomerID:  customer.ID,
		Status:      domain.OrderStatusPlaced,
		AmountMinor: amountSum,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.orders.Create(order); err != nil {
		s.restoreStock(order.ID, restores)
		return domain.Order{}, s.fail(customerID, fmt.Errorf("persist order: %w", err))
	}

	s.enqueueOrderPlaced(order)

	if s.metrics != nil {
		s.metrics.RecordOrderPlaced(len(order.Items))
	}
	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"items_count":  len(order.Items),
		"amount_minor": order.AmountMinor,
	}).Info("order placed")

	return order, nil
}

// restoreStock возвращает остатки, наблюдавшиеся на момент валидации
// (компенсация после неудачного сохранения заказа).
func (s *Service) restoreStock(orderID string, restores []domain.StockUpdate) {
	if err := s.products.UpdateQuantity(restores); err != nil {
		if s.metrics != nil {
			s.metrics.RecordStockRestoreFailure()
		}
		s.logger.WithError(err).WithField("order_id", orderID).Error("stock restore failed, stock left decremented without order")
		return
	}
	s.logger.WithField("order_id", orderID).Warn("order persistence failed, stock restored")
}

// enqueueOrderPlaced кладёт событие order.placed в outbox (best-effort:
// заказ уже сохранён, ошибка постановки в очередь его не отменяет).
func (s *Service) enqueueOrderPlaced(order domain.Order) {
	if s.outbox == nil {
		return
	}

	eventItems := make([]kafka.OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		eventItems = append(eventItems, kafka.OrderEventItem{
			ProductID:  item.ProductID,
			Qty:        item.Qty,
			PriceMinor: item.PriceMinor,
		})
	}
	event := kafka.NewOrderPlacedEvent(order.ID, order.CustomerID, order.AmountMinor, eventItems)

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to marshal order.placed event")
		return
	}

	if _, err := s.outbox.Enqueue(domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   order.ID,
		EventType:     string(kafka.EventTypeOrderPlaced),
		Payload:       payload,
	}); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to enqueue order.placed event")
	}
}

// reject фиксирует бизнес-отказ и возвращает ошибку вызывающему как есть.
func (s *Service) reject(reason, customerID string, err error) error {
	if s.metrics != nil {
		s.metrics.RecordOrderRejected(reason)
	}
	s.logger.WithError(err).WithFields(log.Fields{
		"customer_id": customerID,
		"reason":      reason,
	}).Debug("order placement rejected")
	return err
}

// fail фиксирует инфраструктурный сбой коллаборатора.
func (s *Service) fail(customerID string, err error) error {
	if s.metrics != nil {
		s.metrics.RecordOrderFailed()
	}
	s.logger.WithError(err).WithField("customer_id", customerID).Error("order placement failed")
	return err
}

func validateRequest(customerID string, lines []domain.OrderLineRequest) error {
	if customerID == "" {
		return domain.ErrCustomerRequired
	}
	if len(lines) == 0 {
		return domain.ErrItemsRequired
	}
	for _, line := range lines {
		if errs := line.Validate(); len(errs) > 0 {
			return errs[0]
		}
	}
	return nil
}

// firstLineFor возвращает первую позицию запроса с данным товаром.
// Повторы одного товара в запросе не сливаются: обрабатывается первая
// подходящая позиция, как и при резолве из каталога.
func firstLineFor(productID string, lines []domain.OrderLineRequest) (domain.OrderLineRequest, bool) {
	for _, line := range lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return domain.OrderLineRequest{}, false
}
