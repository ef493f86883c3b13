package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gerai/internal/models"
	"gerai/internal/pricing"
	"gerai/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultPaymentMethod is applied when the client does not specify one.
const DefaultPaymentMethod = "invoice"

// ErrInvalidTransition is returned for a status change the order lifecycle
// does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

// allowedTransitions is the full order lifecycle: registered -> paid -> delivered.
var allowedTransitions = map[string]string{
	models.OrderStatusRegistered: models.OrderStatusPaid,
	models.OrderStatusPaid:       models.OrderStatusDelivered,
}

// EventPublisher publishes order lifecycle events to the message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// StockReserver reserves catalog stock for order lines before an order is
// persisted. Implementations release any partially reserved lines themselves
// when a reservation fails midway.
type StockReserver interface {
	Reserve(items []pricing.ItemInput) error
	Release(items []pricing.ItemInput)
}

// CreateOrderInput is the input for order creation. Status is deliberately
// absent: a freshly created order is always registered, regardless of
// anything the client sends.
type CreateOrderInput struct {
	CustomerID     string
	Items          []pricing.ItemInput
	DiscountAmount decimal.Decimal
	PaymentMethod  string
}

// OrderService assembles, persists, and queries orders. Creation is a single
// atomic insert: either the fully priced order is written or nothing is.
type OrderService struct {
	orderRepo repositories.OrderRepository
	stock     StockReserver
	events    EventPublisher
}

// NewOrderService creates a new OrderService. events may be nil when no
// broker is configured; stock may be nil when catalog enforcement is off.
func NewOrderService(orderRepo repositories.OrderRepository, stock StockReserver, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		stock:     stock,
		events:    events,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its storage ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrderByNumber retrieves a single order by its human-readable number.
func (s *OrderService) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	return s.orderRepo.GetByOrderNumber(orderNumber)
}

// CreateOrder runs the full creation flow: price the submitted items, reserve
// stock, assemble the order record, and persist it in one write.
//
// The order number is generated fresh on every call; two identical requests
// produce two distinct orders. A collision with an existing number is not
// retried here: the unique index in storage rejects it and the failure
// surfaces as repositories.ErrDuplicate, which callers may safely retry.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	// Pricing validates the input before any arithmetic or side effect runs.
	quote, err := pricing.Price(input.Items, input.DiscountAmount)
	if err != nil {
		return nil, err
	}

	if s.stock != nil {
		if err := s.stock.Reserve(input.Items); err != nil {
			return nil, fmt.Errorf("reserve stock: %w", err)
		}
	}

	items := make([]models.OrderItem, len(quote.Items))
	for i, priced := range quote.Items {
		items[i] = models.OrderItem{
			ProductID:   priced.ProductID,
			ProductName: priced.ProductName,
			Quantity:    priced.Quantity,
			UnitPrice:   priced.UnitPrice,
			TaxRate:     priced.TaxRate,
			Subtotal:    priced.Subtotal,
		}
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	newOrder := &models.Order{
		ID:             uuid.New().String(),
		OrderNumber:    NewOrderNumber(),
		CustomerID:     input.CustomerID,
		Items:          items,
		Subtotal:       quote.Subtotal,
		TaxAmount:      quote.TaxAmount,
		DiscountAmount: quote.DiscountAmount,
		TotalAmount:    quote.TotalAmount,
		Status:         models.OrderStatusRegistered,
		PaymentMethod:  paymentMethod,
		RegisteredAt:   time.Now(),
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		// The order never existed; give the reserved stock back.
		if s.stock != nil {
			s.stock.Release(input.Items)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishEvent("order.created", map[string]interface{}{
		"order_number": newOrder.OrderNumber,
		"customer_id":  newOrder.CustomerID,
		"status":       newOrder.Status,
		"total_amount": newOrder.TotalAmount,
	})

	return newOrder, nil
}

// UpdateOrderStatus advances an order along its lifecycle. Only the
// registered -> paid -> delivered transitions are allowed; status is the only
// field that ever changes after creation.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}

	if allowedTransitions[order.Status] != status {
		return fmt.Errorf("cannot move order %s from %s to %s: %w",
			order.OrderNumber, order.Status, status, ErrInvalidTransition)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	s.publishEvent("order.status_updated", map[string]interface{}{
		"order_number": order.OrderNumber,
		"status":       status,
	})

	return nil
}

// publishEvent emits an order event to the broker. Publishing is best-effort:
// a broker failure is logged and never fails the order operation.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
