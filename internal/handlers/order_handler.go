package handlers

import (
	"errors"
	"log"

	"gerai/internal/pricing"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// OrderItemRequest is one submitted order line. Monetary ranges (unit price,
// tax rate fraction, quantity floor) are enforced by the pricing engine so
// all violations come back in a single pass.
type OrderItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// CreateOrderRequest is the request body for order creation. There is no
// status field: a new order is always registered.
type CreateOrderRequest struct {
	CustomerID     string             `json:"customer_id" validate:"omitempty,uuid"`
	Items          []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	PaymentMethod  string             `json:"payment_method" validate:"omitempty,max=50"`
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "Could not retrieve orders")
	}
	return respondData(c, fiber.StatusOK, "Orders retrieved", orders)
}

// HandleGetOrderByID retrieves a single order by its storage ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "Order not found")
		}
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return respondError(c, fiber.StatusInternalServerError, "Could not retrieve order")
	}
	return respondData(c, fiber.StatusOK, "Order retrieved", order)
}

// HandleCreateOrder creates a new order from the submitted items.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, formatValidationErrors(err))
	}

	// The customer defaults to the authenticated user when not supplied.
	customerID := req.CustomerID
	if customerID == "" {
		if id, ok := c.Locals("user_id").(string); ok {
			customerID = id
		}
	}

	items := make([]pricing.ItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = pricing.ItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxRate:     item.TaxRate,
		}
	}

	order, err := h.service.CreateOrder(services.CreateOrderInput{
		CustomerID:     customerID,
		Items:          items,
		DiscountAmount: req.DiscountAmount,
		PaymentMethod:  req.PaymentMethod,
	})
	if err != nil {
		var ve *pricing.ValidationError
		switch {
		case errors.As(err, &ve):
			return respondValidationErrors(c, ve.Violations)
		case errors.Is(err, repositories.ErrInsufficientStock), errors.Is(err, repositories.ErrNotFound):
			// Stock reservation rejected the order.
			return respondError(c, fiber.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, repositories.ErrDuplicate):
			// Order number collided in storage; the whole request may be
			// retried and will draw a fresh number.
			return respondError(c, fiber.StatusServiceUnavailable, "Order could not be created, please retry")
		default:
			log.Printf("Error creating order: %v", err)
			return respondError(c, fiber.StatusInternalServerError, "Could not create order")
		}
	}

	return respondData(c, fiber.StatusCreated, "Order created successfully", order)
}

// UpdateOrderStatusRequest is the request body for a status transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid delivered"`
}

// HandleUpdateOrderStatus advances an order along its lifecycle.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, formatValidationErrors(err))
	}

	if err := h.service.UpdateOrderStatus(orderID, req.Status); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return respondError(c, fiber.StatusNotFound, "Order not found")
		case errors.Is(err, services.ErrInvalidTransition):
			return respondError(c, fiber.StatusUnprocessableEntity, err.Error())
		default:
			log.Printf("Error updating order status for order %s: %v", orderID, err)
			return respondError(c, fiber.StatusInternalServerError, "Could not update order status")
		}
	}

	return respondData(c, fiber.StatusOK, "Order status updated", fiber.Map{
		"id":     orderID,
		"status": req.Status,
	})
}
