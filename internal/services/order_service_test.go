package services_test

import (
	"fmt"
	"testing"

	"gerai/internal/models"
	"gerai/internal/pricing"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	args := m.Called(orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(id string, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

// MockStockReserver is a mock implementation of services.StockReserver
type MockStockReserver struct {
	mock.Mock
}

func (m *MockStockReserver) Reserve(items []pricing.ItemInput) error {
	args := m.Called(items)
	return args.Error(0)
}

func (m *MockStockReserver) Release(items []pricing.ItemInput) {
	m.Called(items)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func orderInput() services.CreateOrderInput {
	return services.CreateOrderInput{
		CustomerID: "cust-1",
		Items: []pricing.ItemInput{
			{
				ProductID:   "prod-1",
				ProductName: "Laptop",
				Quantity:    2,
				UnitPrice:   decimal.RequireFromString("10"),
				TaxRate:     decimal.RequireFromString("0.1"),
			},
		},
		DiscountAmount: decimal.RequireFromString("1"),
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockStock := new(MockStockReserver)
	mockEvents := new(MockEventPublisher)
	service := services.NewOrderService(mockRepo, mockStock, mockEvents)

	var persisted *models.Order
	mockStock.On("Reserve", mock.Anything).Return(nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		persisted = args.Get(0).(*models.Order)
	}).Return(nil).Once()
	mockEvents.On("Publish", "order.created", mock.Anything).Return(nil).Once()

	order, err := service.CreateOrder(orderInput())
	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.Same(t, persisted, order)

	assert.Equal(t, "20.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "2.00", order.TaxAmount.StringFixed(2))
	assert.Equal(t, "1.00", order.DiscountAmount.StringFixed(2))
	assert.Equal(t, "21.00", order.TotalAmount.StringFixed(2))
	assert.Equal(t, "20.00", order.Items[0].Subtotal.StringFixed(2))

	assert.Equal(t, models.OrderStatusRegistered, order.Status)
	assert.Equal(t, services.DefaultPaymentMethod, order.PaymentMethod)
	assert.Equal(t, "cust-1", order.CustomerID)
	assert.NotEmpty(t, order.ID)
	assert.NotEmpty(t, order.OrderNumber)
	assert.False(t, order.RegisteredAt.IsZero())

	mockRepo.AssertExpectations(t)
	mockStock.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestOrderService_CreateOrder_DistinctOrderNumbers(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil, nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Twice()

	// Two identical requests must yield two orders with distinct numbers:
	// creation is not idempotent by default.
	first, err := service.CreateOrder(orderInput())
	assert.NoError(t, err)
	second, err := service.CreateOrder(orderInput())
	assert.NoError(t, err)

	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
	assert.NotEqual(t, first.ID, second.ID)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_PaymentMethodHonored(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, nil, nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	input := orderInput()
	input.PaymentMethod = "credit_card"
	order, err := service.CreateOrder(input)
	assert.NoError(t, err)
	assert.Equal(t, "credit_card", order.PaymentMethod)
}

func TestOrderService_CreateOrder_ValidationFailsBeforeSideEffects(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockStock := new(MockStockReserver)
	service := services.NewOrderService(mockRepo, mockStock, nil)

	input := orderInput()
	input.Items = nil

	order, err := service.CreateOrder(input)
	assert.Nil(t, order)

	var ve *pricing.ValidationError
	assert.ErrorAs(t, err, &ve)

	// Neither stock nor storage may be touched for invalid input.
	mockStock.AssertNotCalled(t, "Reserve", mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_CreateOrder_InsufficientStock(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockStock := new(MockStockReserver)
	service := services.NewOrderService(mockRepo, mockStock, nil)

	mockStock.On("Reserve", mock.Anything).
		Return(fmt.Errorf("product with ID prod-1: %w", repositories.ErrInsufficientStock)).Once()

	order, err := service.CreateOrder(orderInput())
	assert.Nil(t, order)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockStock.AssertExpectations(t)
}

func TestOrderService_CreateOrder_ConflictReleasesStock(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockStock := new(MockStockReserver)
	service := services.NewOrderService(mockRepo, mockStock, nil)

	mockStock.On("Reserve", mock.Anything).Return(nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).
		Return(fmt.Errorf("order number X: %w", repositories.ErrDuplicate)).Once()
	mockStock.On("Release", mock.Anything).Return().Once()

	order, err := service.CreateOrder(orderInput())
	assert.Nil(t, order)
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	mockRepo.AssertExpectations(t)
	mockStock.AssertExpectations(t)
}

func TestOrderService_CreateOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewOrderService(mockRepo, nil, mockEvents)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mockEvents.On("Publish", "order.created", mock.Anything).
		Return(fmt.Errorf("broker unavailable")).Once()

	order, err := service.CreateOrder(orderInput())
	assert.NoError(t, err)
	assert.NotNil(t, order)
	mockEvents.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewOrderService(mockRepo, nil, mockEvents)

	registered := &models.Order{ID: "order-1", OrderNumber: "ORD-X", Status: models.OrderStatusRegistered}
	paid := &models.Order{ID: "order-2", OrderNumber: "ORD-Y", Status: models.OrderStatusPaid}
	delivered := &models.Order{ID: "order-3", OrderNumber: "ORD-Z", Status: models.OrderStatusDelivered}

	// registered -> paid is allowed
	mockRepo.On("GetByID", "order-1").Return(registered, nil).Once()
	mockRepo.On("UpdateStatus", "order-1", models.OrderStatusPaid).Return(nil).Once()
	mockEvents.On("Publish", "order.status_updated", mock.Anything).Return(nil).Once()
	assert.NoError(t, service.UpdateOrderStatus("order-1", models.OrderStatusPaid))

	// paid -> delivered is allowed
	mockRepo.On("GetByID", "order-2").Return(paid, nil).Once()
	mockRepo.On("UpdateStatus", "order-2", models.OrderStatusDelivered).Return(nil).Once()
	mockEvents.On("Publish", "order.status_updated", mock.Anything).Return(nil).Once()
	assert.NoError(t, service.UpdateOrderStatus("order-2", models.OrderStatusDelivered))

	// registered -> delivered skips a step and is rejected
	mockRepo.On("GetByID", "order-1").Return(registered, nil).Once()
	err := service.UpdateOrderStatus("order-1", models.OrderStatusDelivered)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	// delivered is terminal
	mockRepo.On("GetByID", "order-3").Return(delivered, nil).Once()
	err = service.UpdateOrderStatus("order-3", models.OrderStatusRegistered)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	// unknown status strings are rejected
	mockRepo.On("GetByID", "order-1").Return(registered, nil).Once()
	err = service.UpdateOrderStatus("order-1", "cancelled")
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}
