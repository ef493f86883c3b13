package repositories

import (
	"gerai/internal/models"
)

// OrderRepository defines the interface for order data access. Create is a
// single atomic insert; implementations enforce uniqueness of OrderNumber and
// report a violation as ErrDuplicate.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
}
