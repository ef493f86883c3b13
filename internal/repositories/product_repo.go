package repositories

import (
	"gerai/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// AdjustStock changes a product's stock level by delta (negative to reserve,
// positive to release). It fails with ErrInsufficientStock when the resulting
// stock would be negative and with ErrNotFound for an unknown product; the
// check and the update are atomic per product.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	AdjustStock(id string, delta int) error
}
