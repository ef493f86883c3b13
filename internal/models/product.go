package models

import "gorm.io/gorm"

// Product represents a product in the store catalog.
//
// TaxRate is a percentage in [0,100], the unit the catalog is maintained in.
// Order items carry their tax rate as a fraction in [0,1]; the two are
// deliberately different units and must not be mixed.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	TaxRate     float64 `json:"tax_rate" validate:"gte=0,lte=100"`
	Stock       int     `json:"stock" validate:"gte=0"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
