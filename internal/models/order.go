package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle statuses. Every order starts as registered; the only
// mutation allowed after creation is registered -> paid -> delivered.
const (
	OrderStatusRegistered = "registered"
	OrderStatusPaid       = "paid"
	OrderStatusDelivered  = "delivered"
)

// OrderItem represents a single priced line within an order. Subtotal is
// computed server-side at creation time and never taken from the client.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // fraction in [0,1], not the catalog percentage
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Order represents a customer order. Money fields are rounded to cent
// precision when the order is assembled; everything except Status is
// immutable afterwards.
type Order struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber    string          `json:"order_number" gorm:"uniqueIndex;type:varchar(48)"`
	CustomerID     string          `json:"customer_id" gorm:"index;type:varchar(36)"`
	Items          []OrderItem     `json:"items" gorm:"serializer:json"`
	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:decimal(14,2)"`
	TaxAmount      decimal.Decimal `json:"tax_amount" gorm:"type:decimal(14,2)"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:decimal(14,2)"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:decimal(14,2)"`
	Status         string          `json:"status" gorm:"type:varchar(20)"`
	PaymentMethod  string          `json:"payment_method" gorm:"type:varchar(50)"`
	RegisteredAt   time.Time       `json:"registered_at"`
}
