package services

import (
	"log"

	"gerai/internal/pricing"
	"gerai/internal/repositories"
)

// CatalogStockReserver reserves order lines against the product catalog. It
// is a deliberate collaborator of the order assembler, not part of pricing:
// pricing stays pure while stock enforcement lives here.
type CatalogStockReserver struct {
	products repositories.ProductRepository
}

// NewCatalogStockReserver creates a CatalogStockReserver over the given
// product repository.
func NewCatalogStockReserver(products repositories.ProductRepository) *CatalogStockReserver {
	return &CatalogStockReserver{
		products: products,
	}
}

// Reserve decrements stock for every line. Each decrement is atomic per
// product; when one line fails (unknown product or insufficient stock) the
// lines reserved so far are released before the error is returned, so a
// failed reservation leaves stock untouched.
func (r *CatalogStockReserver) Reserve(items []pricing.ItemInput) error {
	for i, item := range items {
		if err := r.products.AdjustStock(item.ProductID, -item.Quantity); err != nil {
			r.Release(items[:i])
			return err
		}
	}
	return nil
}

// Release gives previously reserved stock back. Best-effort: a release
// failure is logged, never propagated.
func (r *CatalogStockReserver) Release(items []pricing.ItemInput) {
	for _, item := range items {
		if err := r.products.AdjustStock(item.ProductID, item.Quantity); err != nil {
			log.Printf("Warning: failed to release stock for product %s: %v", item.ProductID, err)
		}
	}
}
