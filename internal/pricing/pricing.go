// Package pricing computes order totals from raw order-item input. It is pure:
// it never touches storage and is deterministic for a given input, so the same
// items and discount always produce bit-identical totals.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ItemInput is one raw order line as submitted by the client.
type ItemInput struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // fraction in [0,1], not the catalog percentage
}

// PricedItem is an ItemInput plus its computed, rounded subtotal.
type PricedItem struct {
	ItemInput
	Subtotal decimal.Decimal
}

// Quote is the full monetary breakdown for an order. All fields are rounded
// to cent precision.
type Quote struct {
	Items          []PricedItem
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ValidationError reports every input violation found. It is returned before
// any arithmetic runs, so no partial computation happens on invalid input.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order input: %s", strings.Join(e.Violations, "; "))
}

var maxTaxRate = decimal.NewFromInt(1)

// Round2 rounds a monetary value to cent precision using
// round-half-away-from-zero (decimal.Round semantics), e.g. 1.005 -> 1.01.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Price validates the submitted lines and computes the order totals.
//
// Each item subtotal is rounded to 2 decimals before aggregation; the order
// subtotal is the rounded sum of those already-rounded values. The tax sum is
// accumulated at full precision over the rounded item subtotals and rounded
// once at the end. Finally total = round2(subtotal + tax - discount). This
// exact order of operations is load-bearing: rounding at any other point can
// shift totals by a cent.
func Price(items []ItemInput, discount decimal.Decimal) (*Quote, error) {
	if err := validate(items, discount); err != nil {
		return nil, err
	}

	priced := make([]PricedItem, len(items))
	subtotal := decimal.Zero
	tax := decimal.Zero
	for i, item := range items {
		itemSubtotal := Round2(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		priced[i] = PricedItem{ItemInput: item, Subtotal: itemSubtotal}
		subtotal = subtotal.Add(itemSubtotal)
		tax = tax.Add(itemSubtotal.Mul(item.TaxRate))
	}

	subtotal = Round2(subtotal)
	tax = Round2(tax)
	discount = Round2(discount)

	total := Round2(subtotal.Add(tax).Sub(discount))
	if total.IsNegative() {
		return nil, &ValidationError{Violations: []string{
			fmt.Sprintf("discount %s exceeds order total %s", discount, subtotal.Add(tax)),
		}}
	}

	return &Quote{
		Items:          priced,
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount,
		TotalAmount:    total,
	}, nil
}

// validate collects all shape and range violations at once so the caller can
// report them in a single response.
func validate(items []ItemInput, discount decimal.Decimal) error {
	var violations []string
	if len(items) == 0 {
		violations = append(violations, "order must contain at least one item")
	}
	for i, item := range items {
		if item.ProductName == "" {
			violations = append(violations, fmt.Sprintf("item %d: product name is required", i))
		}
		if item.Quantity < 1 {
			violations = append(violations, fmt.Sprintf("item %d: quantity must be at least 1", i))
		}
		if item.UnitPrice.IsNegative() {
			violations = append(violations, fmt.Sprintf("item %d: unit price must not be negative", i))
		}
		if item.TaxRate.IsNegative() || item.TaxRate.GreaterThan(maxTaxRate) {
			violations = append(violations, fmt.Sprintf("item %d: tax rate must be between 0 and 1", i))
		}
	}
	if discount.IsNegative() {
		violations = append(violations, "discount must not be negative")
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
