package entities

import (
	"fmt"
	"math"
	"strings"
)

// TotalTolerance is the accepted absolute gap, in currency minor units,
// between the declared total and the recomputed line-item sum. It absorbs
// per-item rounding on fractional quantities.
const TotalTolerance = 100

// ComputedTotal sums unit price times quantity over all line items, rounding
// each item to the nearest minor unit.
func ComputedTotal(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += int64(math.Round(float64(item.UnitPrice) * item.Quantity))
	}
	return total
}

// ValidateQuoteShape checks the schema of a candidate quote and returns one
// message per violation. An empty result means the shape is acceptable;
// total reconciliation is a separate check.
func ValidateQuoteShape(projectID string, vendorID string, items []LineItem, totalAmount int64) []string {
	var violations []string
	if strings.TrimSpace(projectID) == "" {
		violations = append(violations, "project_id is required")
	}
	if strings.TrimSpace(vendorID) == "" {
		violations = append(violations, "vendor_id is required")
	}
	if len(items) == 0 {
		violations = append(violations, "at least one line item is required")
	}
	for i, item := range items {
		if strings.TrimSpace(item.Category) == "" {
			violations = append(violations, fmt.Sprintf("line_items[%d]: category is required", i))
		}
		if item.UnitPrice < 0 {
			violations = append(violations, fmt.Sprintf("line_items[%d]: unit_price must be zero or positive", i))
		}
		if item.Quantity <= 0 {
			violations = append(violations, fmt.Sprintf("line_items[%d]: quantity must be positive", i))
		}
	}
	if totalAmount <= 0 {
		violations = append(violations, "total_amount must be positive")
	}
	return violations
}

// ReconcileTotal reports whether the declared total is within tolerance of
// the recomputed sum, returning the recomputed value for diagnostics.
func ReconcileTotal(items []LineItem, totalAmount int64) (int64, bool) {
	computed := ComputedTotal(items)
	diff := computed - totalAmount
	if diff < 0 {
		diff = -diff
	}
	return computed, diff <= TotalTolerance
}
