package entities

import "testing"

func TestValidateQuoteShapeAcceptsValidQuote(t *testing.T) {
	items := []LineItem{
		{Category: "도배", UnitPrice: 10_000, Quantity: 20},
		{Category: "타일", UnitPrice: 35_000, Quantity: 8.5},
	}
	violations := ValidateQuoteShape("p-1", "v-1", items, 497_500)
	if len(violations) != 0 {
		t.Fatalf("violations = %v, want none", violations)
	}
}

func TestValidateQuoteShapeItemizesViolations(t *testing.T) {
	items := []LineItem{
		{Category: "", UnitPrice: -1, Quantity: 0},
	}
	violations := ValidateQuoteShape("", "v-1", items, 0)
	// project_id, category, unit_price, quantity, total_amount
	if len(violations) != 5 {
		t.Fatalf("violations = %d (%v), want 5", len(violations), violations)
	}
}

func TestValidateQuoteShapeRequiresLineItems(t *testing.T) {
	violations := ValidateQuoteShape("p-1", "v-1", nil, 1_000)
	if len(violations) != 1 {
		t.Fatalf("violations = %v, want exactly the empty-items message", violations)
	}
}

func TestComputedTotalRoundsFractionalQuantities(t *testing.T) {
	items := []LineItem{
		{Category: "도배", UnitPrice: 333, Quantity: 1.5},
	}
	if got := ComputedTotal(items); got != 500 {
		t.Fatalf("ComputedTotal = %d, want 500", got)
	}
}

func TestReconcileTotalWithinTolerance(t *testing.T) {
	items := []LineItem{
		{Category: "도배", UnitPrice: 10_000, Quantity: 10},
	}
	if _, ok := ReconcileTotal(items, 100_100); !ok {
		t.Fatalf("gap of exactly 100 must be accepted")
	}
	if computed, ok := ReconcileTotal(items, 100_101); ok {
		t.Fatalf("gap of 101 accepted, computed %d", computed)
	}
}

func TestCanTransitionPendingOnly(t *testing.T) {
	if !CanTransition(QuoteStatusPending, QuoteStatusAccepted) {
		t.Fatalf("pending to accepted must be allowed")
	}
	if !CanTransition(QuoteStatusPending, QuoteStatusExpired) {
		t.Fatalf("pending to expired must be allowed")
	}
	if CanTransition(QuoteStatusAccepted, QuoteStatusRejected) {
		t.Fatalf("accepted is terminal")
	}
	if CanTransition(QuoteStatusPending, QuoteStatus("unknown")) {
		t.Fatalf("unknown target status must be rejected")
	}
}
