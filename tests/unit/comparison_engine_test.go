package unit

import (
	"context"
	"errors"
	"reflect"
	"testing"

	comparisonengine "renopick/contexts/quote-exchange/comparison-engine"
	domainerrors "renopick/contexts/quote-exchange/comparison-engine/domain/errors"
	"renopick/contexts/quote-exchange/comparison-engine/ports"
)

func seededComparisonModule() comparisonengine.Module {
	return comparisonengine.NewInMemoryModule([]ports.QuoteRecord{
		{
			ID:        "quote-a",
			ProjectID: "project-1",
			LineItems: []byte(`[{"category":"도배","unit_price":100000,"quantity":1}]`),
		},
		{
			ID:        "quote-b",
			ProjectID: "project-1",
			LineItems: []byte(`[{"category":"도배","unit_price":120000,"quantity":1}]`),
		},
		{
			ID:        "quote-c",
			ProjectID: "project-1",
			LineItems: []byte(`[{"category":"도배","unit_price":100000,"quantity":1},{"category":"타일","unit_price":50000,"quantity":1}]`),
		},
		{
			ID:        "quote-other",
			ProjectID: "project-2",
			LineItems: []byte(`[{"category":"도배","unit_price":90000,"quantity":1}]`),
		},
	}, nil)
}

func TestComparisonThreeQuotes(t *testing.T) {
	module := seededComparisonModule()

	resp, err := module.Handler.CompareHandler(context.Background(), "project-1", "quote-a,quote-b,quote-c")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if resp.MappingRate != 1.0 {
		t.Fatalf("mapping rate = %v, want 1.0", resp.MappingRate)
	}
	if len(resp.Table) != 2 {
		t.Fatalf("table rows = %d, want 2", len(resp.Table))
	}
	if len(resp.Differences) != 1 || resp.Differences[0].Field != "도배" {
		t.Fatalf("differences = %v, want only 도배", resp.Differences)
	}
	if !reflect.DeepEqual(resp.Differences[0].Values, []int64{100_000, 120_000, 100_000}) {
		t.Fatalf("difference values = %v", resp.Differences[0].Values)
	}
}

func TestComparisonCardinalityCheckedBeforeStore(t *testing.T) {
	module := seededComparisonModule()

	_, err := module.Handler.CompareHandler(context.Background(), "project-1", "quote-a")
	if !errors.Is(err, domainerrors.ErrInvalidQuoteCardinality) {
		t.Fatalf("expected cardinality error for 1 quote, got %v", err)
	}

	_, err = module.Handler.CompareHandler(context.Background(), "project-1", "quote-a,quote-b,quote-c,quote-other")
	if !errors.Is(err, domainerrors.ErrInvalidQuoteCardinality) {
		t.Fatalf("expected cardinality error for 4 quotes, got %v", err)
	}

	// Missing identifiers with valid cardinality still pass the precondition
	// and fail on lookup instead.
	_, err = module.Handler.CompareHandler(context.Background(), "project-1", "quote-a,missing")
	if !errors.Is(err, domainerrors.ErrQuoteNotFound) {
		t.Fatalf("expected quote not found, got %v", err)
	}
}

func TestComparisonRejectsCrossProjectQuotes(t *testing.T) {
	module := seededComparisonModule()

	_, err := module.Handler.CompareHandler(context.Background(), "project-1", "quote-a,quote-other")
	if !errors.Is(err, domainerrors.ErrQuoteNotFound) {
		t.Fatalf("quotes of another project must read as not found, got %v", err)
	}
}

func TestComparisonIsIdempotent(t *testing.T) {
	module := seededComparisonModule()

	first, err := module.Handler.CompareHandler(context.Background(), "project-1", "quote-a,quote-c")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	second, err := module.Handler.CompareHandler(context.Background(), "project-1", "quote-a,quote-c")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("comparison must be deterministic")
	}
}
