package entities

import (
	"reflect"
	"testing"
)

func TestCompareThreeQuotes(t *testing.T) {
	quotes := []QuoteView{
		{ID: "q-a", LineItems: []LineItem{{Category: "도배", UnitPrice: 100_000, Quantity: 1}}},
		{ID: "q-b", LineItems: []LineItem{{Category: "도배", UnitPrice: 120_000, Quantity: 1}}},
		{ID: "q-c", LineItems: []LineItem{
			{Category: "도배", UnitPrice: 100_000, Quantity: 1},
			{Category: "타일", UnitPrice: 50_000, Quantity: 1},
		}},
	}

	result := Compare(quotes, nil)

	if result.MappingRate != 1.0 {
		t.Fatalf("MappingRate = %v, want 1.0", result.MappingRate)
	}
	if len(result.Table) != 2 {
		t.Fatalf("table rows = %d, want 2", len(result.Table))
	}
	if result.Table[0].Category != "도배" || result.Table[1].Category != "타일" {
		t.Fatalf("unexpected category order: %s, %s", result.Table[0].Category, result.Table[1].Category)
	}
	// 타일 has a single non-null value, so only 도배 is a difference.
	if len(result.Differences) != 1 {
		t.Fatalf("differences = %d, want 1", len(result.Differences))
	}
	if result.Differences[0].Field != "도배" {
		t.Fatalf("difference field = %s, want 도배", result.Differences[0].Field)
	}
	if !reflect.DeepEqual(result.Differences[0].Values, []int64{100_000, 120_000, 100_000}) {
		t.Fatalf("difference values = %v", result.Differences[0].Values)
	}
	if result.Table[1].Amounts["q-a"] != nil || result.Table[1].Amounts["q-b"] != nil {
		t.Fatalf("타일 must be absent for quotes without it")
	}
	if amount := result.Table[1].Amounts["q-c"]; amount == nil || *amount != 50_000 {
		t.Fatalf("타일 contribution for q-c wrong: %v", amount)
	}
}

func TestCompareUsesFirstMatchingLineItem(t *testing.T) {
	quotes := []QuoteView{
		{ID: "q-a", LineItems: []LineItem{
			{Category: "도배", UnitPrice: 100_000, Quantity: 1},
			{Category: "도배", UnitPrice: 999_999, Quantity: 1},
		}},
		{ID: "q-b", LineItems: []LineItem{{Category: "도배", UnitPrice: 100_000, Quantity: 1}}},
	}

	result := Compare(quotes, nil)
	if amount := result.Table[0].Amounts["q-a"]; amount == nil || *amount != 100_000 {
		t.Fatalf("expected first matching item to win, got %v", amount)
	}
	if len(result.Differences) != 0 {
		t.Fatalf("identical contributions must not register as a difference")
	}
}

func TestCompareEmptyInputMapsToZeroRate(t *testing.T) {
	quotes := []QuoteView{
		{ID: "q-a"},
		{ID: "q-b"},
	}
	result := Compare(quotes, nil)
	if result.MappingRate != 0.0 {
		t.Fatalf("MappingRate = %v, want 0.0 on empty input", result.MappingRate)
	}
	if len(result.Table) != 0 || len(result.Differences) != 0 {
		t.Fatalf("empty input must produce an empty comparison")
	}
}

func TestCompareIsIdempotent(t *testing.T) {
	quotes := []QuoteView{
		{ID: "q-a", LineItems: []LineItem{{Category: "도배", UnitPrice: 100_000, Quantity: 2}}},
		{ID: "q-b", LineItems: []LineItem{{Category: "철거", UnitPrice: 80_000, Quantity: 1}}},
	}
	first := Compare(quotes, nil)
	second := Compare(quotes, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("comparison must be deterministic")
	}
}

func TestCompareWithAliasNormalizer(t *testing.T) {
	normalizer := AliasCategoryNormalizer{Aliases: map[string]string{
		"타일공사": "타일",
	}}
	quotes := []QuoteView{
		{ID: "q-a", LineItems: []LineItem{{Category: "타일", UnitPrice: 50_000, Quantity: 1}}},
		{ID: "q-b", LineItems: []LineItem{{Category: "타일공사", UnitPrice: 60_000, Quantity: 1}}},
	}

	result := Compare(quotes, normalizer)
	if len(result.Table) != 1 {
		t.Fatalf("aliased categories must fold into one row, got %d", len(result.Table))
	}
	if len(result.Differences) != 1 {
		t.Fatalf("folded category with two prices must be a difference")
	}

	exact := Compare(quotes, ExactCategoryNormalizer{})
	if len(exact.Table) != 2 {
		t.Fatalf("exact matching must keep both labels, got %d rows", len(exact.Table))
	}
}

func TestDecodeLineItemsShapes(t *testing.T) {
	array := []byte(`[{"category":"도배","unit_price":100000,"quantity":1}]`)
	if items := DecodeLineItems(array); len(items) != 1 || items[0].Category != "도배" {
		t.Fatalf("array payload decoded wrong: %v", items)
	}

	single := []byte(`{"category":"타일","unit_price":50000,"quantity":2}`)
	if items := DecodeLineItems(single); len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("single-object payload decoded wrong: %v", items)
	}

	if items := DecodeLineItems([]byte(`"garbage"`)); len(items) != 0 {
		t.Fatalf("malformed payload must degrade to empty, got %v", items)
	}
	if items := DecodeLineItems(nil); len(items) != 0 {
		t.Fatalf("absent payload must degrade to empty, got %v", items)
	}
}
