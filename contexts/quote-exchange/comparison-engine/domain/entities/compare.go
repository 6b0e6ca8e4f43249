package entities

import "math"

const (
	MinComparisonQuotes = 2
	MaxComparisonQuotes = 3
)

// QuoteView is the slice of a quote the comparator needs.
type QuoteView struct {
	ID        string
	LineItems []LineItem
}

// Row is one comparison table row: a category and the contribution of each
// quote, keyed by quote identifier. A nil amount means the quote has no line
// item in that category.
type Row struct {
	Category string
	Amounts  map[string]*int64
}

// Difference is a category where quotes disagree, with the non-null
// contributions in quote order.
type Difference struct {
	Field  string
	Values []int64
}

type ComparisonResult struct {
	MappingRate float64
	Differences []Difference
	Table       []Row
}

// Compare builds the side-by-side comparison of two or three quotes. The
// category union preserves first-seen order across quotes; a quote's
// contribution per category comes from its first matching line item. The
// cardinality precondition is the caller's responsibility.
func Compare(quotes []QuoteView, normalizer CategoryNormalizer) ComparisonResult {
	if normalizer == nil {
		normalizer = ExactCategoryNormalizer{}
	}

	var allCategories []string
	seen := make(map[string]struct{})
	contributions := make(map[string]map[string]*int64)
	for _, quote := range quotes {
		perCategory := make(map[string]*int64, len(quote.LineItems))
		for _, item := range quote.LineItems {
			category := normalizer.Canonical(item.Category)
			if category == "" {
				continue
			}
			if _, ok := seen[category]; !ok {
				seen[category] = struct{}{}
				allCategories = append(allCategories, category)
			}
			if _, ok := perCategory[category]; ok {
				continue
			}
			amount := int64(math.Round(float64(item.UnitPrice) * item.Quantity))
			perCategory[category] = &amount
		}
		contributions[quote.ID] = perCategory
	}

	mappingRate := 0.0
	if len(allCategories) > 0 {
		mapped := 0
		for _, category := range allCategories {
			for _, quote := range quotes {
				if contributions[quote.ID][category] != nil {
					mapped++
					break
				}
			}
		}
		mappingRate = float64(mapped) / float64(len(allCategories))
	}

	table := make([]Row, 0, len(allCategories))
	differences := make([]Difference, 0)
	for _, category := range allCategories {
		amounts := make(map[string]*int64, len(quotes))
		values := make([]int64, 0, len(quotes))
		distinct := make(map[int64]struct{})
		for _, quote := range quotes {
			amount := contributions[quote.ID][category]
			amounts[quote.ID] = amount
			if amount != nil {
				values = append(values, *amount)
				distinct[*amount] = struct{}{}
			}
		}
		table = append(table, Row{Category: category, Amounts: amounts})
		if len(distinct) > 1 {
			differences = append(differences, Difference{Field: category, Values: values})
		}
	}

	return ComparisonResult{
		MappingRate: mappingRate,
		Differences: differences,
		Table:       table,
	}
}
