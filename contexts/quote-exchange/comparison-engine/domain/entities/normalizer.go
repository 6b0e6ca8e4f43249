package entities

import "encoding/json"

// LineItem is the normalized shape the comparator works with. Raw stored
// line items carry more fields; only these matter for comparison.
type LineItem struct {
	Category  string  `json:"category"`
	UnitPrice int64   `json:"unit_price"`
	Quantity  float64 `json:"quantity"`
}

// DecodeLineItems converts a quote's raw line-item payload into an ordered
// slice. The payload may be an array, a single object, or malformed; the
// decoder always degrades to an empty slice rather than failing, since it
// feeds read-only comparison.
func DecodeLineItems(raw []byte) []LineItem {
	if len(raw) == 0 {
		return nil
	}

	var items []LineItem
	if err := json.Unmarshal(raw, &items); err == nil {
		return items
	}

	var single LineItem
	if err := json.Unmarshal(raw, &single); err == nil {
		return []LineItem{single}
	}
	return nil
}
