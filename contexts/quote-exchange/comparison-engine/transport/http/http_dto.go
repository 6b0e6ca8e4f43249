package httptransport

import "encoding/json"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DifferenceDTO struct {
	Field  string  `json:"field"`
	Values []int64 `json:"values"`
}

// RowDTO flattens per-quote amounts next to the category so a table row
// serializes as {"category": "도배", "<quote-id>": 100000, ...}.
type RowDTO struct {
	Category string
	Amounts  map[string]*int64
}

func (r RowDTO) MarshalJSON() ([]byte, error) {
	payload := make(map[string]any, len(r.Amounts)+1)
	payload["category"] = r.Category
	for quoteID, amount := range r.Amounts {
		payload[quoteID] = amount
	}
	return json.Marshal(payload)
}

type CompareResponse struct {
	MappingRate float64         `json:"mapping_rate"`
	Differences []DifferenceDTO `json:"differences"`
	Table       []RowDTO        `json:"table"`
}
