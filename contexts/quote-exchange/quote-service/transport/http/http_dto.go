package httptransport

// ErrorResponse is the shared error body. Details carries the itemized
// schema violations of a rejected submission.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type LineItemDTO struct {
	Category     string   `json:"category"`
	UnitPrice    int64    `json:"unit_price"`
	Quantity     float64  `json:"quantity"`
	Included     []string `json:"included,omitempty"`
	Excluded     []string `json:"excluded,omitempty"`
	Assumptions  []string `json:"assumptions,omitempty"`
	MaterialSpec string   `json:"material_spec,omitempty"`
}

type SubmitQuoteRequest struct {
	ProjectID   string        `json:"project_id"`
	LineItems   []LineItemDTO `json:"line_items"`
	TotalAmount int64         `json:"total_amount"`
	ValidUntil  string        `json:"valid_until,omitempty"`
}

type SubmitQuoteResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submitted_at"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type QuoteDTO struct {
	ID          string        `json:"id"`
	ProjectID   string        `json:"project_id"`
	VendorID    string        `json:"vendor_id"`
	LineItems   []LineItemDTO `json:"line_items"`
	TotalAmount int64         `json:"total_amount"`
	ValidUntil  string        `json:"valid_until,omitempty"`
	Status      string        `json:"status"`
	SubmittedAt string        `json:"submitted_at"`
	UpdatedAt   string        `json:"updated_at"`
}

type QuoteListResponse struct {
	Quotes []QuoteDTO `json:"quotes"`
}

type QuoteTemplateDTO struct {
	ID         string        `json:"id"`
	Category   string        `json:"category,omitempty"`
	LineItems  []LineItemDTO `json:"line_items"`
	LastUsedAt string        `json:"last_used_at"`
}

type AutocompleteResponse struct {
	Templates []QuoteTemplateDTO `json:"templates"`
}
