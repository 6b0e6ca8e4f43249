package httptransport

// ErrorResponse is the shared error body. CooldownUntil is set only for
// cooldown conflicts so clients can surface a retry-after hint.
type ErrorResponse struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	CooldownUntil string `json:"cooldown_until,omitempty"`
}

type SelectionFiltersDTO struct {
	Specialties []string `json:"specialties,omitempty"`
	Regions     []string `json:"regions,omitempty"`
	MinTicket   *int64   `json:"min_ticket,omitempty"`
}

type DistributeRequest struct {
	MaxVendors int                  `json:"max_vendors,omitempty"`
	Filters    *SelectionFiltersDTO `json:"filters,omitempty"`
}

type DistributeResponse struct {
	RoundID              string   `json:"round_id"`
	DistributedVendorIDs []string `json:"distributed_vendor_ids"`
	DistributedAt        string   `json:"distributed_at"`
	CooldownUntil        string   `json:"cooldown_until"`
}

type CooldownStatusResponse struct {
	Throttled     bool   `json:"throttled"`
	CooldownUntil string `json:"cooldown_until,omitempty"`
}

type AssignmentDTO struct {
	ID            string `json:"id"`
	RoundID       string `json:"round_id"`
	ProjectID     string `json:"project_id"`
	VendorID      string `json:"vendor_id"`
	DistributedAt string `json:"distributed_at"`
	CooldownUntil string `json:"cooldown_until"`
}

type AssignmentListResponse struct {
	Assignments []AssignmentDTO `json:"assignments"`
}
