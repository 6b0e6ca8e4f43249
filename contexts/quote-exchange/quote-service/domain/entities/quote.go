package entities

import "time"

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// LineItem is one priced work category within a quote. UnitPrice is in
// currency minor units; Quantity may be fractional (area-based work).
type LineItem struct {
	Category     string
	UnitPrice    int64
	Quantity     float64
	Included     []string
	Excluded     []string
	Assumptions  []string
	MaterialSpec string
}

type Quote struct {
	ID          string
	ProjectID   string
	VendorID    string
	LineItems   []LineItem
	TotalAmount int64
	ValidUntil  *time.Time
	Status      QuoteStatus
	SubmittedAt time.Time
	UpdatedAt   time.Time
}

// QuoteTemplate is the autofill snapshot captured on submission. Read-only
// for everything except the best-effort save after a successful submit.
type QuoteTemplate struct {
	ID         string
	VendorID   string
	Category   string
	LineItems  []LineItem
	LastUsedAt time.Time
}

// CanTransition reports whether a quote status change is allowed. Pending is
// the only non-terminal status.
func CanTransition(from QuoteStatus, to QuoteStatus) bool {
	if from != QuoteStatusPending {
		return false
	}
	switch to {
	case QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return true
	default:
		return false
	}
}
