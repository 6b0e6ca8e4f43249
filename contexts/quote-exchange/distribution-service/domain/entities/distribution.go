package entities

import "time"

// CooldownWindow is the fixed throttle after a distribution round during
// which no further round may start for the same project.
const CooldownWindow = 30 * time.Minute

const (
	MinVendorsPerRound     = 1
	MaxVendorsPerRound     = 5
	DefaultVendorsPerRound = 5
)

// VendorProfile is a read-only projection owned by the vendor-management
// subsystem. MinTicket is in currency minor units.
type VendorProfile struct {
	VendorID    string
	Verified    bool
	Specialties []string
	MinTicket   int64
	Regions     []string
}

// ProjectRef is the slice of a project the distributor needs: existence and
// the budget used as the default minimum-ticket ceiling.
type ProjectRef struct {
	ID     string
	Budget int64
}

type SelectionFilters struct {
	Specialties []string
	Regions     []string
	MinTicket   *int64
}

// DistributionRound is append-only. CooldownUntil is always
// DistributedAt + CooldownWindow.
type DistributionRound struct {
	ID            string
	ProjectID     string
	DistributedAt time.Time
	CooldownUntil time.Time
}

// VendorAssignment is the per-vendor audit record of a round. One row per
// (project, vendor, round); never mutated.
type VendorAssignment struct {
	ID            string
	RoundID       string
	ProjectID     string
	VendorID      string
	DistributedAt time.Time
	CooldownUntil time.Time
}

type CooldownStatus struct {
	Throttled     bool
	CooldownUntil time.Time
}
