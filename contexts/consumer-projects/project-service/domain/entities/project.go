package entities

import "time"

type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "pending"
	ProjectStatusQuoted     ProjectStatus = "quoted"
	ProjectStatusContracted ProjectStatus = "contracted"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// RentalChecklist records landlord restrictions for rental units.
// Only meaningful when the project is flagged as a rental.
type RentalChecklist struct {
	NoiseRestriction    bool
	DrillingRestriction bool
	WallModification    bool
	FloorModification   bool
	OtherRestrictions   string
}

// Project is immutable after creation except Status and UpdatedAt.
// Budget is stored in currency minor units.
type Project struct {
	ID              string
	OwnerID         string
	Title           string
	SpaceTypes      []string
	AreaValue       float64
	AreaUnit        string
	Budget          int64
	IsRental        bool
	RentalChecklist *RentalChecklist
	Status          ProjectStatus
	SLADeadline     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ProjectPhoto struct {
	ID         string
	ProjectID  string
	StorageURL string
	OrderIndex int
	CreatedAt  time.Time
}

// CanTransition reports whether a status change is allowed. Cancellation is
// allowed from any non-terminal state; the rest follow the contract flow.
func CanTransition(from ProjectStatus, to ProjectStatus) bool {
	if from == ProjectStatusCompleted || from == ProjectStatusCancelled {
		return false
	}
	if to == ProjectStatusCancelled {
		return true
	}
	switch from {
	case ProjectStatusPending:
		return to == ProjectStatusQuoted
	case ProjectStatusQuoted:
		return to == ProjectStatusContracted
	case ProjectStatusContracted:
		return to == ProjectStatusInProgress
	case ProjectStatusInProgress:
		return to == ProjectStatusCompleted
	default:
		return false
	}
}
