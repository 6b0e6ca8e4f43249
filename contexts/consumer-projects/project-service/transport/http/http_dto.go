package http

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type RentalChecklistDTO struct {
	NoiseRestriction    bool   `json:"noise_restriction"`
	DrillingRestriction bool   `json:"drilling_restriction"`
	WallModification    bool   `json:"wall_modification"`
	FloorModification   bool   `json:"floor_modification"`
	OtherRestrictions   string `json:"other_restrictions,omitempty"`
}

type CreateProjectRequest struct {
	Title           string              `json:"title"`
	SpaceTypes      []string            `json:"space_types"`
	AreaValue       float64             `json:"area_value"`
	AreaUnit        string              `json:"area_unit"`
	Budget          int64               `json:"budget"`
	IsRental        bool                `json:"is_rental"`
	RentalChecklist *RentalChecklistDTO `json:"rental_checklist,omitempty"`
	Photos          []string            `json:"photos"`
}

type CreateProjectResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	SLADeadline string `json:"sla_deadline"`
	CreatedAt   string `json:"created_at"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ProjectDTO struct {
	ID              string              `json:"id"`
	OwnerID         string              `json:"owner_id"`
	Title           string              `json:"title"`
	SpaceTypes      []string            `json:"space_types"`
	AreaValue       float64             `json:"area_value"`
	AreaUnit        string              `json:"area_unit"`
	Budget          int64               `json:"budget"`
	IsRental        bool                `json:"is_rental"`
	RentalChecklist *RentalChecklistDTO `json:"rental_checklist,omitempty"`
	Status          string              `json:"status"`
	SLADeadline     string              `json:"sla_deadline"`
	CreatedAt       string              `json:"created_at"`
	UpdatedAt       string              `json:"updated_at"`
}

type ProjectListResponse struct {
	Projects []ProjectDTO `json:"projects"`
}

type SLAStatusResponse struct {
	Deadline         string `json:"deadline"`
	QuoteTarget      int    `json:"quote_target"`
	QuoteCount       int    `json:"quote_count"`
	Met              bool   `json:"met"`
	RemainingSeconds int64  `json:"remaining_seconds"`
}
