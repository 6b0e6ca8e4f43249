package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "renopick/contexts/consumer-projects/project-service/application"
	"renopick/contexts/consumer-projects/project-service/domain/entities"
	domainerrors "renopick/contexts/consumer-projects/project-service/domain/errors"
	"renopick/contexts/consumer-projects/project-service/ports"
)

const (
	minProjectPhotos = 3
	maxProjectPhotos = 10
)

type CreateProjectCommand struct {
	OwnerID         string
	Title           string
	SpaceTypes      []string
	AreaValue       float64
	AreaUnit        string
	Budget          int64
	IsRental        bool
	RentalChecklist *entities.RentalChecklist
	PhotoURLs       []string
}

type UpdateStatusCommand struct {
	ProjectID string
	Status    string
}

type UseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc UseCase) CreateProject(ctx context.Context, cmd CreateProjectCommand) (entities.Project, error) {
	logger := application.ResolveLogger(uc.Logger)
	if violations := validateCreate(cmd); len(violations) > 0 {
		logger.Warn("project create invalid input",
			"event", "project_create_invalid_input",
			"module", "consumer-projects/project-service",
			"layer", "application",
			"owner_id", strings.TrimSpace(cmd.OwnerID),
			"violation_count", len(violations),
		)
		return entities.Project{}, &domainerrors.ValidationError{Violations: violations}
	}

	projectID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("project create id generation failed",
			"event", "project_create_id_generation_failed",
			"module", "consumer-projects/project-service",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Project{}, err
	}

	now := uc.now()
	project := entities.Project{
		ID:              projectID,
		OwnerID:         strings.TrimSpace(cmd.OwnerID),
		Title:           strings.TrimSpace(cmd.Title),
		SpaceTypes:      append([]string(nil), cmd.SpaceTypes...),
		AreaValue:       cmd.AreaValue,
		AreaUnit:        strings.TrimSpace(cmd.AreaUnit),
		Budget:          cmd.Budget,
		IsRental:        cmd.IsRental,
		RentalChecklist: cmd.RentalChecklist,
		Status:          entities.ProjectStatusPending,
		SLADeadline:     now.Add(entities.SLAWindow),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.Repository.CreateProject(ctx, project); err != nil {
		logger.Error("project create persistence failed",
			"event", "project_create_persistence_failed",
			"module", "consumer-projects/project-service",
			"layer", "application",
			"project_id", project.ID,
			"owner_id", project.OwnerID,
			"error", err.Error(),
		)
		return entities.Project{}, err
	}

	// Photo rows are a best-effort secondary write: the project stands even
	// when the audit rows cannot be persisted.
	if err := uc.addPhotos(ctx, project.ID, cmd.PhotoURLs); err != nil {
		logger.Warn("project create photo persistence failed",
			"event", "project_create_photo_persistence_failed",
			"module", "consumer-projects/project-service",
			"layer", "application",
			"project_id", project.ID,
			"photo_count", len(cmd.PhotoURLs),
			"error", err.Error(),
		)
	}

	logger.Info("project created",
		"event", "project_created",
		"module", "consumer-projects/project-service",
		"layer", "application",
		"project_id", project.ID,
		"owner_id", project.OwnerID,
		"budget", project.Budget,
		"sla_deadline", project.SLADeadline.Format(time.RFC3339),
	)
	return project, nil
}

func (uc UseCase) UpdateStatus(ctx context.Context, cmd UpdateStatusCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	project, err := uc.Repository.GetProject(ctx, strings.TrimSpace(cmd.ProjectID))
	if err != nil {
		logger.Warn("project status update lookup failed",
			"event", "project_status_update_lookup_failed",
			"module", "consumer-projects/project-service",
			"layer", "application",
			"project_id", strings.TrimSpace(cmd.ProjectID),
			"error", err.Error(),
		)
		return err
	}

	next := entities.ProjectStatus(strings.TrimSpace(cmd.Status))
	if !entities.CanTransition(project.Status, next) {
		logger.Warn("project status transition rejected",
			"event", "project_status_transition_rejected",
			"module", "consumer-projects/project-service",
			"layer", "application",
			"project_id", project.ID,
			"from", project.Status,
			"to", next,
		)
		return domainerrors.ErrInvalidStatusTransition
	}

	if err := uc.Repository.UpdateStatus(ctx, project.ID, next, uc.now()); err != nil {
		logger.Error("project status update failed",
			"event", "project_status_update_failed",
			"module", "consumer-projects/project-service",
			"layer", "application",
			"project_id", project.ID,
			"to", next,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("project status updated",
		"event", "project_status_updated",
		"module", "consumer-projects/project-service",
		"layer", "application",
		"project_id", project.ID,
		"from", project.Status,
		"to", next,
	)
	return nil
}

func (uc UseCase) addPhotos(ctx context.Context, projectID string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	now := uc.now()
	photos := make([]entities.ProjectPhoto, 0, len(urls))
	for index, url := range urls {
		photoID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		photos = append(photos, entities.ProjectPhoto{
			ID:         photoID,
			ProjectID:  projectID,
			StorageURL: strings.TrimSpace(url),
			OrderIndex: index,
			CreatedAt:  now,
		})
	}
	return uc.Repository.AddPhotos(ctx, photos)
}

func (uc UseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

func validateCreate(cmd CreateProjectCommand) []string {
	var violations []string
	if strings.TrimSpace(cmd.OwnerID) == "" {
		violations = append(violations, "owner_id: must not be empty")
	}
	if strings.TrimSpace(cmd.Title) == "" {
		violations = append(violations, "title: must not be empty")
	}
	if len(cmd.SpaceTypes) == 0 {
		violations = append(violations, "space_types: at least one space type is required")
	}
	if cmd.AreaValue <= 0 {
		violations = append(violations, "area_value: must be positive")
	}
	if unit := strings.TrimSpace(cmd.AreaUnit); unit != "평" && unit != "㎡" {
		violations = append(violations, "area_unit: must be 평 or ㎡")
	}
	if cmd.Budget <= 0 {
		violations = append(violations, "budget: must be positive")
	}
	if count := len(cmd.PhotoURLs); count < minProjectPhotos || count > maxProjectPhotos {
		violations = append(violations, fmt.Sprintf("photos: between %d and %d photos are required", minProjectPhotos, maxProjectPhotos))
	}
	if !cmd.IsRental && cmd.RentalChecklist != nil {
		violations = append(violations, "rental_checklist: only allowed for rental projects")
	}
	return violations
}
