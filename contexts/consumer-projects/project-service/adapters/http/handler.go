package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "renopick/contexts/consumer-projects/project-service/application"
	"renopick/contexts/consumer-projects/project-service/application/commands"
	"renopick/contexts/consumer-projects/project-service/application/queries"
	"renopick/contexts/consumer-projects/project-service/domain/entities"
	httptransport "renopick/contexts/consumer-projects/project-service/transport/http"
)

type Handler struct {
	Commands commands.UseCase
	Queries  queries.UseCase
	Logger   *slog.Logger
}

func (h Handler) CreateProjectHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreateProjectRequest,
) (httptransport.CreateProjectResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	project, err := h.Commands.CreateProject(ctx, commands.CreateProjectCommand{
		OwnerID:         userID,
		Title:           req.Title,
		SpaceTypes:      append([]string(nil), req.SpaceTypes...),
		AreaValue:       req.AreaValue,
		AreaUnit:        req.AreaUnit,
		Budget:          req.Budget,
		IsRental:        req.IsRental,
		RentalChecklist: checklistFromDTO(req.RentalChecklist),
		PhotoURLs:       append([]string(nil), req.Photos...),
	})
	if err != nil {
		logger.Warn("project http create failed",
			"event", "project_http_create_failed",
			"module", "consumer-projects/project-service",
			"layer", "adapter",
			"owner_id", strings.TrimSpace(userID),
			"error", err.Error(),
		)
		return httptransport.CreateProjectResponse{}, err
	}
	logger.Info("project http create completed",
		"event", "project_http_create_completed",
		"module", "consumer-projects/project-service",
		"layer", "adapter",
		"project_id", project.ID,
		"owner_id", project.OwnerID,
	)
	return httptransport.CreateProjectResponse{
		ID:          project.ID,
		Status:      string(project.Status),
		SLADeadline: project.SLADeadline.Format(time.RFC3339),
		CreatedAt:   project.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (h Handler) GetProjectHandler(ctx context.Context, projectID string) (httptransport.ProjectDTO, error) {
	project, err := h.Queries.GetProject(ctx, projectID)
	if err != nil {
		return httptransport.ProjectDTO{}, err
	}
	return mapProject(project), nil
}

func (h Handler) ListProjectsHandler(ctx context.Context, status string) (httptransport.ProjectListResponse, error) {
	projects, err := h.Queries.ListProjects(ctx, status)
	if err != nil {
		return httptransport.ProjectListResponse{}, err
	}
	dtos := make([]httptransport.ProjectDTO, 0, len(projects))
	for _, project := range projects {
		dtos = append(dtos, mapProject(project))
	}
	return httptransport.ProjectListResponse{Projects: dtos}, nil
}

func (h Handler) UpdateStatusHandler(
	ctx context.Context,
	projectID string,
	req httptransport.UpdateStatusRequest,
) error {
	logger := application.ResolveLogger(h.Logger)
	if err := h.Commands.UpdateStatus(ctx, commands.UpdateStatusCommand{
		ProjectID: projectID,
		Status:    req.Status,
	}); err != nil {
		logger.Warn("project http status update failed",
			"event", "project_http_status_update_failed",
			"module", "consumer-projects/project-service",
			"layer", "adapter",
			"project_id", strings.TrimSpace(projectID),
			"status", strings.TrimSpace(req.Status),
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (h Handler) SLAStatusHandler(ctx context.Context, projectID string) (httptransport.SLAStatusResponse, error) {
	status, err := h.Queries.SLAStatus(ctx, projectID)
	if err != nil {
		return httptransport.SLAStatusResponse{}, err
	}
	return httptransport.SLAStatusResponse{
		Deadline:         status.Deadline.Format(time.RFC3339),
		QuoteTarget:      status.QuoteTarget,
		QuoteCount:       status.QuoteCount,
		Met:              status.Met,
		RemainingSeconds: int64(status.Remaining.Seconds()),
	}, nil
}

func mapProject(project entities.Project) httptransport.ProjectDTO {
	return httptransport.ProjectDTO{
		ID:              project.ID,
		OwnerID:         project.OwnerID,
		Title:           project.Title,
		SpaceTypes:      append([]string(nil), project.SpaceTypes...),
		AreaValue:       project.AreaValue,
		AreaUnit:        project.AreaUnit,
		Budget:          project.Budget,
		IsRental:        project.IsRental,
		RentalChecklist: checklistToDTO(project.RentalChecklist),
		Status:          string(project.Status),
		SLADeadline:     project.SLADeadline.Format(time.RFC3339),
		CreatedAt:       project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       project.UpdatedAt.Format(time.RFC3339),
	}
}

func checklistFromDTO(dto *httptransport.RentalChecklistDTO) *entities.RentalChecklist {
	if dto == nil {
		return nil
	}
	return &entities.RentalChecklist{
		NoiseRestriction:    dto.NoiseRestriction,
		DrillingRestriction: dto.DrillingRestriction,
		WallModification:    dto.WallModification,
		FloorModification:   dto.FloorModification,
		OtherRestrictions:   strings.TrimSpace(dto.OtherRestrictions),
	}
}

func checklistToDTO(checklist *entities.RentalChecklist) *httptransport.RentalChecklistDTO {
	if checklist == nil {
		return nil
	}
	return &httptransport.RentalChecklistDTO{
		NoiseRestriction:    checklist.NoiseRestriction,
		DrillingRestriction: checklist.DrillingRestriction,
		WallModification:    checklist.WallModification,
		FloorModification:   checklist.FloorModification,
		OtherRestrictions:   checklist.OtherRestrictions,
	}
}
