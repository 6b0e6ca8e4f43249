package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "renopick/contexts/consumer-projects/project-service/application"
	"renopick/contexts/consumer-projects/project-service/domain/entities"
	"renopick/contexts/consumer-projects/project-service/ports"
)

type UseCase struct {
	Repository ports.Repository
	Quotes     ports.QuoteCounter
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc UseCase) GetProject(ctx context.Context, projectID string) (entities.Project, error) {
	logger := application.ResolveLogger(uc.Logger)
	normalizedProjectID := strings.TrimSpace(projectID)
	project, err := uc.Repository.GetProject(ctx, normalizedProjectID)
	if err != nil {
		logger.Warn("project query get failed",
			"event", "project_query_get_failed",
			"module", "consumer-projects/project-service",
			"layer", "application",
			"project_id", normalizedProjectID,
			"error", err.Error(),
		)
		return entities.Project{}, err
	}
	return project, nil
}

func (uc UseCase) ListProjects(ctx context.Context, status string) ([]entities.Project, error) {
	logger := application.ResolveLogger(uc.Logger)
	projects, err := uc.Repository.ListProjects(ctx, strings.TrimSpace(status))
	if err != nil {
		logger.Warn("project query list failed",
			"event", "project_query_list_failed",
			"module", "consumer-projects/project-service",
			"layer", "application",
			"status", strings.TrimSpace(status),
			"error", err.Error(),
		)
		return nil, err
	}
	return projects, nil
}

// SLAStatus evaluates the 24h / minimum-2-quotes guarantee for a project at
// the current instant. Quote counting goes through a read-only projection.
func (uc UseCase) SLAStatus(ctx context.Context, projectID string) (entities.SLAStatus, error) {
	logger := application.ResolveLogger(uc.Logger)
	normalizedProjectID := strings.TrimSpace(projectID)
	project, err := uc.Repository.GetProject(ctx, normalizedProjectID)
	if err != nil {
		logger.Warn("project query sla lookup failed",
			"event", "project_query_sla_lookup_failed",
			"module", "consumer-projects/project-service",
			"layer", "application",
			"project_id", normalizedProjectID,
			"error", err.Error(),
		)
		return entities.SLAStatus{}, err
	}
	quoteCount, err := uc.Quotes.CountQuotesByProject(ctx, project.ID)
	if err != nil {
		logger.Warn("project query sla quote count failed",
			"event", "project_query_sla_quote_count_failed",
			"module", "consumer-projects/project-service",
			"layer", "application",
			"project_id", project.ID,
			"error", err.Error(),
		)
		return entities.SLAStatus{}, err
	}
	return entities.EvaluateSLA(project.SLADeadline, quoteCount, uc.now()), nil
}

func (uc UseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
