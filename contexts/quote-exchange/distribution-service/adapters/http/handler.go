package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "renopick/contexts/quote-exchange/distribution-service/application"
	"renopick/contexts/quote-exchange/distribution-service/application/commands"
	"renopick/contexts/quote-exchange/distribution-service/application/queries"
	"renopick/contexts/quote-exchange/distribution-service/domain/entities"
	httptransport "renopick/contexts/quote-exchange/distribution-service/transport/http"
)

type Handler struct {
	Commands commands.UseCase
	Queries  queries.UseCase
	Logger   *slog.Logger
}

func (h Handler) DistributeHandler(
	ctx context.Context,
	userID string,
	projectID string,
	req httptransport.DistributeRequest,
) (httptransport.DistributeResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	result, err := h.Commands.Distribute(ctx, commands.DistributeCommand{
		ProjectID:   projectID,
		RequestedBy: userID,
		MaxVendors:  req.MaxVendors,
		Filters:     filtersFromDTO(req.Filters),
	})
	if err != nil {
		logger.Warn("distribution http distribute failed",
			"event", "distribution_http_distribute_failed",
			"module", "quote-exchange/distribution-service",
			"layer", "adapter",
			"project_id", strings.TrimSpace(projectID),
			"requested_by", strings.TrimSpace(userID),
			"error", err.Error(),
		)
		return httptransport.DistributeResponse{}, err
	}
	return httptransport.DistributeResponse{
		RoundID:              result.RoundID,
		DistributedVendorIDs: result.VendorIDs,
		DistributedAt:        result.DistributedAt.Format(time.RFC3339),
		CooldownUntil:        result.CooldownUntil.Format(time.RFC3339),
	}, nil
}

func (h Handler) CooldownStatusHandler(
	ctx context.Context,
	projectID string,
) (httptransport.CooldownStatusResponse, error) {
	status, err := h.Queries.CooldownStatus(ctx, projectID)
	if err != nil {
		return httptransport.CooldownStatusResponse{}, err
	}
	resp := httptransport.CooldownStatusResponse{Throttled: status.Throttled}
	if status.Throttled {
		resp.CooldownUntil = status.CooldownUntil.Format(time.RFC3339)
	}
	return resp, nil
}

func (h Handler) ListAssignmentsHandler(
	ctx context.Context,
	projectID string,
) (httptransport.AssignmentListResponse, error) {
	assignments, err := h.Queries.ListAssignments(ctx, projectID)
	if err != nil {
		return httptransport.AssignmentListResponse{}, err
	}
	dtos := make([]httptransport.AssignmentDTO, 0, len(assignments))
	for _, assignment := range assignments {
		dtos = append(dtos, httptransport.AssignmentDTO{
			ID:            assignment.ID,
			RoundID:       assignment.RoundID,
			ProjectID:     assignment.ProjectID,
			VendorID:      assignment.VendorID,
			DistributedAt: assignment.DistributedAt.Format(time.RFC3339),
			CooldownUntil: assignment.CooldownUntil.Format(time.RFC3339),
		})
	}
	return httptransport.AssignmentListResponse{Assignments: dtos}, nil
}

func filtersFromDTO(dto *httptransport.SelectionFiltersDTO) entities.SelectionFilters {
	if dto == nil {
		return entities.SelectionFilters{}
	}
	return entities.SelectionFilters{
		Specialties: append([]string(nil), dto.Specialties...),
		Regions:     append([]string(nil), dto.Regions...),
		MinTicket:   dto.MinTicket,
	}
}
