package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"renopick/contexts/quote-exchange/distribution-service/application"
	"renopick/contexts/quote-exchange/distribution-service/domain/entities"
	domainerrors "renopick/contexts/quote-exchange/distribution-service/domain/errors"
	"renopick/contexts/quote-exchange/distribution-service/ports"
	"renopick/internal/shared/events"
)

type DistributeCommand struct {
	ProjectID   string
	RequestedBy string
	MaxVendors  int
	Filters     entities.SelectionFilters
}

type DistributeResult struct {
	RoundID       string
	VendorIDs     []string
	DistributedAt time.Time
	CooldownUntil time.Time
}

type UseCase struct {
	Repository ports.Repository
	Vendors    ports.VendorDirectory
	Projects   ports.ProjectDirectory
	Regions    entities.RegionMatcherFunc
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Distribute starts one distribution round for a project. The round insert is
// the atomic cooldown gate; assignments and the outbox event are best effort
// after the round exists.
func (uc UseCase) Distribute(ctx context.Context, cmd DistributeCommand) (DistributeResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	maxVendors := cmd.MaxVendors
	if maxVendors == 0 {
		maxVendors = entities.DefaultVendorsPerRound
	}
	if maxVendors < entities.MinVendorsPerRound || maxVendors > entities.MaxVendorsPerRound {
		return DistributeResult{}, domainerrors.ErrInvalidDistributionInput
	}
	if cmd.ProjectID == "" {
		return DistributeResult{}, domainerrors.ErrInvalidDistributionInput
	}

	project, err := uc.Projects.GetProjectRef(ctx, cmd.ProjectID)
	if err != nil {
		return DistributeResult{}, err
	}

	now := uc.now()
	latest, err := uc.Repository.LatestRound(ctx, cmd.ProjectID)
	switch {
	case err == nil:
		if latest.CooldownUntil.After(now) {
			logger.Warn("distribution throttled",
				slog.String("event", "distribution_cooldown_active"),
				slog.String("project_id", cmd.ProjectID),
				slog.Time("cooldown_until", latest.CooldownUntil),
			)
			return DistributeResult{}, &domainerrors.CooldownActiveError{CooldownUntil: latest.CooldownUntil}
		}
	case errors.Is(err, domainerrors.ErrRoundNotFound):
	default:
		return DistributeResult{}, err
	}

	pool, err := uc.Vendors.ListVerified(ctx)
	if err != nil {
		return DistributeResult{}, err
	}

	selected := entities.SelectVendors(pool, cmd.Filters, project.Budget, maxVendors, uc.Regions)
	if len(selected) == 0 {
		return DistributeResult{}, domainerrors.ErrNoEligibleVendors
	}

	roundID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return DistributeResult{}, err
	}

	round := entities.DistributionRound{
		ID:            roundID,
		ProjectID:     cmd.ProjectID,
		DistributedAt: now,
		CooldownUntil: now.Add(entities.CooldownWindow),
	}
	if err := uc.Repository.BeginRound(ctx, round); err != nil {
		return DistributeResult{}, err
	}

	vendorIDs := make([]string, 0, len(selected))
	assignments := make([]entities.VendorAssignment, 0, len(selected))
	for _, vendor := range selected {
		assignmentID, idErr := uc.IDGen.NewID(ctx)
		if idErr != nil {
			return DistributeResult{}, idErr
		}
		vendorIDs = append(vendorIDs, vendor.VendorID)
		assignments = append(assignments, entities.VendorAssignment{
			ID:            assignmentID,
			RoundID:       round.ID,
			ProjectID:     round.ProjectID,
			VendorID:      vendor.VendorID,
			DistributedAt: round.DistributedAt,
			CooldownUntil: round.CooldownUntil,
		})
	}
	if err := uc.Repository.AddAssignments(ctx, assignments); err != nil {
		logger.Warn("distribution assignment persistence failed",
			slog.String("event", "distribution_assignment_persistence_failed"),
			slog.String("project_id", round.ProjectID),
			slog.String("round_id", round.ID),
			slog.String("error", err.Error()),
		)
	}

	uc.appendRoundStartedEvent(ctx, logger, round, vendorIDs)

	logger.Info("distribution round started",
		slog.String("event", "distribution_round_started"),
		slog.String("project_id", round.ProjectID),
		slog.String("round_id", round.ID),
		slog.String("requested_by", cmd.RequestedBy),
		slog.Int("vendor_count", len(vendorIDs)),
		slog.Time("cooldown_until", round.CooldownUntil),
	)

	return DistributeResult{
		RoundID:       round.ID,
		VendorIDs:     vendorIDs,
		DistributedAt: round.DistributedAt,
		CooldownUntil: round.CooldownUntil,
	}, nil
}

type roundStartedEvent struct {
	RoundID       string    `json:"round_id"`
	ProjectID     string    `json:"project_id"`
	VendorIDs     []string  `json:"vendor_ids"`
	DistributedAt time.Time `json:"distributed_at"`
	CooldownUntil time.Time `json:"cooldown_until"`
}

func (uc UseCase) appendRoundStartedEvent(ctx context.Context, logger *slog.Logger, round entities.DistributionRound, vendorIDs []string) {
	if uc.Outbox == nil {
		return
	}

	payload, err := json.Marshal(roundStartedEvent{
		RoundID:       round.ID,
		ProjectID:     round.ProjectID,
		VendorIDs:     vendorIDs,
		DistributedAt: round.DistributedAt,
		CooldownUntil: round.CooldownUntil,
	})
	if err != nil {
		logger.Error("distribution event encode failed",
			slog.String("event", "distribution_event_encode_failed"),
			slog.String("round_id", round.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("distribution event id generation failed",
			slog.String("event", "distribution_event_append_failed"),
			slog.String("round_id", round.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	envelope := events.Envelope{
		EventID:       eventID,
		EventType:     "distribution.round_started",
		SourceService: "distribution-service",
		OccurredAt:    round.DistributedAt,
		PartitionKey:  round.ProjectID,
		SchemaVersion: 1,
		Data:          payload,
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		logger.Error("distribution event append failed",
			slog.String("event", "distribution_event_append_failed"),
			slog.String("round_id", round.ID),
			slog.String("error", err.Error()),
		)
	}
}

func (uc UseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
