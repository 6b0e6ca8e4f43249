package queries

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"renopick/contexts/quote-exchange/distribution-service/domain/entities"
	domainerrors "renopick/contexts/quote-exchange/distribution-service/domain/errors"
	"renopick/contexts/quote-exchange/distribution-service/ports"
)

type UseCase struct {
	Repository ports.Repository
	Projects   ports.ProjectDirectory
	Clock      ports.Clock
	Logger     *slog.Logger
}

// CooldownStatus reports whether a project is currently throttled. A project
// with no rounds is never throttled.
func (uc UseCase) CooldownStatus(ctx context.Context, projectID string) (entities.CooldownStatus, error) {
	if _, err := uc.Projects.GetProjectRef(ctx, projectID); err != nil {
		return entities.CooldownStatus{}, err
	}

	latest, err := uc.Repository.LatestRound(ctx, projectID)
	if errors.Is(err, domainerrors.ErrRoundNotFound) {
		return entities.CooldownStatus{}, nil
	}
	if err != nil {
		return entities.CooldownStatus{}, err
	}

	if latest.CooldownUntil.After(uc.now()) {
		return entities.CooldownStatus{Throttled: true, CooldownUntil: latest.CooldownUntil}, nil
	}
	return entities.CooldownStatus{}, nil
}

func (uc UseCase) ListAssignments(ctx context.Context, projectID string) ([]entities.VendorAssignment, error) {
	if _, err := uc.Projects.GetProjectRef(ctx, projectID); err != nil {
		return nil, err
	}
	return uc.Repository.ListAssignments(ctx, projectID)
}

func (uc UseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
