package ports

import (
	"context"
	"time"

	"renopick/contexts/quote-exchange/distribution-service/domain/entities"
	"renopick/internal/shared/events"
	"renopick/internal/shared/outbox"
)

type Repository interface {
	// LatestRound returns the most recent round for a project, ordered by
	// distributed_at descending. ErrRoundNotFound when none exists.
	LatestRound(ctx context.Context, projectID string) (entities.DistributionRound, error)
	// BeginRound inserts a round only if no cooldown is active at the round's
	// DistributedAt instant. The check and the insert are one critical
	// section per project; a losing racer gets CooldownActiveError.
	BeginRound(ctx context.Context, round entities.DistributionRound) error
	AddAssignments(ctx context.Context, assignments []entities.VendorAssignment) error
	ListAssignments(ctx context.Context, projectID string) ([]entities.VendorAssignment, error)
}

// VendorDirectory is a read-only projection owned by vendor management.
type VendorDirectory interface {
	ListVerified(ctx context.Context) ([]entities.VendorProfile, error)
}

// ProjectDirectory is a read-only projection owned by the project service.
type ProjectDirectory interface {
	GetProjectRef(ctx context.Context, projectID string) (entities.ProjectRef, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope events.Envelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}
