package ports

import (
	"context"
	"time"

	"renopick/contexts/consumer-projects/project-service/domain/entities"
	"renopick/internal/shared/events"
)

type Repository interface {
	CreateProject(ctx context.Context, project entities.Project) error
	AddPhotos(ctx context.Context, photos []entities.ProjectPhoto) error
	GetProject(ctx context.Context, projectID string) (entities.Project, error)
	ListProjects(ctx context.Context, status string) ([]entities.Project, error)
	UpdateStatus(ctx context.Context, projectID string, status entities.ProjectStatus, updatedAt time.Time) error
	ListOverduePending(ctx context.Context, threshold time.Time, limit int) ([]entities.Project, error)
}

// QuoteCounter is a read-only projection over the quote-service tables,
// used for SLA evaluation only.
type QuoteCounter interface {
	CountQuotesByProject(ctx context.Context, projectID string) (int, error)
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, events.Envelope) error,
	) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
