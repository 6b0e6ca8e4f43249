package ports

import (
	"context"
	"time"

	"renopick/contexts/quote-exchange/quote-service/domain/entities"
	"renopick/internal/shared/events"
	"renopick/internal/shared/outbox"
)

type Repository interface {
	CreateQuote(ctx context.Context, quote entities.Quote) error
	GetQuote(ctx context.Context, quoteID string) (entities.Quote, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.Quote, error)
	UpdateStatus(ctx context.Context, quoteID string, status entities.QuoteStatus, updatedAt time.Time) error
}

type TemplateRepository interface {
	SaveTemplate(ctx context.Context, template entities.QuoteTemplate) error
	// ListRecentTemplates returns a vendor's templates newest first, optionally
	// narrowed to one category. Category matching is exact.
	ListRecentTemplates(ctx context.Context, vendorID string, category string, limit int) ([]entities.QuoteTemplate, error)
}

// ProjectDirectory is a read-only projection owned by the project service.
type ProjectDirectory interface {
	ProjectExists(ctx context.Context, projectID string) (bool, error)
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
