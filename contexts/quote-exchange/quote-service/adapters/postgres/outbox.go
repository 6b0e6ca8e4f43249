package postgresadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"renopick/contexts/quote-exchange/quote-service/ports"
	"renopick/internal/shared/events"
	"renopick/internal/shared/outbox"

	"gorm.io/gorm"
)

// OutboxRepository persists quote events in the same database as the quotes
// they describe. The relay worker drains rows where published_at is null.
type OutboxRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewOutboxRepository(db *gorm.DB, logger *slog.Logger) *OutboxRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &OutboxRepository{db: db, logger: logger}
}

func (r *OutboxRepository) AppendOutbox(ctx context.Context, envelope events.Envelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     envelope.EventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.logError("quote_outbox_append_failed", err, "outbox_id", row.OutboxID)
		return err
	}
	return nil
}

func (r *OutboxRepository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		r.logError("quote_outbox_list_failed", err)
		return nil, err
	}
	messages := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, outbox.Message{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return messages, nil
}

func (r *OutboxRepository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	ts := publishedAt.UTC()
	if err := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Update("published_at", &ts).Error; err != nil {
		r.logError("quote_outbox_mark_failed", err, "outbox_id", outboxID)
		return err
	}
	return nil
}

func (r *OutboxRepository) logError(event string, err error, attrs ...any) {
	fields := make([]any, 0, len(attrs)+6)
	fields = append(fields,
		"event", event,
		"module", "quote-exchange/quote-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("quote outbox operation failed", fields...)
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload;type:jsonb"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "quote_outbox"
}

var _ ports.OutboxWriter = (*OutboxRepository)(nil)
var _ ports.OutboxRepository = (*OutboxRepository)(nil)
