package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"renopick/contexts/quote-exchange/quote-service/application"
	"renopick/contexts/quote-exchange/quote-service/ports"
	"renopick/internal/shared/events"
)

const defaultRelayBatchSize = 50

// OutboxRelay drains pending quote events to the message bus. One RunOnce
// call processes at most BatchSize messages; the bootstrap loop drives the
// cadence.
type OutboxRelay struct {
	Repository ports.OutboxRepository
	Publisher  ports.EventPublisher
	Topic      string
	BatchSize  int
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (w OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)

	batchSize := w.BatchSize
	if batchSize <= 0 {
		batchSize = defaultRelayBatchSize
	}

	pending, err := w.Repository.ListPendingOutbox(ctx, batchSize)
	if err != nil {
		logger.Error("outbox relay list failed",
			slog.String("event", "quote_outbox_list_failed"),
			slog.String("error", err.Error()),
		)
		return err
	}

	published := 0
	for _, message := range pending {
		var envelope events.Envelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			logger.Error("outbox relay decode failed",
				slog.String("event", "quote_outbox_decode_failed"),
				slog.String("outbox_id", message.OutboxID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if err := w.Publisher.Publish(ctx, w.Topic, envelope); err != nil {
			logger.Error("outbox relay publish failed",
				slog.String("event", "quote_outbox_publish_failed"),
				slog.String("outbox_id", message.OutboxID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if err := w.Repository.MarkOutboxPublished(ctx, message.OutboxID, w.now()); err != nil {
			logger.Error("outbox relay mark failed",
				slog.String("event", "quote_outbox_mark_failed"),
				slog.String("outbox_id", message.OutboxID),
				slog.String("error", err.Error()),
			)
			continue
		}
		published++
	}

	if published > 0 {
		logger.Info("outbox relay cycle completed",
			slog.String("event", "quote_outbox_relay_completed"),
			slog.Int("published", published),
			slog.Int("pending", len(pending)),
		)
	}
	return nil
}

func (w OutboxRelay) now() time.Time {
	if w.Clock == nil {
		return time.Now().UTC()
	}
	return w.Clock.Now().UTC()
}
