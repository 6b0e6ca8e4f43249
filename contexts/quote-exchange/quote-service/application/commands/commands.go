package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"renopick/contexts/quote-exchange/quote-service/application"
	"renopick/contexts/quote-exchange/quote-service/domain/entities"
	domainerrors "renopick/contexts/quote-exchange/quote-service/domain/errors"
	"renopick/contexts/quote-exchange/quote-service/ports"
	"renopick/internal/shared/events"
)

type SubmitQuoteCommand struct {
	ProjectID   string
	VendorID    string
	LineItems   []entities.LineItem
	TotalAmount int64
	ValidUntil  *time.Time
}

type UpdateStatusCommand struct {
	QuoteID string
	Status  string
}

type UseCase struct {
	Repository ports.Repository
	Templates  ports.TemplateRepository
	Projects   ports.ProjectDirectory
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// SubmitQuote validates and persists one vendor quote with status pending.
// The quote row is the primary effect; the template snapshot and the outbox
// event are best effort after it exists.
func (uc UseCase) SubmitQuote(ctx context.Context, cmd SubmitQuoteCommand) (entities.Quote, error) {
	logger := application.ResolveLogger(uc.Logger)

	if violations := entities.ValidateQuoteShape(cmd.ProjectID, cmd.VendorID, cmd.LineItems, cmd.TotalAmount); len(violations) > 0 {
		return entities.Quote{}, &domainerrors.SchemaError{Violations: violations}
	}
	if computed, ok := entities.ReconcileTotal(cmd.LineItems, cmd.TotalAmount); !ok {
		logger.Warn("quote total reconciliation failed",
			slog.String("event", "quote_total_mismatch"),
			slog.String("project_id", strings.TrimSpace(cmd.ProjectID)),
			slog.String("vendor_id", strings.TrimSpace(cmd.VendorID)),
			slog.Int64("declared_total", cmd.TotalAmount),
			slog.Int64("computed_total", computed),
		)
		return entities.Quote{}, &domainerrors.TotalMismatchError{
			DeclaredTotal: cmd.TotalAmount,
			ComputedTotal: computed,
		}
	}

	exists, err := uc.Projects.ProjectExists(ctx, cmd.ProjectID)
	if err != nil {
		return entities.Quote{}, err
	}
	if !exists {
		return entities.Quote{}, domainerrors.ErrProjectNotFound
	}

	quoteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Quote{}, err
	}

	now := uc.now()
	quote := entities.Quote{
		ID:          quoteID,
		ProjectID:   strings.TrimSpace(cmd.ProjectID),
		VendorID:    strings.TrimSpace(cmd.VendorID),
		LineItems:   append([]entities.LineItem(nil), cmd.LineItems...),
		TotalAmount: cmd.TotalAmount,
		ValidUntil:  cmd.ValidUntil,
		Status:      entities.QuoteStatusPending,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	if err := uc.Repository.CreateQuote(ctx, quote); err != nil {
		return entities.Quote{}, err
	}

	uc.saveTemplateSnapshot(ctx, logger, quote)
	uc.appendSubmittedEvent(ctx, logger, quote)

	logger.Info("quote submitted",
		slog.String("event", "quote_submitted"),
		slog.String("quote_id", quote.ID),
		slog.String("project_id", quote.ProjectID),
		slog.String("vendor_id", quote.VendorID),
		slog.Int64("total_amount", quote.TotalAmount),
		slog.Int("line_item_count", len(quote.LineItems)),
	)
	return quote, nil
}

func (uc UseCase) UpdateStatus(ctx context.Context, cmd UpdateStatusCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	quote, err := uc.Repository.GetQuote(ctx, cmd.QuoteID)
	if err != nil {
		return err
	}
	target := entities.QuoteStatus(strings.TrimSpace(cmd.Status))
	if !entities.CanTransition(quote.Status, target) {
		return domainerrors.ErrInvalidStatusTransition
	}
	if err := uc.Repository.UpdateStatus(ctx, quote.ID, target, uc.now()); err != nil {
		return err
	}
	logger.Info("quote status updated",
		slog.String("event", "quote_status_updated"),
		slog.String("quote_id", quote.ID),
		slog.String("from", string(quote.Status)),
		slog.String("to", string(target)),
	)
	return nil
}

// saveTemplateSnapshot records the submitted line items as an autofill
// template. Failure never rolls back the quote.
func (uc UseCase) saveTemplateSnapshot(ctx context.Context, logger *slog.Logger, quote entities.Quote) {
	if uc.Templates == nil {
		return
	}

	templateID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		logger.Warn("quote template snapshot failed",
			slog.String("event", "quote_template_snapshot_failed"),
			slog.String("quote_id", quote.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	category := ""
	if len(quote.LineItems) > 0 {
		category = quote.LineItems[0].Category
	}
	template := entities.QuoteTemplate{
		ID:         templateID,
		VendorID:   quote.VendorID,
		Category:   category,
		LineItems:  append([]entities.LineItem(nil), quote.LineItems...),
		LastUsedAt: quote.SubmittedAt,
	}
	if err := uc.Templates.SaveTemplate(ctx, template); err != nil {
		logger.Warn("quote template snapshot failed",
			slog.String("event", "quote_template_snapshot_failed"),
			slog.String("quote_id", quote.ID),
			slog.String("vendor_id", quote.VendorID),
			slog.String("error", err.Error()),
		)
	}
}

type quoteSubmittedEvent struct {
	QuoteID     string    `json:"quote_id"`
	ProjectID   string    `json:"project_id"`
	VendorID    string    `json:"vendor_id"`
	TotalAmount int64     `json:"total_amount"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (uc UseCase) appendSubmittedEvent(ctx context.Context, logger *slog.Logger, quote entities.Quote) {
	if uc.Outbox == nil {
		return
	}

	payload, err := json.Marshal(quoteSubmittedEvent{
		QuoteID:     quote.ID,
		ProjectID:   quote.ProjectID,
		VendorID:    quote.VendorID,
		TotalAmount: quote.TotalAmount,
		SubmittedAt: quote.SubmittedAt,
	})
	if err != nil {
		logger.Error("quote event encode failed",
			slog.String("event", "quote_event_encode_failed"),
			slog.String("quote_id", quote.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("quote event id generation failed",
			slog.String("event", "quote_event_append_failed"),
			slog.String("quote_id", quote.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	envelope := events.Envelope{
		EventID:       eventID,
		EventType:     "quote.submitted",
		SourceService: "quote-service",
		OccurredAt:    quote.SubmittedAt,
		PartitionKey:  quote.ProjectID,
		SchemaVersion: 1,
		Data:          payload,
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		logger.Error("quote event append failed",
			slog.String("event", "quote_event_append_failed"),
			slog.String("quote_id", quote.ID),
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
