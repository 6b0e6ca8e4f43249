package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "renopick/contexts/consumer-projects/project-service/application"
	"renopick/contexts/consumer-projects/project-service/domain/entities"
	"renopick/contexts/consumer-projects/project-service/ports"
	"renopick/internal/shared/events"
)

const (
	quoteSubmittedTopic                = "quote.submitted"
	defaultQuoteSubmittedConsumerGroup = "project-service-quote-submitted-cg"
)

// QuoteSubmittedConsumer moves a project from pending to quoted when its
// first quote arrives. Replays are harmless: the transition only applies to
// pending projects, later events find the project already quoted.
type QuoteSubmittedConsumer struct {
	Subscriber    ports.EventSubscriber
	Repository    ports.Repository
	Clock         ports.Clock
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c QuoteSubmittedConsumer) Start(ctx context.Context) error {
	group := strings.TrimSpace(c.ConsumerGroup)
	if group == "" {
		group = defaultQuoteSubmittedConsumerGroup
	}
	return c.Subscriber.Subscribe(ctx, quoteSubmittedTopic, group, c.handleQuoteSubmitted)
}

func (c QuoteSubmittedConsumer) handleQuoteSubmitted(ctx context.Context, event events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	var payload struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return fmt.Errorf("decode quote.submitted payload: %w", err)
	}
	if strings.TrimSpace(payload.ProjectID) == "" {
		return fmt.Errorf("quote.submitted payload missing project_id")
	}

	project, err := c.Repository.GetProject(ctx, payload.ProjectID)
	if err != nil {
		logger.Error("quote.submitted project lookup failed",
			"event", "project_quote_submitted_lookup_failed",
			"module", "consumer-projects/project-service",
			"layer", "worker",
			"event_id", event.EventID,
			"project_id", payload.ProjectID,
			"error", err.Error(),
		)
		return err
	}
	if project.Status != entities.ProjectStatusPending {
		logger.Debug("quote.submitted ignored for non-pending project",
			"event", "project_quote_submitted_replayed",
			"module", "consumer-projects/project-service",
			"layer", "worker",
			"event_id", event.EventID,
			"project_id", project.ID,
			"status", string(project.Status),
		)
		return nil
	}

	now := time.Now().UTC()
	if c.Clock != nil {
		now = c.Clock.Now().UTC()
	}
	if err := c.Repository.UpdateStatus(ctx, project.ID, entities.ProjectStatusQuoted, now); err != nil {
		logger.Error("quote.submitted projection failed",
			"event", "project_quote_submitted_projection_failed",
			"module", "consumer-projects/project-service",
			"layer", "worker",
			"event_id", event.EventID,
			"project_id", project.ID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("project marked quoted",
		"event", "project_quote_submitted_projected",
		"module", "consumer-projects/project-service",
		"layer", "worker",
		"event_id", event.EventID,
		"project_id", project.ID,
	)
	return nil
}
