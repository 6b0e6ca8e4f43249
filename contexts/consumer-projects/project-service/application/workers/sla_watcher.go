package workers

import (
	"context"
	"log/slog"
	"time"

	application "renopick/contexts/consumer-projects/project-service/application"
	"renopick/contexts/consumer-projects/project-service/domain/entities"
	"renopick/contexts/consumer-projects/project-service/ports"
)

// SLAWatcher sweeps pending projects whose deadline has passed with fewer
// quotes than the guarantee target. Read-only: breaches are reported through
// logging for the ops surface, never mutated here.
type SLAWatcher struct {
	Repository ports.Repository
	Quotes     ports.QuoteCounter
	Clock      ports.Clock
	BatchSize  int
	Logger     *slog.Logger
}

func (w SLAWatcher) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)
	limit := w.BatchSize
	if limit <= 0 {
		limit = 100
	}
	now := time.Now().UTC()
	if w.Clock != nil {
		now = w.Clock.Now().UTC()
	}

	overdue, err := w.Repository.ListOverduePending(ctx, now, limit)
	if err != nil {
		logger.Error("sla watcher overdue list failed",
			"event", "project_sla_watcher_list_failed",
			"module", "consumer-projects/project-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	breached := 0
	for _, project := range overdue {
		quoteCount, err := w.Quotes.CountQuotesByProject(ctx, project.ID)
		if err != nil {
			logger.Error("sla watcher quote count failed",
				"event", "project_sla_watcher_quote_count_failed",
				"module", "consumer-projects/project-service",
				"layer", "worker",
				"project_id", project.ID,
				"error", err.Error(),
			)
			return err
		}
		status := entities.EvaluateSLA(project.SLADeadline, quoteCount, now)
		if status.Met {
			continue
		}
		breached++
		logger.Warn("sla guarantee breached",
			"event", "project_sla_breached",
			"module", "consumer-projects/project-service",
			"layer", "worker",
			"project_id", project.ID,
			"quote_count", status.QuoteCount,
			"quote_target", status.QuoteTarget,
			"deadline", status.Deadline.Format(time.RFC3339),
		)
	}

	if len(overdue) > 0 {
		logger.Info("sla watcher cycle completed",
			"event", "project_sla_watcher_cycle_completed",
			"module", "consumer-projects/project-service",
			"layer", "worker",
			"overdue_count", len(overdue),
			"breached_count", breached,
		)
	}
	return nil
}
