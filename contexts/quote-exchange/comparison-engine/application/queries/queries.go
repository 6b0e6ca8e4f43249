package queries

import (
	"context"
	"log/slog"
	"strings"

	"renopick/contexts/quote-exchange/comparison-engine/application"
	"renopick/contexts/quote-exchange/comparison-engine/domain/entities"
	domainerrors "renopick/contexts/quote-exchange/comparison-engine/domain/errors"
	"renopick/contexts/quote-exchange/comparison-engine/ports"
)

type UseCase struct {
	Quotes     ports.QuoteSource
	Normalizer entities.CategoryNormalizer
	Logger     *slog.Logger
}

// Compare fetches the requested quotes and builds their comparison. The
// cardinality check runs before any store access; quotes missing or
// belonging to another project surface as not found.
func (uc UseCase) Compare(ctx context.Context, projectID string, quoteIDs []string) (entities.ComparisonResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	ids := make([]string, 0, len(quoteIDs))
	for _, id := range quoteIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) < entities.MinComparisonQuotes || len(ids) > entities.MaxComparisonQuotes {
		return entities.ComparisonResult{}, &domainerrors.CardinalityError{Count: len(ids)}
	}

	records, err := uc.Quotes.GetQuotes(ctx, ids)
	if err != nil {
		return entities.ComparisonResult{}, err
	}

	byID := make(map[string]ports.QuoteRecord, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}
	views := make([]entities.QuoteView, 0, len(ids))
	for _, id := range ids {
		record, found := byID[id]
		if !found || record.ProjectID != strings.TrimSpace(projectID) {
			return entities.ComparisonResult{}, domainerrors.ErrQuoteNotFound
		}
		views = append(views, entities.QuoteView{
			ID:        record.ID,
			LineItems: entities.DecodeLineItems(record.LineItems),
		})
	}

	result := entities.Compare(views, uc.Normalizer)
	logger.Info("quotes compared",
		slog.String("event", "quotes_compared"),
		slog.String("project_id", strings.TrimSpace(projectID)),
		slog.Int("quote_count", len(views)),
		slog.Float64("mapping_rate", result.MappingRate),
		slog.Int("difference_count", len(result.Differences)),
	)
	return result, nil
}
