package queries

import (
	"context"
	"log/slog"
	"strings"

	"renopick/contexts/quote-exchange/quote-service/domain/entities"
	"renopick/contexts/quote-exchange/quote-service/ports"
)

const autocompleteLimit = 3

type UseCase struct {
	Repository ports.Repository
	Templates  ports.TemplateRepository
	Logger     *slog.Logger
}

func (uc UseCase) GetQuote(ctx context.Context, quoteID string) (entities.Quote, error) {
	return uc.Repository.GetQuote(ctx, quoteID)
}

func (uc UseCase) ListByProject(ctx context.Context, projectID string) ([]entities.Quote, error) {
	return uc.Repository.ListByProject(ctx, projectID)
}

// Autocomplete returns up to three of the vendor's most recent templates,
// optionally narrowed to one category.
func (uc UseCase) Autocomplete(ctx context.Context, vendorID string, category string) ([]entities.QuoteTemplate, error) {
	if uc.Templates == nil {
		return nil, nil
	}
	return uc.Templates.ListRecentTemplates(ctx, strings.TrimSpace(vendorID), strings.TrimSpace(category), autocompleteLimit)
}
