package postgresadapter

import (
	"context"
	"log/slog"

	"renopick/contexts/quote-exchange/comparison-engine/ports"

	"gorm.io/gorm"
)

// Repository is a read-only projection over the quote-service quotes table.
// The comparator never writes.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetQuotes(ctx context.Context, quoteIDs []string) ([]ports.QuoteRecord, error) {
	var rows []quoteProjectionModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", quoteIDs).
		Find(&rows).Error; err != nil {
		r.logger.Error("comparison repository operation failed",
			"event", "comparison_repo_get_quotes_failed",
			"module", "quote-exchange/comparison-engine",
			"layer", "adapter",
			"error", err.Error(),
			"quote_count", len(quoteIDs),
		)
		return nil, err
	}
	records := make([]ports.QuoteRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, ports.QuoteRecord{
			ID:        row.ID,
			ProjectID: row.ProjectID,
			LineItems: row.LineItems,
		})
	}
	return records, nil
}

type quoteProjectionModel struct {
	ID        string `gorm:"column:id;primaryKey"`
	ProjectID string `gorm:"column:project_id"`
	LineItems []byte `gorm:"column:line_items;type:jsonb"`
}

func (quoteProjectionModel) TableName() string {
	return "quotes"
}

var _ ports.QuoteSource = (*Repository)(nil)
