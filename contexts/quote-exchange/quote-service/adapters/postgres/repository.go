package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"renopick/contexts/quote-exchange/quote-service/domain/entities"
	domainerrors "renopick/contexts/quote-exchange/quote-service/domain/errors"
	"renopick/contexts/quote-exchange/quote-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

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

func (r *Repository) CreateQuote(ctx context.Context, quote entities.Quote) error {
	row, err := quoteModelFromEntity(quote)
	if err != nil {
		return r.logError("quote_repo_create_marshal_failed", err,
			"quote_id", strings.TrimSpace(quote.ID),
		)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			r.logWarn("quote_repo_create_unique_conflict",
				"quote_id", row.ID,
			)
			return err
		}
		return r.logError("quote_repo_create_failed", err,
			"quote_id", row.ID,
			"project_id", row.ProjectID,
		)
	}
	return nil
}

func (r *Repository) GetQuote(ctx context.Context, quoteID string) (entities.Quote, error) {
	var row quoteModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(quoteID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Quote{}, domainerrors.ErrQuoteNotFound
		}
		return entities.Quote{}, r.logError("quote_repo_get_failed", err,
			"quote_id", strings.TrimSpace(quoteID),
		)
	}
	return row.toEntity()
}

func (r *Repository) ListByProject(ctx context.Context, projectID string) ([]entities.Quote, error) {
	var rows []quoteModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		Order("submitted_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("quote_repo_list_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	quotes := make([]entities.Quote, 0, len(rows))
	for _, row := range rows {
		quote, err := row.toEntity()
		if err != nil {
			return nil, r.logError("quote_repo_list_decode_failed", err,
				"quote_id", row.ID,
			)
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

func (r *Repository) UpdateStatus(
	ctx context.Context,
	quoteID string,
	status entities.QuoteStatus,
	updatedAt time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&quoteModel{}).
		Where("id = ?", strings.TrimSpace(quoteID)).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("quote_repo_update_status_failed", result.Error,
			"quote_id", strings.TrimSpace(quoteID),
			"status", string(status),
		)
	}
	if result.RowsAffected == 0 {
		r.logWarn("quote_repo_update_status_not_found",
			"quote_id", strings.TrimSpace(quoteID),
		)
		return domainerrors.ErrQuoteNotFound
	}
	return nil
}

func (r *Repository) SaveTemplate(ctx context.Context, template entities.QuoteTemplate) error {
	items, err := json.Marshal(template.LineItems)
	if err != nil {
		return r.logError("quote_repo_save_template_marshal_failed", err,
			"template_id", strings.TrimSpace(template.ID),
		)
	}
	row := quoteTemplateModel{
		ID:         strings.TrimSpace(template.ID),
		VendorID:   strings.TrimSpace(template.VendorID),
		Category:   strings.TrimSpace(template.Category),
		LineItems:  items,
		LastUsedAt: template.LastUsedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("quote_repo_save_template_failed", err,
			"template_id", row.ID,
			"vendor_id", row.VendorID,
		)
	}
	return nil
}

func (r *Repository) ListRecentTemplates(
	ctx context.Context,
	vendorID string,
	category string,
	limit int,
) ([]entities.QuoteTemplate, error) {
	query := r.db.WithContext(ctx).
		Where("vendor_id = ?", strings.TrimSpace(vendorID))
	if strings.TrimSpace(category) != "" {
		query = query.Where("category = ?", strings.TrimSpace(category))
	}
	var rows []quoteTemplateModel
	if err := query.Order("last_used_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, r.logError("quote_repo_list_templates_failed", err,
			"vendor_id", strings.TrimSpace(vendorID),
		)
	}
	templates := make([]entities.QuoteTemplate, 0, len(rows))
	for _, row := range rows {
		template, err := row.toEntity()
		if err != nil {
			return nil, r.logError("quote_repo_list_templates_decode_failed", err,
				"template_id", row.ID,
			)
		}
		templates = append(templates, template)
	}
	return templates, nil
}

// ProjectExists is a read-only projection over the project-service projects
// table, used as a submission precondition only.
func (r *Repository) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&projectRefModel{}).
		Where("id = ?", strings.TrimSpace(projectID)).
		Count(&count).
		Error; err != nil {
		return false, r.logError("quote_repo_project_exists_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	return count > 0, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "quote-exchange/quote-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("quote repository operation failed", fields...)
	return err
}

func (r *Repository) logWarn(event string, attrs ...any) {
	fields := make([]any, 0, len(attrs)+5)
	fields = append(fields,
		"event", event,
		"module", "quote-exchange/quote-service",
		"layer", "adapter",
	)
	fields = append(fields, attrs...)
	r.logger.Warn("quote repository warning", fields...)
}

type quoteModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	ProjectID   string     `gorm:"column:project_id"`
	VendorID    string     `gorm:"column:vendor_id"`
	LineItems   []byte     `gorm:"column:line_items;type:jsonb"`
	TotalAmount int64      `gorm:"column:total_amount"`
	ValidUntil  *time.Time `gorm:"column:valid_until"`
	Status      string     `gorm:"column:status"`
	SubmittedAt time.Time  `gorm:"column:submitted_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (quoteModel) TableName() string {
	return "quotes"
}

func quoteModelFromEntity(quote entities.Quote) (quoteModel, error) {
	items, err := json.Marshal(quote.LineItems)
	if err != nil {
		return quoteModel{}, err
	}
	return quoteModel{
		ID:          strings.TrimSpace(quote.ID),
		ProjectID:   strings.TrimSpace(quote.ProjectID),
		VendorID:    strings.TrimSpace(quote.VendorID),
		LineItems:   items,
		TotalAmount: quote.TotalAmount,
		ValidUntil:  quote.ValidUntil,
		Status:      string(quote.Status),
		SubmittedAt: quote.SubmittedAt.UTC(),
		UpdatedAt:   quote.UpdatedAt.UTC(),
	}, nil
}

func (m quoteModel) toEntity() (entities.Quote, error) {
	var items []entities.LineItem
	if len(m.LineItems) > 0 {
		if err := json.Unmarshal(m.LineItems, &items); err != nil {
			return entities.Quote{}, err
		}
	}
	return entities.Quote{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		VendorID:    m.VendorID,
		LineItems:   items,
		TotalAmount: m.TotalAmount,
		ValidUntil:  m.ValidUntil,
		Status:      entities.QuoteStatus(m.Status),
		SubmittedAt: m.SubmittedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}, nil
}

type quoteTemplateModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	VendorID   string    `gorm:"column:vendor_id"`
	Category   string    `gorm:"column:category"`
	LineItems  []byte    `gorm:"column:line_items;type:jsonb"`
	LastUsedAt time.Time `gorm:"column:last_used_at"`
}

func (quoteTemplateModel) TableName() string {
	return "quote_templates"
}

func (m quoteTemplateModel) toEntity() (entities.QuoteTemplate, error) {
	var items []entities.LineItem
	if len(m.LineItems) > 0 {
		if err := json.Unmarshal(m.LineItems, &items); err != nil {
			return entities.QuoteTemplate{}, err
		}
	}
	return entities.QuoteTemplate{
		ID:         m.ID,
		VendorID:   m.VendorID,
		Category:   m.Category,
		LineItems:  items,
		LastUsedAt: m.LastUsedAt.UTC(),
	}, nil
}

type projectRefModel struct {
	ID string `gorm:"column:id;primaryKey"`
}

func (projectRefModel) TableName() string {
	return "projects"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.TemplateRepository = (*Repository)(nil)
var _ ports.ProjectDirectory = (*Repository)(nil)
