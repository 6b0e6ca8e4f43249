package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"renopick/contexts/consumer-projects/project-service/domain/entities"
	domainerrors "renopick/contexts/consumer-projects/project-service/domain/errors"
	"renopick/contexts/consumer-projects/project-service/ports"

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

func (r *Repository) CreateProject(ctx context.Context, project entities.Project) error {
	row, err := projectModelFromEntity(project)
	if err != nil {
		return r.logError("project_repo_create_marshal_failed", err,
			"project_id", strings.TrimSpace(project.ID),
		)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			r.logWarn("project_repo_create_unique_conflict",
				"project_id", row.ID,
			)
			return domainerrors.ErrProjectExists
		}
		return r.logError("project_repo_create_failed", err,
			"project_id", row.ID,
			"owner_id", row.OwnerID,
		)
	}
	return nil
}

func (r *Repository) AddPhotos(ctx context.Context, photos []entities.ProjectPhoto) error {
	if len(photos) == 0 {
		return nil
	}
	rows := make([]projectPhotoModel, 0, len(photos))
	for _, photo := range photos {
		rows = append(rows, projectPhotoModel{
			ID:         strings.TrimSpace(photo.ID),
			ProjectID:  strings.TrimSpace(photo.ProjectID),
			StorageURL: strings.TrimSpace(photo.StorageURL),
			OrderIndex: photo.OrderIndex,
			CreatedAt:  photo.CreatedAt.UTC(),
		})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return r.logError("project_repo_add_photos_failed", err,
			"project_id", rows[0].ProjectID,
			"photo_count", len(rows),
		)
	}
	return nil
}

func (r *Repository) GetProject(ctx context.Context, projectID string) (entities.Project, error) {
	var row projectModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(projectID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Project{}, domainerrors.ErrProjectNotFound
		}
		return entities.Project{}, r.logError("project_repo_get_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	return row.toEntity()
}

func (r *Repository) ListProjects(ctx context.Context, status string) ([]entities.Project, error) {
	query := r.db.WithContext(ctx).Model(&projectModel{})
	if strings.TrimSpace(status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(status))
	}
	var rows []projectModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, r.logError("project_repo_list_failed", err,
			"status", strings.TrimSpace(status),
		)
	}
	projects := make([]entities.Project, 0, len(rows))
	for _, row := range rows {
		project, err := row.toEntity()
		if err != nil {
			return nil, r.logError("project_repo_list_decode_failed", err,
				"project_id", row.ID,
			)
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (r *Repository) UpdateStatus(
	ctx context.Context,
	projectID string,
	status entities.ProjectStatus,
	updatedAt time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&projectModel{}).
		Where("id = ?", strings.TrimSpace(projectID)).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("project_repo_update_status_failed", result.Error,
			"project_id", strings.TrimSpace(projectID),
			"status", string(status),
		)
	}
	if result.RowsAffected == 0 {
		r.logWarn("project_repo_update_status_not_found",
			"project_id", strings.TrimSpace(projectID),
		)
		return domainerrors.ErrProjectNotFound
	}
	return nil
}

func (r *Repository) ListOverduePending(
	ctx context.Context,
	threshold time.Time,
	limit int,
) ([]entities.Project, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []projectModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.ProjectStatusPending)).
		Where("sla_deadline <= ?", threshold.UTC()).
		Order("sla_deadline ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("project_repo_list_overdue_failed", err,
			"threshold_utc", threshold.UTC().Format(time.RFC3339),
			"limit", limit,
		)
	}
	projects := make([]entities.Project, 0, len(rows))
	for _, row := range rows {
		project, err := row.toEntity()
		if err != nil {
			return nil, r.logError("project_repo_list_overdue_decode_failed", err,
				"project_id", row.ID,
			)
		}
		projects = append(projects, project)
	}
	return projects, nil
}

// CountQuotesByProject is a read-only projection over the quote-service
// quotes table, used for SLA evaluation only.
func (r *Repository) CountQuotesByProject(ctx context.Context, projectID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&quoteProjectionModel{}).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		Count(&count).
		Error; err != nil {
		return 0, r.logError("project_repo_count_quotes_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	return int(count), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "consumer-projects/project-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("project repository operation failed", fields...)
	return err
}

func (r *Repository) logWarn(event string, attrs ...any) {
	fields := make([]any, 0, len(attrs)+5)
	fields = append(fields,
		"event", event,
		"module", "consumer-projects/project-service",
		"layer", "adapter",
	)
	fields = append(fields, attrs...)
	r.logger.Warn("project repository warning", fields...)
}

type projectModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	OwnerID         string    `gorm:"column:owner_id"`
	Title           string    `gorm:"column:title"`
	SpaceTypes      []string  `gorm:"column:space_types;type:text[]"`
	AreaValue       float64   `gorm:"column:area_value"`
	AreaUnit        string    `gorm:"column:area_unit"`
	Budget          int64     `gorm:"column:budget"`
	IsRental        bool      `gorm:"column:is_rental"`
	RentalChecklist []byte    `gorm:"column:rental_checklist;type:jsonb"`
	Status          string    `gorm:"column:status"`
	SLADeadline     time.Time `gorm:"column:sla_deadline"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (projectModel) TableName() string {
	return "projects"
}

func projectModelFromEntity(project entities.Project) (projectModel, error) {
	row := projectModel{
		ID:          strings.TrimSpace(project.ID),
		OwnerID:     strings.TrimSpace(project.OwnerID),
		Title:       strings.TrimSpace(project.Title),
		SpaceTypes:  append([]string(nil), project.SpaceTypes...),
		AreaValue:   project.AreaValue,
		AreaUnit:    strings.TrimSpace(project.AreaUnit),
		Budget:      project.Budget,
		IsRental:    project.IsRental,
		Status:      string(project.Status),
		SLADeadline: project.SLADeadline.UTC(),
		CreatedAt:   project.CreatedAt.UTC(),
		UpdatedAt:   project.UpdatedAt.UTC(),
	}
	if project.RentalChecklist != nil {
		payload, err := json.Marshal(project.RentalChecklist)
		if err != nil {
			return projectModel{}, err
		}
		row.RentalChecklist = payload
	}
	return row, nil
}

func (m projectModel) toEntity() (entities.Project, error) {
	project := entities.Project{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		SpaceTypes:  append([]string(nil), m.SpaceTypes...),
		AreaValue:   m.AreaValue,
		AreaUnit:    m.AreaUnit,
		Budget:      m.Budget,
		IsRental:    m.IsRental,
		Status:      entities.ProjectStatus(m.Status),
		SLADeadline: m.SLADeadline.UTC(),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if len(m.RentalChecklist) > 0 {
		var checklist entities.RentalChecklist
		if err := json.Unmarshal(m.RentalChecklist, &checklist); err != nil {
			return entities.Project{}, err
		}
		project.RentalChecklist = &checklist
	}
	return project, nil
}

type projectPhotoModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ProjectID  string    `gorm:"column:project_id"`
	StorageURL string    `gorm:"column:storage_url"`
	OrderIndex int       `gorm:"column:order_index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (projectPhotoModel) TableName() string {
	return "project_photos"
}

type quoteProjectionModel struct {
	ID        string `gorm:"column:id;primaryKey"`
	ProjectID string `gorm:"column:project_id"`
}

func (quoteProjectionModel) TableName() string {
	return "quotes"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.QuoteCounter = (*Repository)(nil)
