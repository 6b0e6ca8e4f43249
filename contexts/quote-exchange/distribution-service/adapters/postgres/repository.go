package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"renopick/contexts/quote-exchange/distribution-service/domain/entities"
	domainerrors "renopick/contexts/quote-exchange/distribution-service/domain/errors"
	"renopick/contexts/quote-exchange/distribution-service/ports"

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

func (r *Repository) LatestRound(ctx context.Context, projectID string) (entities.DistributionRound, error) {
	var row distributionRoundModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		Order("distributed_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DistributionRound{}, domainerrors.ErrRoundNotFound
		}
		return entities.DistributionRound{}, r.logError("distribution_repo_latest_round_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	return row.toEntity(), nil
}

// BeginRound serializes round creation per project with a transaction-scoped
// advisory lock, re-reads the latest round inside the critical section, and
// inserts only when no cooldown is active. Concurrent racers on the same
// project queue on the lock and observe each other's rounds.
func (r *Repository) BeginRound(ctx context.Context, round entities.DistributionRound) error {
	projectID := strings.TrimSpace(round.ProjectID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", projectID).Error; err != nil {
			return err
		}

		var latest distributionRoundModel
		err := tx.
			Where("project_id = ?", projectID).
			Order("distributed_at DESC").
			First(&latest).
			Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil && latest.CooldownUntil.After(round.DistributedAt) {
			return &domainerrors.CooldownActiveError{CooldownUntil: latest.CooldownUntil.UTC()}
		}

		row := distributionRoundModel{
			ID:            strings.TrimSpace(round.ID),
			ProjectID:     projectID,
			DistributedAt: round.DistributedAt.UTC(),
			CooldownUntil: round.CooldownUntil.UTC(),
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrCooldownActive) {
			r.logWarn("distribution_repo_begin_round_throttled",
				"project_id", projectID,
				"round_id", strings.TrimSpace(round.ID),
			)
			return err
		}
		if isUniqueViolation(err) {
			r.logWarn("distribution_repo_begin_round_conflict",
				"project_id", projectID,
				"round_id", strings.TrimSpace(round.ID),
			)
			return &domainerrors.CooldownActiveError{CooldownUntil: round.CooldownUntil}
		}
		return r.logError("distribution_repo_begin_round_failed", err,
			"project_id", projectID,
			"round_id", strings.TrimSpace(round.ID),
		)
	}
	return nil
}

func (r *Repository) AddAssignments(ctx context.Context, assignments []entities.VendorAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	rows := make([]vendorAssignmentModel, 0, len(assignments))
	for _, assignment := range assignments {
		rows = append(rows, vendorAssignmentModel{
			ID:            strings.TrimSpace(assignment.ID),
			RoundID:       strings.TrimSpace(assignment.RoundID),
			ProjectID:     strings.TrimSpace(assignment.ProjectID),
			VendorID:      strings.TrimSpace(assignment.VendorID),
			DistributedAt: assignment.DistributedAt.UTC(),
			CooldownUntil: assignment.CooldownUntil.UTC(),
		})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return r.logError("distribution_repo_add_assignments_failed", err,
			"project_id", rows[0].ProjectID,
			"round_id", rows[0].RoundID,
			"assignment_count", len(rows),
		)
	}
	return nil
}

func (r *Repository) ListAssignments(ctx context.Context, projectID string) ([]entities.VendorAssignment, error) {
	var rows []vendorAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		Order("distributed_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("distribution_repo_list_assignments_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	assignments := make([]entities.VendorAssignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, row.toEntity())
	}
	return assignments, nil
}

// ListVerified is a read-only projection over the vendor-management
// vendor_profiles table, used for selection only.
func (r *Repository) ListVerified(ctx context.Context) ([]entities.VendorProfile, error) {
	var rows []vendorProfileModel
	if err := r.db.WithContext(ctx).
		Where("verified = ?", true).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("distribution_repo_list_vendors_failed", err)
	}
	vendors := make([]entities.VendorProfile, 0, len(rows))
	for _, row := range rows {
		vendors = append(vendors, entities.VendorProfile{
			VendorID:    row.ID,
			Verified:    row.Verified,
			Specialties: append([]string(nil), row.Specialties...),
			MinTicket:   row.MinTicket,
			Regions:     append([]string(nil), row.Regions...),
		})
	}
	return vendors, nil
}

// GetProjectRef is a read-only projection over the project-service projects
// table, used for existence and budget only.
func (r *Repository) GetProjectRef(ctx context.Context, projectID string) (entities.ProjectRef, error) {
	var row projectRefModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(projectID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ProjectRef{}, domainerrors.ErrProjectNotFound
		}
		return entities.ProjectRef{}, r.logError("distribution_repo_get_project_failed", err,
			"project_id", strings.TrimSpace(projectID),
		)
	}
	return entities.ProjectRef{ID: row.ID, Budget: row.Budget}, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "quote-exchange/distribution-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("distribution repository operation failed", fields...)
	return err
}

func (r *Repository) logWarn(event string, attrs ...any) {
	fields := make([]any, 0, len(attrs)+5)
	fields = append(fields,
		"event", event,
		"module", "quote-exchange/distribution-service",
		"layer", "adapter",
	)
	fields = append(fields, attrs...)
	r.logger.Warn("distribution repository warning", fields...)
}

type distributionRoundModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	ProjectID     string    `gorm:"column:project_id"`
	DistributedAt time.Time `gorm:"column:distributed_at"`
	CooldownUntil time.Time `gorm:"column:cooldown_until"`
}

func (distributionRoundModel) TableName() string {
	return "distribution_rounds"
}

func (m distributionRoundModel) toEntity() entities.DistributionRound {
	return entities.DistributionRound{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		DistributedAt: m.DistributedAt.UTC(),
		CooldownUntil: m.CooldownUntil.UTC(),
	}
}

type vendorAssignmentModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	RoundID       string    `gorm:"column:round_id"`
	ProjectID     string    `gorm:"column:project_id"`
	VendorID      string    `gorm:"column:vendor_id"`
	DistributedAt time.Time `gorm:"column:distributed_at"`
	CooldownUntil time.Time `gorm:"column:cooldown_until"`
}

func (vendorAssignmentModel) TableName() string {
	return "vendor_assignments"
}

func (m vendorAssignmentModel) toEntity() entities.VendorAssignment {
	return entities.VendorAssignment{
		ID:            m.ID,
		RoundID:       m.RoundID,
		ProjectID:     m.ProjectID,
		VendorID:      m.VendorID,
		DistributedAt: m.DistributedAt.UTC(),
		CooldownUntil: m.CooldownUntil.UTC(),
	}
}

type vendorProfileModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Verified    bool      `gorm:"column:verified"`
	Specialties []string  `gorm:"column:specialties;type:text[]"`
	MinTicket   int64     `gorm:"column:min_ticket"`
	Regions     []string  `gorm:"column:regions;type:text[]"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (vendorProfileModel) TableName() string {
	return "vendor_profiles"
}

type projectRefModel struct {
	ID     string `gorm:"column:id;primaryKey"`
	Budget int64  `gorm:"column:budget"`
}

func (projectRefModel) TableName() string {
	return "projects"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.VendorDirectory = (*Repository)(nil)
var _ ports.ProjectDirectory = (*Repository)(nil)
