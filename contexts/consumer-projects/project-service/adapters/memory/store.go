package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"renopick/contexts/consumer-projects/project-service/domain/entities"
	domainerrors "renopick/contexts/consumer-projects/project-service/domain/errors"
	"renopick/contexts/consumer-projects/project-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	projects    map[string]entities.Project
	photos      map[string][]entities.ProjectPhoto
	quoteCounts map[string]int
	nowFn       func() time.Time
}

func NewStore(seed []entities.Project) *Store {
	projects := make(map[string]entities.Project, len(seed))
	for _, project := range seed {
		projects[project.ID] = project
	}
	return &Store{
		projects:    projects,
		photos:      make(map[string][]entities.ProjectPhoto),
		quoteCounts: make(map[string]int),
	}
}

// SetNow overrides the store clock; tests use it to move time across the
// SLA deadline.
func (s *Store) SetNow(nowFn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = nowFn
}

// SetQuoteCount seeds the quote projection for a project.
func (s *Store) SetQuoteCount(projectID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quoteCounts[projectID] = count
}

func (s *Store) CreateProject(_ context.Context, project entities.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[project.ID]; exists {
		return domainerrors.ErrProjectExists
	}
	s.projects[project.ID] = project
	return nil
}

func (s *Store) AddPhotos(_ context.Context, photos []entities.ProjectPhoto) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, photo := range photos {
		if _, exists := s.projects[photo.ProjectID]; !exists {
			return domainerrors.ErrProjectNotFound
		}
		s.photos[photo.ProjectID] = append(s.photos[photo.ProjectID], photo)
	}
	return nil
}

func (s *Store) GetProject(_ context.Context, projectID string) (entities.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, exists := s.projects[strings.TrimSpace(projectID)]
	if !exists {
		return entities.Project{}, domainerrors.ErrProjectNotFound
	}
	return project, nil
}

func (s *Store) ListProjects(_ context.Context, status string) ([]entities.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]entities.Project, 0, len(s.projects))
	for _, project := range s.projects {
		if status != "" && string(project.Status) != status {
			continue
		}
		projects = append(projects, project)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (s *Store) UpdateStatus(
	_ context.Context,
	projectID string,
	status entities.ProjectStatus,
	updatedAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, exists := s.projects[strings.TrimSpace(projectID)]
	if !exists {
		return domainerrors.ErrProjectNotFound
	}
	project.Status = status
	project.UpdatedAt = updatedAt.UTC()
	s.projects[project.ID] = project
	return nil
}

func (s *Store) ListOverduePending(_ context.Context, threshold time.Time, limit int) ([]entities.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	projects := make([]entities.Project, 0, limit)
	for _, project := range s.projects {
		if project.Status != entities.ProjectStatusPending {
			continue
		}
		if project.SLADeadline.After(threshold.UTC()) {
			continue
		}
		projects = append(projects, project)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].SLADeadline.Before(projects[j].SLADeadline)
	})
	if len(projects) > limit {
		projects = projects[:limit]
	}
	return projects, nil
}

func (s *Store) CountQuotesByProject(_ context.Context, projectID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quoteCounts[strings.TrimSpace(projectID)], nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	nowFn := s.nowFn
	s.mu.RUnlock()
	if nowFn != nil {
		return nowFn().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.Repository = (*Store)(nil)
var _ ports.QuoteCounter = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
