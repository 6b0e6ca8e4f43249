package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"renopick/contexts/quote-exchange/distribution-service/domain/entities"
	domainerrors "renopick/contexts/quote-exchange/distribution-service/domain/errors"
	"renopick/contexts/quote-exchange/distribution-service/ports"
	"renopick/internal/shared/events"
	"renopick/internal/shared/outbox"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.Mutex

	rounds      map[string][]entities.DistributionRound
	assignments map[string][]entities.VendorAssignment
	vendors     []entities.VendorProfile
	projects    map[string]entities.ProjectRef
	pending     []outbox.Message
	published   map[string]time.Time
	nowFn       func() time.Time
}

func NewStore(vendors []entities.VendorProfile, projects []entities.ProjectRef) *Store {
	refs := make(map[string]entities.ProjectRef, len(projects))
	for _, project := range projects {
		refs[project.ID] = project
	}
	return &Store{
		rounds:      make(map[string][]entities.DistributionRound),
		assignments: make(map[string][]entities.VendorAssignment),
		vendors:     append([]entities.VendorProfile(nil), vendors...),
		projects:    refs,
		published:   make(map[string]time.Time),
	}
}

// SetNow overrides the store clock; tests use it to move time across the
// cooldown boundary.
func (s *Store) SetNow(nowFn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = nowFn
}

func (s *Store) LatestRound(_ context.Context, projectID string) (entities.DistributionRound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestRoundLocked(projectID)
}

func (s *Store) latestRoundLocked(projectID string) (entities.DistributionRound, error) {
	rounds := s.rounds[projectID]
	if len(rounds) == 0 {
		return entities.DistributionRound{}, domainerrors.ErrRoundNotFound
	}
	latest := rounds[0]
	for _, round := range rounds[1:] {
		if round.DistributedAt.After(latest.DistributedAt) {
			latest = round
		}
	}
	return latest, nil
}

func (s *Store) BeginRound(_ context.Context, round entities.DistributionRound) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest, err := s.latestRoundLocked(round.ProjectID)
	if err == nil && latest.CooldownUntil.After(round.DistributedAt) {
		return &domainerrors.CooldownActiveError{CooldownUntil: latest.CooldownUntil}
	}
	s.rounds[round.ProjectID] = append(s.rounds[round.ProjectID], round)
	return nil
}

func (s *Store) AddAssignments(_ context.Context, assignments []entities.VendorAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, assignment := range assignments {
		s.assignments[assignment.ProjectID] = append(s.assignments[assignment.ProjectID], assignment)
	}
	return nil
}

func (s *Store) ListAssignments(_ context.Context, projectID string) ([]entities.VendorAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listed := append([]entities.VendorAssignment(nil), s.assignments[projectID]...)
	sort.SliceStable(listed, func(i, j int) bool {
		return listed[i].DistributedAt.After(listed[j].DistributedAt)
	})
	return listed, nil
}

func (s *Store) ListVerified(_ context.Context) ([]entities.VendorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	verified := make([]entities.VendorProfile, 0, len(s.vendors))
	for _, vendor := range s.vendors {
		if vendor.Verified {
			verified = append(verified, vendor)
		}
	}
	return verified, nil
}

func (s *Store) GetProjectRef(_ context.Context, projectID string) (entities.ProjectRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, exists := s.projects[projectID]
	if !exists {
		return entities.ProjectRef{}, domainerrors.ErrProjectNotFound
	}
	return project, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope events.Envelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, outbox.Message{
		OutboxID:     envelope.EventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		CreatedAt:    envelope.OccurredAt,
	})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listed := make([]outbox.Message, 0, limit)
	for _, message := range s.pending {
		if _, sent := s.published[message.OutboxID]; sent {
			continue
		}
		listed = append(listed, message)
		if len(listed) == limit {
			break
		}
	}
	return listed, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published[outboxID] = publishedAt
	return nil
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	nowFn := s.nowFn
	s.mu.Unlock()

	if nowFn != nil {
		return nowFn().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.Repository = (*Store)(nil)
var _ ports.VendorDirectory = (*Store)(nil)
var _ ports.ProjectDirectory = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
