package memory

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"renopick/contexts/quote-exchange/quote-service/domain/entities"
	domainerrors "renopick/contexts/quote-exchange/quote-service/domain/errors"
	"renopick/contexts/quote-exchange/quote-service/ports"
	"renopick/internal/shared/events"
	"renopick/internal/shared/outbox"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	quotes    map[string]entities.Quote
	templates []entities.QuoteTemplate
	projects  map[string]struct{}
	pending   []outbox.Message
	published map[string]time.Time
	failSaves bool
	nowFn     func() time.Time
}

var errSaveDisabled = errors.New("template saves disabled")

func NewStore(projectIDs []string) *Store {
	projects := make(map[string]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		projects[id] = struct{}{}
	}
	return &Store{
		quotes:    make(map[string]entities.Quote),
		projects:  projects,
		published: make(map[string]time.Time),
	}
}

// SetNow overrides the store clock for tests.
func (s *Store) SetNow(nowFn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = nowFn
}

// FailTemplateSaves makes SaveTemplate error; tests use it to exercise the
// best-effort snapshot path.
func (s *Store) FailTemplateSaves(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSaves = fail
}

func (s *Store) CreateQuote(_ context.Context, quote entities.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[quote.ID] = quote
	return nil
}

func (s *Store) GetQuote(_ context.Context, quoteID string) (entities.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quote, exists := s.quotes[quoteID]
	if !exists {
		return entities.Quote{}, domainerrors.ErrQuoteNotFound
	}
	return quote, nil
}

func (s *Store) ListByProject(_ context.Context, projectID string) ([]entities.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listed := make([]entities.Quote, 0)
	for _, quote := range s.quotes {
		if quote.ProjectID == projectID {
			listed = append(listed, quote)
		}
	}
	sort.SliceStable(listed, func(i, j int) bool {
		return listed[i].SubmittedAt.After(listed[j].SubmittedAt)
	})
	return listed, nil
}

func (s *Store) UpdateStatus(_ context.Context, quoteID string, status entities.QuoteStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quote, exists := s.quotes[quoteID]
	if !exists {
		return domainerrors.ErrQuoteNotFound
	}
	quote.Status = status
	quote.UpdatedAt = updatedAt
	s.quotes[quoteID] = quote
	return nil
}

func (s *Store) SaveTemplate(_ context.Context, template entities.QuoteTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSaves {
		return errSaveDisabled
	}
	s.templates = append(s.templates, template)
	return nil
}

func (s *Store) ListRecentTemplates(_ context.Context, vendorID string, category string, limit int) ([]entities.QuoteTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.QuoteTemplate, 0)
	for _, template := range s.templates {
		if template.VendorID != vendorID {
			continue
		}
		if category != "" && template.Category != category {
			continue
		}
		matched = append(matched, template)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].LastUsedAt.After(matched[j].LastUsedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *Store) ProjectExists(_ context.Context, projectID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.projects[strings.TrimSpace(projectID)]
	return exists, nil
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
	s.mu.RLock()
	defer s.mu.RUnlock()

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
var _ ports.TemplateRepository = (*Store)(nil)
var _ ports.ProjectDirectory = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
