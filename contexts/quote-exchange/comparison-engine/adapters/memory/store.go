package memory

import (
	"context"
	"sync"

	"renopick/contexts/quote-exchange/comparison-engine/ports"
)

type Store struct {
	mu     sync.RWMutex
	quotes map[string]ports.QuoteRecord
}

func NewStore(seed []ports.QuoteRecord) *Store {
	quotes := make(map[string]ports.QuoteRecord, len(seed))
	for _, record := range seed {
		quotes[record.ID] = record
	}
	return &Store{quotes: quotes}
}

func (s *Store) GetQuotes(_ context.Context, quoteIDs []string) ([]ports.QuoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]ports.QuoteRecord, 0, len(quoteIDs))
	for _, id := range quoteIDs {
		if record, found := s.quotes[id]; found {
			records = append(records, record)
		}
	}
	return records, nil
}

var _ ports.QuoteSource = (*Store)(nil)
