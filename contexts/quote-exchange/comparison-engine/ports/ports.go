package ports

import "context"

// QuoteRecord is the raw stored shape of a quote as the comparator reads it.
// LineItems is the untouched jsonb payload; decoding is a domain concern.
type QuoteRecord struct {
	ID        string
	ProjectID string
	LineItems []byte
}

// QuoteSource is a read-only projection over the quote-service quotes table.
type QuoteSource interface {
	GetQuotes(ctx context.Context, quoteIDs []string) ([]QuoteRecord, error)
}
