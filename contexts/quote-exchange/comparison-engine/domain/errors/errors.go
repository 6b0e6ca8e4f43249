package errors

import (
	"errors"
	"fmt"
)

var (
	ErrQuoteNotFound           = errors.New("quote not found")
	ErrInvalidQuoteCardinality = errors.New("comparison requires two or three quotes")
)

// CardinalityError reports how many quote identifiers the caller supplied.
// errors.Is matches ErrInvalidQuoteCardinality.
type CardinalityError struct {
	Count int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("comparison requires two or three quotes, got %d", e.Count)
}

func (e *CardinalityError) Is(target error) bool {
	return target == ErrInvalidQuoteCardinality
}
