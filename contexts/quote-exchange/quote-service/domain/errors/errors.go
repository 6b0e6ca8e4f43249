package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrQuoteNotFound           = errors.New("quote not found")
	ErrProjectNotFound         = errors.New("project not found")
	ErrInvalidQuoteInput       = errors.New("invalid quote input")
	ErrTotalMismatch           = errors.New("quote total does not match line items")
	ErrInvalidStatusTransition = errors.New("invalid quote status transition")
)

// SchemaError carries the itemized shape violations of a rejected quote.
// errors.Is matches ErrInvalidQuoteInput.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return "invalid quote input: " + strings.Join(e.Violations, "; ")
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidQuoteInput
}

// TotalMismatchError carries both totals of a failed reconciliation.
// errors.Is matches ErrTotalMismatch.
type TotalMismatchError struct {
	DeclaredTotal int64
	ComputedTotal int64
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("quote total %d does not match computed %d", e.DeclaredTotal, e.ComputedTotal)
}

func (e *TotalMismatchError) Is(target error) bool {
	return target == ErrTotalMismatch
}
