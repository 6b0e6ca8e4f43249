package errors

import (
	"errors"
	"strings"
)

var (
	ErrProjectNotFound         = errors.New("project not found")
	ErrProjectExists           = errors.New("project already exists")
	ErrInvalidProjectInput     = errors.New("invalid project input")
	ErrInvalidStatusTransition = errors.New("invalid project status transition")
)

// ValidationError carries per-field violation messages for client-fixable
// input failures. errors.Is matches ErrInvalidProjectInput.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrInvalidProjectInput.Error()
	}
	return ErrInvalidProjectInput.Error() + ": " + strings.Join(e.Violations, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidProjectInput
}
