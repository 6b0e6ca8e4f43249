package errors

import (
	"errors"
	"time"
)

var (
	ErrProjectNotFound          = errors.New("project not found")
	ErrRoundNotFound            = errors.New("distribution round not found")
	ErrNoEligibleVendors        = errors.New("no eligible vendors for project")
	ErrCooldownActive           = errors.New("distribution cooldown active")
	ErrInvalidDistributionInput = errors.New("invalid distribution input")
)

// CooldownActiveError carries the retry-after deadline of the active round.
// errors.Is matches ErrCooldownActive.
type CooldownActiveError struct {
	CooldownUntil time.Time
}

func (e *CooldownActiveError) Error() string {
	return ErrCooldownActive.Error() + " until " + e.CooldownUntil.UTC().Format(time.RFC3339)
}

func (e *CooldownActiveError) Is(target error) bool {
	return target == ErrCooldownActive
}
