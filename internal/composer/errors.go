package composer

import (
	"errors"
	"fmt"
)

// ErrChainDiscontinuity is the single error kind raised by the composer.
// Match it with errors.Is; the concrete value is a *ChainError.
var ErrChainDiscontinuity = errors.New("chain discontinuity")

// Reason is a machine readable code the presentation layer maps to a message
type Reason string

const (
	ReasonMissingField    Reason = "missing_field"
	ReasonInvalidLeadTime Reason = "invalid_lead_time"
	ReasonOriginMismatch  Reason = "origin_mismatch"
)

// ChainError represents a rejected append
type ChainError struct {
	Reason   Reason
	Message  string
	Terminus string // "to" of the last segment, empty when the chain is empty
	Origin   string // "from" of the rejected candidate
	Err      error  // underlying field validation error, if any
}

func (e *ChainError) Error() string {
	return e.Message
}

// Is makes every ChainError match ErrChainDiscontinuity
func (e *ChainError) Is(target error) bool {
	return target == ErrChainDiscontinuity
}

func (e *ChainError) Unwrap() error {
	return e.Err
}

func originMismatch(terminus, origin string) *ChainError {
	return &ChainError{
		Reason:   ReasonOriginMismatch,
		Message:  fmt.Sprintf("segment must start from previous destination %q, got %q", terminus, origin),
		Terminus: terminus,
		Origin:   origin,
	}
}

func leadTimeOutOfRange(terminus, origin string, days, total int) *ChainError {
	msg := fmt.Sprintf("lead time of %d days cannot be added to a total of %d days", days, total)
	if days < 0 {
		msg = fmt.Sprintf("lead time must not be negative, got %d days", days)
	}
	return &ChainError{
		Reason:   ReasonInvalidLeadTime,
		Message:  msg,
		Terminus: terminus,
		Origin:   origin,
	}
}
