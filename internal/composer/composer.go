package composer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/smarttransit/route-composer/internal/models"
	"github.com/smarttransit/route-composer/pkg/validator"
)

// IDFunc generates the unique part of a segment id
type IDFunc func() string

// Composer appends segments to a State
type Composer struct {
	validator *validator.SegmentValidator
	newID     IDFunc
}

// New creates a composer. A nil newID falls back to random UUIDs.
func New(newID IDFunc) *Composer {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Composer{
		validator: validator.NewSegmentValidator(),
		newID:     newID,
	}
}

// AppendManual appends a hand-entered segment.
// Rules:
// 1. From, To and LeadTimeDays must all be filled in
// 2. LeadTimeDays must be a whole number within validator.MaxLeadTimeDays
//    that keeps the chain total representable
// 3. From must equal the destination of the last segment, if any
// On success the pending input buffer is cleared.
func (c *Composer) AppendManual(st State, cand models.Candidate) (State, error) {
	days, err := c.validator.ValidateFields(cand.From, cand.To, cand.LeadTimeDays)
	if err != nil {
		return st, fieldError(cand, err)
	}

	if err := st.checkContinuity(cand.From); err != nil {
		return st, err
	}
	if err := st.checkLeadTime(cand.From, days); err != nil {
		return st, err
	}

	next := st.appendSegment(models.Segment{
		ID:           "manual-" + c.newID(),
		From:         cand.From,
		To:           cand.To,
		LeadTimeDays: days,
		Origin:       models.SegmentOriginManual,
	})
	next.pending = models.Candidate{}
	return next, nil
}

// AppendExisting appends a snapshot of a registry route. Later changes to
// the registry do not affect the appended segment. A route whose lead time is
// negative or would overflow the chain total is rejected. The pending input
// buffer is left as is.
func (c *Composer) AppendExisting(st State, route models.Route) (State, error) {
	if err := st.checkContinuity(route.From); err != nil {
		return st, err
	}
	if err := st.checkLeadTime(route.From, route.LeadTimeDays); err != nil {
		return st, err
	}

	sourceID := route.ID
	return st.appendSegment(models.Segment{
		ID:            fmt.Sprintf("route-%d-%s", route.ID, c.newID()),
		From:          route.From,
		To:            route.To,
		LeadTimeDays:  route.LeadTimeDays,
		Origin:        models.SegmentOriginExisting,
		SourceRouteID: &sourceID,
	}), nil
}

func fieldError(cand models.Candidate, err error) *ChainError {
	reason := ReasonMissingField
	if errors.Is(err, validator.ErrInvalidLeadTime) {
		reason = ReasonInvalidLeadTime
	}
	return &ChainError{
		Reason:  reason,
		Message: err.Error(),
		Origin:  cand.From,
		Err:     err,
	}
}
