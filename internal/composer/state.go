// Package composer chains segments into composite routes.
//
// State is an immutable snapshot: every operation returns a new State and
// leaves its input untouched, so callers can keep old snapshots for undo or
// comparison. A rejected operation returns the input State unchanged together
// with a *ChainError.
package composer

import (
	"math"

	"github.com/smarttransit/route-composer/internal/models"
)

// State is the route under construction plus the pending input buffer
type State struct {
	segments []models.Segment
	pending  models.Candidate
}

// Segments returns a copy of the composed segments in order
func (s State) Segments() []models.Segment {
	out := make([]models.Segment, len(s.segments))
	for i, seg := range s.segments {
		out[i] = seg.Clone()
	}
	return out
}

// Len returns the number of composed segments
func (s State) Len() int {
	return len(s.segments)
}

// IsEmpty checks if no segment has been composed yet
func (s State) IsEmpty() bool {
	return len(s.segments) == 0
}

// Pending returns the pending input buffer
func (s State) Pending() models.Candidate {
	return s.pending
}

// Terminus returns the destination of the last segment
func (s State) Terminus() (string, bool) {
	if len(s.segments) == 0 {
		return "", false
	}
	return s.segments[len(s.segments)-1].To, true
}

// TotalLeadTime sums the lead times of the composed segments
func (s State) TotalLeadTime() int {
	total := 0
	for _, seg := range s.segments {
		total += seg.LeadTimeDays
	}
	return total
}

// WithPending replaces the pending input buffer
func (s State) WithPending(c models.Candidate) State {
	s.pending = c
	return s
}

// RemoveAt drops the segment at index. The remaining chain is not
// re-validated and may be discontinuous. Out of range indexes are ignored.
func (s State) RemoveAt(index int) State {
	if index < 0 || index >= len(s.segments) {
		return s
	}

	segments := make([]models.Segment, 0, len(s.segments)-1)
	segments = append(segments, s.segments[:index]...)
	segments = append(segments, s.segments[index+1:]...)
	s.segments = segments
	return s
}

// Clear empties the chain and resets the pending input
func (s State) Clear() State {
	return State{}
}

// checkContinuity enforces that origin starts where the chain ends
func (s State) checkContinuity(origin string) error {
	terminus, ok := s.Terminus()
	if !ok {
		return nil
	}
	// Exact comparison: "dubai" and "Dubai" are different locations.
	if terminus != origin {
		return originMismatch(terminus, origin)
	}
	return nil
}

// checkLeadTime rejects negative lead times and ones that would overflow
// the chain total
func (s State) checkLeadTime(origin string, days int) error {
	total := s.TotalLeadTime()
	if days < 0 || days > math.MaxInt-total {
		terminus, _ := s.Terminus()
		return leadTimeOutOfRange(terminus, origin, days, total)
	}
	return nil
}

func (s State) appendSegment(seg models.Segment) State {
	segments := make([]models.Segment, len(s.segments), len(s.segments)+1)
	copy(segments, s.segments)
	s.segments = append(segments, seg)
	return s
}
