package models

import "strings"

// SegmentOrigin tells where a composed segment came from
type SegmentOrigin string

const (
	// SegmentOriginManual marks a segment typed in by the user
	SegmentOriginManual SegmentOrigin = "manual"
	// SegmentOriginExisting marks a segment copied from a route in the registry
	SegmentOriginExisting SegmentOrigin = "existing"
)

// Segment is one directed leg between two named locations
type Segment struct {
	ID            string        `json:"id" yaml:"id"`
	From          string        `json:"from" yaml:"from"`
	To            string        `json:"to" yaml:"to"`
	LeadTimeDays  int           `json:"lead_time_days" yaml:"lead_time_days"`
	Origin        SegmentOrigin `json:"origin" yaml:"origin"`
	SourceRouteID *int          `json:"source_route_id,omitempty" yaml:"source_route_id,omitempty"`
}

// IsManual checks if the segment was entered by hand
func (s Segment) IsManual() bool {
	return s.Origin == SegmentOriginManual
}

// Route is either an atomic point-to-point route or a composite one built
// from chained segments
type Route struct {
	ID           int       `json:"id" yaml:"id"`
	From         string    `json:"from" yaml:"from"`
	To           string    `json:"to" yaml:"to"`
	LeadTimeDays int       `json:"lead_time_days" yaml:"lead_time_days"`
	Composite    bool      `json:"composite" yaml:"composite"`
	Via          []string  `json:"via,omitempty" yaml:"via,omitempty"`
	Segments     []Segment `json:"segments,omitempty" yaml:"segments,omitempty"`
}

// RouteDisplayName returns a formatted route display name
func (r *Route) RouteDisplayName() string {
	if len(r.Via) == 0 {
		return r.From + " - " + r.To
	}
	return r.From + " - " + strings.Join(r.Via, " - ") + " - " + r.To
}

// Clone returns a deep copy so callers can't reach into registry state
func (r Route) Clone() Route {
	out := r
	if r.Via != nil {
		out.Via = make([]string, len(r.Via))
		copy(out.Via, r.Via)
	}
	if r.Segments != nil {
		out.Segments = make([]Segment, len(r.Segments))
		for i, s := range r.Segments {
			out.Segments[i] = s.Clone()
		}
	}
	return out
}

// Clone returns a copy that shares no pointers with s
func (s Segment) Clone() Segment {
	if s.SourceRouteID != nil {
		id := *s.SourceRouteID
		s.SourceRouteID = &id
	}
	return s
}

// Candidate holds the pending segment fields exactly as entered.
// LeadTimeDays stays a string until the segment is appended.
type Candidate struct {
	From         string `json:"from" validate:"required"`
	To           string `json:"to" validate:"required"`
	LeadTimeDays string `json:"lead_time_days" validate:"required,number"`
}

// IsBlank checks if no field has been filled in
func (c Candidate) IsBlank() bool {
	return c == Candidate{}
}
