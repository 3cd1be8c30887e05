package composer

import (
	"github.com/smarttransit/route-composer/internal/models"
	"github.com/smarttransit/route-composer/internal/registry"
)

// Fold builds a composite route from segments, leaving the id unset.
// Segments are folded literally: continuity is not re-checked, so a chain
// left discontinuous by RemoveAt still folds by the same rules.
func Fold(segments []models.Segment) (models.Route, bool) {
	if len(segments) == 0 {
		return models.Route{}, false
	}

	last := len(segments) - 1
	route := models.Route{
		From:      segments[0].From,
		To:        segments[last].To,
		Composite: true,
		Via:       make([]string, 0, last),
		Segments:  make([]models.Segment, len(segments)),
	}

	for i, seg := range segments {
		route.LeadTimeDays += seg.LeadTimeDays
		if i < last {
			route.Via = append(route.Via, seg.To)
		}
	}
	copy(route.Segments, segments)

	// Clone detaches segment pointers from the composer snapshot.
	return route.Clone(), true
}

// Save folds the composed chain into a new registry route and clears the
// composer. With an empty chain nothing changes and ok is false.
func Save(st State, reg registry.Registry) (State, registry.Registry, models.Route, bool) {
	route, ok := Fold(st.segments)
	if !ok {
		return st, reg, models.Route{}, false
	}

	reg, saved := reg.Add(route)
	return st.Clear(), reg, saved, true
}
