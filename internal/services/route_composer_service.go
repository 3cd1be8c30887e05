package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/smarttransit/route-composer/internal/composer"
	"github.com/smarttransit/route-composer/internal/models"
	"github.com/smarttransit/route-composer/internal/registry"
)

// ErrRouteNotFound is returned when a route id is not in the registry
var ErrRouteNotFound = errors.New("route not found")

// RouteComposerService owns one editing session: the route under
// construction, the route registry and the expanded-route view state.
// It applies one operation at a time and is not safe for concurrent use.
type RouteComposerService struct {
	composer *composer.Composer
	state    composer.State
	registry registry.Registry
	expanded models.IDSet
	logger   *logrus.Logger
}

// NewRouteComposerService creates a session seeded with pre-existing routes
func NewRouteComposerService(
	c *composer.Composer,
	seedRoutes []models.Route,
	logger *logrus.Logger,
) (*RouteComposerService, error) {
	reg, err := registry.Seeded(seedRoutes)
	if err != nil {
		return nil, fmt.Errorf("failed to seed route registry: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"route_count": reg.Len(),
		"next_id":     reg.NextID(),
	}).Info("Route registry seeded")

	return &RouteComposerService{
		composer: c,
		registry: reg,
		logger:   logger,
	}, nil
}

// State returns the current composer snapshot
func (s *RouteComposerService) State() composer.State {
	return s.state
}

// Segments returns the route under construction for live preview
func (s *RouteComposerService) Segments() []models.Segment {
	return s.state.Segments()
}

// TotalLeadTime returns the live lead time of the route under construction
func (s *RouteComposerService) TotalLeadTime() int {
	return s.state.TotalLeadTime()
}

// Pending returns the pending input buffer
func (s *RouteComposerService) Pending() models.Candidate {
	return s.state.Pending()
}

// SetPending replaces the pending input buffer
func (s *RouteComposerService) SetPending(c models.Candidate) {
	s.state = s.state.WithPending(c)
}

// AppendManual appends a hand-entered segment. A rejected candidate leaves
// the session untouched and returns a *composer.ChainError.
func (s *RouteComposerService) AppendManual(c models.Candidate) error {
	next, err := s.composer.AppendManual(s.state, c)
	if err != nil {
		s.logRejected(err, c.From)
		return err
	}

	s.state = next
	s.logger.WithFields(logrus.Fields{
		"from":          c.From,
		"to":            c.To,
		"segment_count": s.state.Len(),
	}).Debug("Manual segment appended")
	return nil
}

// AppendPending appends the pending input buffer as a manual segment
func (s *RouteComposerService) AppendPending() error {
	return s.AppendManual(s.state.Pending())
}

// AppendExisting appends a snapshot of a registry route
func (s *RouteComposerService) AppendExisting(routeID int) error {
	route, ok := s.registry.Get(routeID)
	if !ok {
		return fmt.Errorf("append route %d: %w", routeID, ErrRouteNotFound)
	}

	next, err := s.composer.AppendExisting(s.state, route)
	if err != nil {
		s.logRejected(err, route.From)
		return err
	}

	s.state = next
	s.logger.WithFields(logrus.Fields{
		"route_id":      routeID,
		"segment_count": s.state.Len(),
	}).Debug("Existing route appended")
	return nil
}

// RemoveSegmentAt drops a segment without re-validating the chain
func (s *RouteComposerService) RemoveSegmentAt(index int) {
	s.state = s.state.RemoveAt(index)
	s.logger.WithFields(logrus.Fields{
		"index":         index,
		"segment_count": s.state.Len(),
	}).Debug("Segment removed")
}

// Clear discards the route under construction
func (s *RouteComposerService) Clear() {
	s.state = s.state.Clear()
	s.logger.Debug("Composer cleared")
}

// Save stores the route under construction as a composite route.
// ok is false when there was nothing to save.
func (s *RouteComposerService) Save() (models.Route, bool) {
	state, reg, route, ok := composer.Save(s.state, s.registry)
	if !ok {
		return models.Route{}, false
	}

	s.state = state
	s.registry = reg
	s.logger.WithFields(logrus.Fields{
		"route_id":       route.ID,
		"from":           route.From,
		"to":             route.To,
		"lead_time_days": route.LeadTimeDays,
		"segment_count":  len(route.Segments),
	}).Info("Composite route saved")
	return route, true
}

// DeleteRoute removes a route; unknown ids are ignored
func (s *RouteComposerService) DeleteRoute(id int) {
	before := s.registry.Len()
	s.registry = s.registry.Delete(id)
	s.expanded = s.expanded.Remove(id)

	if s.registry.Len() != before {
		s.logger.WithField("route_id", id).Info("Route deleted")
	}
}

// ListRoutes returns all routes in insertion order
func (s *RouteComposerService) ListRoutes() []models.Route {
	return s.registry.List()
}

// Route looks up a route by id
func (s *RouteComposerService) Route(id int) (models.Route, bool) {
	return s.registry.Get(id)
}

// ToggleSelected flips the selection mark of a route
func (s *RouteComposerService) ToggleSelected(id int) {
	s.registry = s.registry.ToggleSelected(id)
}

// SelectedRoutes returns the selected route ids in ascending order
func (s *RouteComposerService) SelectedRoutes() []int {
	return s.registry.Selected()
}

// ToggleExpanded flips whether a route's segments are shown and returns the
// new state. Unknown ids are never expanded.
func (s *RouteComposerService) ToggleExpanded(id int) bool {
	if _, ok := s.registry.Get(id); !ok {
		return false
	}
	s.expanded = s.expanded.Toggle(id)
	return s.expanded.Contains(id)
}

// IsExpanded checks if a route's segments are shown
func (s *RouteComposerService) IsExpanded(id int) bool {
	return s.expanded.Contains(id)
}

func (s *RouteComposerService) logRejected(err error, origin string) {
	fields := logrus.Fields{
		"origin":        origin,
		"segment_count": s.state.Len(),
	}

	var chainErr *composer.ChainError
	if errors.As(err, &chainErr) {
		fields["reason"] = chainErr.Reason
		fields["terminus"] = chainErr.Terminus
	}

	s.logger.WithFields(fields).WithError(err).Warn("Segment rejected")
}
