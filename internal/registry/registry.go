// Package registry holds the list of known routes, atomic and composite.
package registry

import (
	"errors"
	"fmt"

	"github.com/smarttransit/route-composer/internal/models"
)

// ErrDuplicateRouteID is returned when seeding with a repeated id
var ErrDuplicateRouteID = errors.New("duplicate route id")

// Registry is an immutable, insertion ordered list of routes with a
// monotonic id sequence and a selection set. Ids are never reused, even
// after the route holding them is deleted.
type Registry struct {
	routes   []models.Route
	nextID   int
	selected models.IDSet
}

// New creates an empty registry whose first id is 1
func New() Registry {
	return Registry{nextID: 1}
}

// Seeded creates a registry holding pre-existing routes with their own ids.
// New ids continue after the highest seeded id.
func Seeded(routes []models.Route) (Registry, error) {
	reg := New()
	seen := make(map[int]struct{}, len(routes))

	reg.routes = make([]models.Route, 0, len(routes))
	for _, route := range routes {
		if route.ID < 1 {
			return Registry{}, fmt.Errorf("seed registry: route id must be positive, got %d", route.ID)
		}
		if _, dup := seen[route.ID]; dup {
			return Registry{}, fmt.Errorf("seed registry: %w: %d", ErrDuplicateRouteID, route.ID)
		}
		seen[route.ID] = struct{}{}

		reg.routes = append(reg.routes, route.Clone())
		if route.ID >= reg.nextID {
			reg.nextID = route.ID + 1
		}
	}

	return reg, nil
}

// List returns the routes in insertion order
func (r Registry) List() []models.Route {
	out := make([]models.Route, len(r.routes))
	for i, route := range r.routes {
		out[i] = route.Clone()
	}
	return out
}

// Len returns the number of routes
func (r Registry) Len() int {
	return len(r.routes)
}

// NextID returns the id the next added route will get
func (r Registry) NextID() int {
	return r.nextID
}

// Get looks up a route by id
func (r Registry) Get(id int) (models.Route, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return models.Route{}, false
	}
	return r.routes[idx].Clone(), true
}

// Add assigns the next id to route and appends it
func (r Registry) Add(route models.Route) (Registry, models.Route) {
	route = route.Clone()
	route.ID = r.nextID

	routes := make([]models.Route, len(r.routes), len(r.routes)+1)
	copy(routes, r.routes)
	r.routes = append(routes, route)
	r.nextID++

	return r, route.Clone()
}

// Delete removes the route with id and drops it from the selection.
// Deleting an unknown id returns the registry unchanged.
func (r Registry) Delete(id int) Registry {
	idx := r.indexOf(id)
	if idx < 0 {
		return r
	}

	routes := make([]models.Route, 0, len(r.routes)-1)
	routes = append(routes, r.routes[:idx]...)
	routes = append(routes, r.routes[idx+1:]...)
	r.routes = routes
	r.selected = r.selected.Remove(id)
	return r
}

// Select marks a known route as selected
func (r Registry) Select(id int) Registry {
	if r.indexOf(id) < 0 {
		return r
	}
	r.selected = r.selected.Add(id)
	return r
}

// Deselect clears the selection mark of a route
func (r Registry) Deselect(id int) Registry {
	r.selected = r.selected.Remove(id)
	return r
}

// ToggleSelected flips the selection mark of a known route
func (r Registry) ToggleSelected(id int) Registry {
	if r.selected.Contains(id) {
		return r.Deselect(id)
	}
	return r.Select(id)
}

// IsSelected checks if a route is selected
func (r Registry) IsSelected(id int) bool {
	return r.selected.Contains(id)
}

// Selected returns the selected route ids in ascending order
func (r Registry) Selected() []int {
	return r.selected.Values()
}

func (r Registry) indexOf(id int) int {
	for i, route := range r.routes {
		if route.ID == id {
			return i
		}
	}
	return -1
}
