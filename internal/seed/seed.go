// Package seed loads the catalog of pre-existing atomic routes.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/smarttransit/route-composer/internal/models"
	"github.com/smarttransit/route-composer/pkg/validator"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateID is returned when two catalog entries share an id
var ErrDuplicateID = errors.New("duplicate route id in seed catalog")

// Entry is one route in a YAML seed catalog
type Entry struct {
	ID           int    `yaml:"id"`
	From         string `yaml:"from"`
	To           string `yaml:"to"`
	LeadTimeDays int    `yaml:"lead_time_days"`
}

// Catalog is the YAML document layout
type Catalog struct {
	Routes []Entry `yaml:"routes"`
}

// DefaultRoutes returns the built-in catalog
func DefaultRoutes() []models.Route {
	return []models.Route{
		{ID: 1, From: "Shanghai", To: "Singapore", LeadTimeDays: 5},
		{ID: 2, From: "Singapore", To: "Dubai", LeadTimeDays: 7},
		{ID: 3, From: "Dubai", To: "Rotterdam", LeadTimeDays: 12},
	}
}

// Load reads the catalog at path. An empty path returns DefaultRoutes.
func Load(path string) ([]models.Route, error) {
	if path == "" {
		return DefaultRoutes(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seed catalog %q: %w", path, err)
	}

	routes, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load seed catalog %q: %w", path, err)
	}
	return routes, nil
}

// Parse decodes and validates a YAML catalog. Unknown keys are rejected.
func Parse(r io.Reader) ([]models.Route, error) {
	var catalog Catalog

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return []models.Route{}, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	v := validator.NewSegmentValidator()
	seen := make(map[int]struct{}, len(catalog.Routes))
	routes := make([]models.Route, 0, len(catalog.Routes))

	for i, e := range catalog.Routes {
		if e.ID < 1 {
			return nil, fmt.Errorf("route #%d: id must be positive, got %d", i+1, e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("route #%d: %w: %d", i+1, ErrDuplicateID, e.ID)
		}
		seen[e.ID] = struct{}{}

		if err := v.ValidateLeg(e.From, e.To, e.LeadTimeDays); err != nil {
			return nil, fmt.Errorf("route #%d (id %d): %w", i+1, e.ID, err)
		}

		routes = append(routes, models.Route{
			ID:           e.ID,
			From:         e.From,
			To:           e.To,
			LeadTimeDays: e.LeadTimeDays,
		})
	}

	return routes, nil
}
