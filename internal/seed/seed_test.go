package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smarttransit/route-composer/internal/models"
	"github.com/smarttransit/route-composer/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
routes:
  - id: 10
    from: Busan
    to: Yokohama
    lead_time_days: 2
  - id: 11
    from: Yokohama
    to: Long Beach
    lead_time_days: 11
`

func TestLoad_Default(t *testing.T) {
	routes, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRoutes(), routes)
	assert.Len(t, routes, 3)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))

	routes, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []models.Route{
		{ID: 10, From: "Busan", To: "Yokohama", LeadTimeDays: 2},
		{ID: 11, From: "Yokohama", To: "Long Beach", LeadTimeDays: 11},
	}, routes)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "load seed catalog")
}

func TestParse_Empty(t *testing.T) {
	routes, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		doc         string
		expectedErr error
		name        string
	}{
		{"routes:\n  - {id: 1, from: A, to: B, lead_time_days: 1}\n  - {id: 1, from: B, to: C, lead_time_days: 1}\n", ErrDuplicateID, "Duplicate id"},
		{"routes:\n  - {id: 1, from: '', to: B, lead_time_days: 1}\n", validator.ErrEmptyLocation, "Missing origin"},
		{"routes:\n  - {id: 1, from: A, to: B, lead_time_days: -4}\n", validator.ErrInvalidLeadTime, "Negative lead time"},
		{"routes:\n  - {id: 0, from: A, to: B, lead_time_days: 1}\n", nil, "Zero id"},
		{"routes:\n  - {id: 1, from: A, to: B, lead_time: 1}\n", nil, "Unknown field"},
		{"routes: [\n", nil, "Broken yaml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.doc))
			require.Error(t, err)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}
