package main

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/smarttransit/route-composer/internal/composer"
	"github.com/smarttransit/route-composer/internal/models"
	"github.com/smarttransit/route-composer/internal/seed"
	"github.com/smarttransit/route-composer/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *services.RouteComposerService {
	logger, _ := test.NewNullLogger()
	service, err := services.NewRouteComposerService(composer.New(nil), seed.DefaultRoutes(), logger)
	require.NoError(t, err)
	return service
}

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps([]string{"1", "Singapore>Dubai=7", "Dubai>Port Said=9"})
	require.NoError(t, err)

	assert.Equal(t, []step{
		{routeID: 1},
		{manual: true, leg: models.Candidate{From: "Singapore", To: "Dubai", LeadTimeDays: "7"}},
		{manual: true, leg: models.Candidate{From: "Dubai", To: "Port Said", LeadTimeDays: "9"}},
	}, steps)
}

func TestParseSteps_Invalid(t *testing.T) {
	for _, arg := range []string{"Dubai", "Dubai>Rotterdam"} {
		t.Run(arg, func(t *testing.T) {
			_, err := parseSteps([]string{arg})
			assert.Error(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	service := newTestService(t)

	steps, err := parseSteps([]string{"1", "2", "Dubai>Rotterdam=12"})
	require.NoError(t, err)
	require.NoError(t, run(service, steps))

	route, ok := service.Route(4)
	require.True(t, ok)
	assert.Equal(t, 24, route.LeadTimeDays)

	expandComposites(service)
	assert.True(t, service.IsExpanded(4))

	var out bytes.Buffer
	printRoutes(&out, service)
	assert.Contains(t, out.String(), "Shanghai - Singapore - Dubai - Rotterdam")
	assert.Contains(t, out.String(), "[manual]")
	assert.Contains(t, out.String(), "[existing]")
}

func TestPrintRoutes_Expansion(t *testing.T) {
	tests := []struct {
		name         string
		expand       bool
		wantSegments bool
	}{
		{name: "collapsed composite lists no segments", expand: false, wantSegments: false},
		{name: "expanded composite lists its segments", expand: true, wantSegments: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(t)
			steps, err := parseSteps([]string{"1", "Singapore>Dubai=7"})
			require.NoError(t, err)
			require.NoError(t, run(service, steps))

			if tt.expand {
				expandComposites(service)
			}

			var out bytes.Buffer
			printRoutes(&out, service)
			printed := out.String()

			assert.Contains(t, printed, "Shanghai - Singapore - Dubai")
			assert.Equal(t, tt.wantSegments, strings.Contains(printed, "->"))
			assert.Equal(t, tt.wantSegments, strings.Contains(printed, "[manual]"))
			// Printing never changes view state.
			assert.Equal(t, tt.expand, service.IsExpanded(4))
		})
	}
}

func TestExpandComposites_KeepsExpandedRoutes(t *testing.T) {
	service := newTestService(t)
	steps, err := parseSteps([]string{"1", "2"})
	require.NoError(t, err)
	require.NoError(t, run(service, steps))

	require.True(t, service.ToggleExpanded(4))
	expandComposites(service)
	expandComposites(service)

	assert.True(t, service.IsExpanded(4))
	assert.False(t, service.IsExpanded(1))
}

func TestRun_ChainError(t *testing.T) {
	service := newTestService(t)

	steps, err := parseSteps([]string{"3", "Dubai>X=3"})
	require.NoError(t, err)

	err = run(service, steps)
	assert.ErrorIs(t, err, composer.ErrChainDiscontinuity)
	assert.Contains(t, err.Error(), "step 2")
	assert.Len(t, service.ListRoutes(), 3)
}

func TestLeadTimeLabel(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{days: -1, want: "same day"},
		{days: 0, want: "same day"},
		{days: 1, want: "1 day"},
		{days: 5, want: "5 days"},
		{days: 24, want: "24 days"},
		{days: 59, want: "59 days"},
		{days: 90, want: "3 months"},
		{days: 730, want: "2 years"},
		{days: maxDurationDays, want: "292 years"},
		{days: 200000, want: "547 years"},
		{days: math.MaxInt, want: fmt.Sprintf("%d years", math.MaxInt/365)},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.days), func(t *testing.T) {
			assert.Equal(t, tt.want, leadTimeLabel(tt.days))
		})
	}
}
