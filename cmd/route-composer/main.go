package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/route-composer/internal/composer"
	"github.com/smarttransit/route-composer/internal/config"
	"github.com/smarttransit/route-composer/internal/models"
	"github.com/smarttransit/route-composer/internal/seed"
	"github.com/smarttransit/route-composer/internal/services"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

const usage = `usage: route-composer <step>...

Each step is either a seed route id (e.g. 2) or a manual leg written
as FROM>TO=DAYS (e.g. "Dubai>Rotterdam=12"). Steps are chained in
order and saved as one composite route.`

// step is one command line token
type step struct {
	routeID int
	leg     models.Candidate
	manual  bool
}

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Server.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.Debugf("Version: %s, Build Time: %s", version, buildTime)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	steps, err := parseSteps(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	routes, err := seed.Load(cfg.Routes.SeedPath)
	if err != nil {
		logger.Fatalf("Failed to load seed routes: %v", err)
	}

	service, err := services.NewRouteComposerService(composer.New(nil), routes, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize route composer: %v", err)
	}

	if err := run(service, steps); err != nil {
		var chainErr *composer.ChainError
		if errors.As(err, &chainErr) {
			fmt.Fprintf(os.Stderr, "cannot chain segment (%s): %s\n", chainErr.Reason, chainErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	if cfg.Routes.ShowSegments {
		expandComposites(service)
	}
	printRoutes(os.Stdout, service)
}

func run(service *services.RouteComposerService, steps []step) error {
	for i, st := range steps {
		var err error
		if st.manual {
			err = service.AppendManual(st.leg)
		} else {
			err = service.AppendExisting(st.routeID)
		}
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	if _, ok := service.Save(); !ok {
		return errors.New("nothing to save")
	}
	return nil
}

func parseSteps(args []string) ([]step, error) {
	steps := make([]step, 0, len(args))
	for _, arg := range args {
		if id, err := strconv.Atoi(arg); err == nil {
			steps = append(steps, step{routeID: id})
			continue
		}

		from, rest, ok := strings.Cut(arg, ">")
		if !ok {
			return nil, fmt.Errorf("invalid step %q: expected a route id or FROM>TO=DAYS", arg)
		}
		to, days, ok := strings.Cut(rest, "=")
		if !ok {
			return nil, fmt.Errorf("invalid step %q: missing =DAYS", arg)
		}

		steps = append(steps, step{
			manual: true,
			leg:    models.Candidate{From: from, To: to, LeadTimeDays: days},
		})
	}
	return steps, nil
}

// expandComposites marks every composite route as expanded
func expandComposites(service *services.RouteComposerService) {
	for _, r := range service.ListRoutes() {
		if r.Composite && !service.IsExpanded(r.ID) {
			service.ToggleExpanded(r.ID)
		}
	}
}

// printRoutes writes the route list. Segments are listed only for expanded
// composite routes.
func printRoutes(w io.Writer, service *services.RouteComposerService) {
	for _, r := range service.ListRoutes() {
		kind := "atomic"
		if r.Composite {
			kind = "composite"
		}
		fmt.Fprintf(w, "%3d  %-45s %4dd (%s)  %s\n",
			r.ID, r.RouteDisplayName(), r.LeadTimeDays, leadTimeLabel(r.LeadTimeDays), kind)

		if !r.Composite || !service.IsExpanded(r.ID) {
			continue
		}
		for _, seg := range r.Segments {
			fmt.Fprintf(w, "       %s -> %s  %dd  [%s]\n", seg.From, seg.To, seg.LeadTimeDays, seg.Origin)
		}
	}
}

// maxDurationDays is the largest day count a time.Duration can hold
const maxDurationDays = int(math.MaxInt64 / int64(24*time.Hour))

// leadTimeLabel renders days exactly up to two months and approximately
// beyond that.
func leadTimeLabel(days int) string {
	switch {
	case days <= 0:
		return "same day"
	case days == 1:
		return "1 day"
	case days < 60:
		return fmt.Sprintf("%d days", days)
	case days > maxDurationDays:
		return fmt.Sprintf("%d years", days/365)
	}
	return units.HumanDuration(time.Duration(days) * 24 * time.Hour)
}
