package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/sentrytools"

	"voiceadmin/internal/config"
	"voiceadmin/internal/ics"
	"voiceadmin/internal/metrics"
	"voiceadmin/internal/models"
	"voiceadmin/internal/services"
	"voiceadmin/pkg/datagovau"
	"voiceadmin/pkg/teamsadmin"
)

func main() {
	statesFlag := flag.String("states", "",
		"Comma-separated state codes (SA,QLD,ACT,NSW,WA,NT,VIC,TAS) or 'all' (required)")
	mode := flag.String("mode", "update", "Reconcile mode: update|create")
	source := flag.String("source", "live", "Holiday source: live|files")
	filesDir := flag.String("files-dir", "",
		"Directory of per-state JSON holiday files (required with -source=files)")
	window := flag.String("window", "next",
		"Year window for live fetches: current (this year) | next (this and next year)")
	dryRun := flag.Bool("dry-run", false, "Log intended writes without calling the API")
	icsOut := flag.String("ics-out", "",
		"Write fetched holidays to this ICS file for review")
	pushURL := flag.String("push-url", "",
		"Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	flag.Parse()

	cfg := config.New(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	logger := slog.New(sentrytools.NewLogHandler(cfg.Env,
		slog.NewTextHandler(os.Stdout, nil)))
	logger = logger.With(slog.String("run_id", uuid.NewString()))

	if cfg.SentryDsn != "" {
		//nolint:exhaustruct //other fields are optional
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDsn,
			Environment: cfg.Env,
			Release:     cfg.Release,
			SampleRate:  cfg.SampleRate,
		})
		if err != nil {
			logger.Error("failed to initialize sentry", logging.ErrAttr(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	err := run(logger, cfg,
		*statesFlag, *mode, *source, *filesDir, *window, *dryRun, *icsOut)
	if err != nil {
		logger.Error("run aborted", logging.ErrAttr(err))
		// os.Exit skips deferred calls, so flush here.
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}

	if *pushURL != "" {
		err = metrics.Push(*pushURL, "holidaysync")
		if err != nil {
			logger.Error("failed to push metrics", logging.ErrAttr(err))
		}
	}
}

//nolint:revive //flag plumbing, not worth a struct
func run(
	logger *slog.Logger,
	cfg config.Config,
	statesFlag string,
	mode string,
	source string,
	filesDir string,
	window string,
	dryRun bool,
	icsOut string,
) error {
	states, err := parseStates(statesFlag)
	if err != nil {
		return err
	}

	yearWindow := services.CurrentAndNextYear
	switch window {
	case "current":
		yearWindow = services.CurrentYearOnly
	case "next":
	default:
		return fmt.Errorf("%w: window must be current or next, got %q",
			models.ErrConfig, window)
	}

	if mode != "update" && mode != "create" {
		return fmt.Errorf("%w: mode must be update or create, got %q",
			models.ErrConfig, mode)
	}

	ctx := context.Background()

	teamsClient := teamsadmin.New(logger, cfg.TenantID, cfg.ClientID, cfg.ClientSecret)
	err = teamsClient.Login(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	holidayService := services.NewHolidayService(logger, datagovau.New(), cfg.ExcludedHolidays)

	var records []models.HolidayRecord
	switch source {
	case "live":
		records, err = holidayService.Fetch(ctx, states, yearWindow)
	case "files":
		if filesDir == "" {
			return fmt.Errorf("%w: -files-dir is required with -source=files",
				models.ErrConfig)
		}
		records, err = holidayService.LoadFromFiles(filesDir, states)
	default:
		err = fmt.Errorf("%w: source must be live or files, got %q",
			models.ErrConfig, source)
	}
	if err != nil {
		return err
	}

	logger.Info("holidays loaded", slog.Int("count", len(records)))

	if icsOut != "" {
		err = exportICS(icsOut, records)
		if err != nil {
			return err
		}
		logger.Info("wrote review calendar", slog.String("path", icsOut))
	}

	reconciler := services.NewReconcileService(logger)

	var decisions []models.ReconcileDecision
	if mode == "create" {
		decisions = reconciler.CreateDecisions(records)
	} else {
		schedules, err := teamsClient.GetSchedules(ctx)
		if err != nil {
			return fmt.Errorf("%w: failed to list schedules: %v", models.ErrUpstream, err)
		}

		if source == "files" {
			decisions = reconciler.ReconcileWholeDay(schedules, records)
		} else {
			decisions = reconciler.Reconcile(schedules, records)
		}
	}

	writer := services.NewScheduleWriter(logger, teamsClient, dryRun)
	writer.Apply(ctx, decisions)

	return nil
}

func parseStates(value string) ([]models.State, error) {
	if strings.EqualFold(strings.TrimSpace(value), "all") {
		return models.AllStates(), nil
	}

	var states []models.State
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}

		state, err := models.ParseState(part)
		if err != nil {
			return nil, err
		}

		states = append(states, state)
	}

	if len(states) == 0 {
		return nil, fmt.Errorf("%w: -states is required", models.ErrConfig)
	}

	return states, nil
}

func exportICS(path string, records []models.HolidayRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return ics.Export(f, records)
}
