package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/sentrytools"

	"voiceadmin/internal/config"
	"voiceadmin/internal/csvio"
	"voiceadmin/internal/metrics"
	"voiceadmin/internal/models"
	"voiceadmin/internal/services"
	"voiceadmin/pkg/directory"
	"voiceadmin/pkg/teamsadmin"
)

func main() {
	input := flag.String("input", "", "Input CSV file with UPN and DisplayName columns (required)")
	domain := flag.String("domain", "",
		"Verified org domain used to discover the tenant when TENANT_ID is not set")
	dryRun := flag.Bool("dry-run", false, "Log intended contacts without calling the API")
	pushURL := flag.String("push-url", "", "Pushgateway URL to push metrics to")
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

	err := run(logger, cfg, *input, *domain, *dryRun)
	if err != nil {
		logger.Error("run aborted", logging.ErrAttr(err))
		// os.Exit skips deferred calls, so flush here.
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}

	if *pushURL != "" {
		err = metrics.Push(*pushURL, "contactimport")
		if err != nil {
			logger.Error("failed to push metrics", logging.ErrAttr(err))
		}
	}
}

func run(
	logger *slog.Logger,
	cfg config.Config,
	input string,
	domain string,
	dryRun bool,
) error {
	if input == "" {
		return fmt.Errorf("%w: -input is required", models.ErrConfig)
	}

	file, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrConfig, err)
	}
	defer file.Close()

	rows, rowErrors, err := csvio.Read(file)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrConfig, err)
	}

	for _, rowErr := range rowErrors {
		logger.Warn("skipping row", logging.ErrAttr(rowErr))
		metrics.RowsSkipped.Inc()
	}

	ctx := context.Background()

	tenantID := cfg.TenantID
	if tenantID == "" {
		if domain == "" {
			return fmt.Errorf("%w: set TENANT_ID or pass -domain", models.ErrConfig)
		}

		tenantID, err = directory.New("", cfg.ClientID, cfg.ClientSecret).
			GetTenantID(ctx, domain)
		if err != nil {
			return fmt.Errorf("tenant discovery failed: %w", err)
		}

		logger.Info("discovered tenant",
			slog.String("domain", domain), slog.String("tenant_id", tenantID))
	}

	directoryClient := directory.New(tenantID, cfg.ClientID, cfg.ClientSecret)
	err = directoryClient.Login(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	teamsClient := teamsadmin.New(logger, tenantID, cfg.ClientID, cfg.ClientSecret)
	err = teamsClient.Login(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	importer := services.NewContactService(logger, directoryClient, teamsClient, dryRun)

	imported, skipped := importer.ImportAll(ctx, rows)
	logger.Info("contact import finished",
		slog.Int("imported", imported), slog.Int("skipped", skipped))

	return nil
}
