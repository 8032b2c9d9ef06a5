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
	"voiceadmin/pkg/teamsadmin"
)

func main() {
	input := flag.String("input", "", "Input CSV file with UPN and DisplayName columns (required)")
	kindFlag := flag.String("kind", "", "Account kind: aa (auto attendant) | cq (call queue) (required)")
	dryRun := flag.Bool("dry-run", false, "Log intended accounts without calling the API")
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

	err := run(logger, cfg, *input, *kindFlag, *dryRun)
	if err != nil {
		logger.Error("run aborted", logging.ErrAttr(err))
		// os.Exit skips deferred calls, so flush here.
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}

	if *pushURL != "" {
		err = metrics.Push(*pushURL, "provision")
		if err != nil {
			logger.Error("failed to push metrics", logging.ErrAttr(err))
		}
	}
}

func run(
	logger *slog.Logger,
	cfg config.Config,
	input string,
	kindFlag string,
	dryRun bool,
) error {
	if input == "" {
		return fmt.Errorf("%w: -input is required", models.ErrConfig)
	}

	kind, err := models.ParseAccountKind(kindFlag)
	if err != nil {
		return err
	}

	delay, err := cfg.ParsedReplicationDelay()
	if err != nil {
		return fmt.Errorf("%w: bad REPLICATION_DELAY: %v", models.ErrConfig, err)
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

	teamsClient := teamsadmin.New(logger, cfg.TenantID, cfg.ClientID, cfg.ClientSecret)
	err = teamsClient.Login(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	provisioner := services.NewProvisionService(
		logger, teamsClient, delay, cfg.UsageLocation, cfg.LicenseSkuID, dryRun)

	created, skipped := provisioner.ProvisionAll(ctx, rows, kind)
	logger.Info("provisioning finished",
		slog.Int("created", created), slog.Int("skipped", skipped))

	return nil
}
