package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/logging"

	"voiceadmin/internal/csvio"
	"voiceadmin/internal/metrics"
	"voiceadmin/internal/models"
	"voiceadmin/pkg/teamsadmin"
)

// ProvisionService creates call-routing resource accounts in bulk.
// Licensing only works once the directory has replicated the new
// account, hence the configured delay between creation and license
// assignment.
type ProvisionService struct {
	logger        *slog.Logger
	client        teamsadmin.Client
	delay         time.Duration
	usageLocation string
	licenseSkuID  string
	dryRun        bool
	sleep         func(time.Duration)
}

func NewProvisionService(
	logger *slog.Logger,
	client teamsadmin.Client,
	delay time.Duration,
	usageLocation string,
	licenseSkuID string,
	dryRun bool,
) *ProvisionService {
	return &ProvisionService{
		logger:        logger,
		client:        client,
		delay:         delay,
		usageLocation: usageLocation,
		licenseSkuID:  licenseSkuID,
		dryRun:        dryRun,
		sleep:         time.Sleep,
	}
}

// ProvisionAll processes every row sequentially. A failing row is logged
// and skipped; already-created accounts from earlier rows are never
// rolled back.
func (service *ProvisionService) ProvisionAll(
	ctx context.Context,
	rows []csvio.Row,
	kind models.AccountKind,
) (created int, skipped int) {
	for _, row := range rows {
		if service.provisionOne(ctx, row, kind) {
			created++
			metrics.AccountsCreated.Inc()
		} else {
			skipped++
			metrics.AccountsSkipped.Inc()
		}
	}

	return created, skipped
}

func (service *ProvisionService) provisionOne(
	ctx context.Context,
	row csvio.Row,
	kind models.AccountKind,
) bool {
	if service.dryRun {
		service.logger.Info("dry-run, would provision account",
			slog.String("upn", row.UPN),
			slog.String("display_name", row.DisplayName),
			slog.String("kind", string(kind)))
		return false
	}

	account, err := service.client.CreateResourceAccount(
		ctx, row.UPN, row.DisplayName, kind.ApplicationID())
	switch {
	case errors.Is(err, teamsadmin.ErrConflict):
		service.logger.Warn("account already exists, skipping",
			slog.String("upn", row.UPN))
		return false
	case err != nil:
		service.logger.Error("failed to create account",
			slog.String("upn", row.UPN), logging.ErrAttr(err))
		return false
	}

	service.logger.Info("created resource account",
		slog.String("upn", account.UPN), slog.String("id", account.ID))

	// The directory needs time to replicate before licensing succeeds.
	service.sleep(service.delay)

	err = service.client.SetUsageLocation(ctx, account.ID, service.usageLocation)
	if err != nil {
		service.logger.Error("failed to set usage location",
			slog.String("upn", account.UPN), logging.ErrAttr(err))
		return true
	}

	err = service.client.AssignLicense(ctx, account.ID, service.licenseSkuID)
	if err != nil {
		service.logger.Error("failed to assign license",
			slog.String("upn", account.UPN), logging.ErrAttr(err))
		return true
	}

	service.logger.Info("licensed resource account",
		slog.String("upn", account.UPN),
		slog.String("usage_location", service.usageLocation),
		slog.String("sku", service.licenseSkuID))

	return true
}
