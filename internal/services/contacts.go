package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/xdoubleu/essentia/v2/pkg/logging"

	"voiceadmin/internal/csvio"
	"voiceadmin/internal/metrics"
	"voiceadmin/pkg/directory"
	"voiceadmin/pkg/teamsadmin"
)

// ContactService resolves principal names against the directory and
// imports the resulting contacts onto the calling platform.
type ContactService struct {
	logger    *slog.Logger
	directory directory.Client
	platform  teamsadmin.Client
	dryRun    bool
}

func NewContactService(
	logger *slog.Logger,
	directoryClient directory.Client,
	platformClient teamsadmin.Client,
	dryRun bool,
) *ContactService {
	return &ContactService{
		logger:    logger,
		directory: directoryClient,
		platform:  platformClient,
		dryRun:    dryRun,
	}
}

func (service *ContactService) ImportAll(
	ctx context.Context,
	rows []csvio.Row,
) (imported int, skipped int) {
	for _, row := range rows {
		if service.importOne(ctx, row) {
			imported++
			metrics.ContactsImported.Inc()
		} else {
			skipped++
		}
	}

	return imported, skipped
}

func (service *ContactService) importOne(ctx context.Context, row csvio.Row) bool {
	user, err := service.directory.GetUser(ctx, row.UPN)
	switch {
	case errors.Is(err, directory.ErrNotFound):
		service.logger.Warn("user not found in directory, skipping",
			slog.String("upn", row.UPN))
		return false
	case err != nil:
		service.logger.Error("directory lookup failed",
			slog.String("upn", row.UPN), logging.ErrAttr(err))
		return false
	}

	contact := teamsadmin.ContactDto{
		UPN:         user.UPN,
		DisplayName: row.DisplayName,
		GivenName:   user.GivenName,
		Surname:     user.Surname,
		Phone:       user.Phone,
		JobTitle:    user.JobTitle,
		Office:      user.Office,
		ObjectID:    user.ID,
	}

	if service.dryRun {
		service.logger.Info("dry-run, would import contact",
			slog.String("upn", contact.UPN),
			slog.String("display_name", contact.DisplayName))
		return false
	}

	created, err := service.platform.CreateContact(ctx, contact)
	switch {
	case errors.Is(err, teamsadmin.ErrConflict):
		service.logger.Warn("contact already exists, skipping",
			slog.String("upn", contact.UPN))
		return false
	case err != nil:
		service.logger.Error("failed to import contact",
			slog.String("upn", contact.UPN), logging.ErrAttr(err))
		return false
	}

	service.logger.Info("imported contact",
		slog.String("upn", created.UPN), slog.String("id", created.ID))

	return true
}
