package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/xdoubleu/essentia/v2/pkg/logging"

	"voiceadmin/internal/metrics"
	"voiceadmin/internal/models"
	"voiceadmin/pkg/teamsadmin"
)

// ScheduleWriter applies reconcile decisions to the platform. Every
// decision is logged whether or not it results in a write, and a failed
// write never aborts the rest of the batch.
type ScheduleWriter struct {
	logger *slog.Logger
	client teamsadmin.Client
	dryRun bool
}

func NewScheduleWriter(
	logger *slog.Logger,
	client teamsadmin.Client,
	dryRun bool,
) *ScheduleWriter {
	return &ScheduleWriter{
		logger: logger,
		client: client,
		dryRun: dryRun,
	}
}

func (writer *ScheduleWriter) Apply(
	ctx context.Context,
	decisions []models.ReconcileDecision,
) {
	for _, decision := range decisions {
		writer.apply(ctx, decision)
	}
}

func (writer *ScheduleWriter) apply(
	ctx context.Context,
	decision models.ReconcileDecision,
) {
	if decision.Action == models.ActionSkip {
		writer.logger.Info("skipping holiday",
			slog.String("holiday", decision.Holiday.ScheduleName()),
			slog.String("reason", decision.Reason))
		return
	}

	if writer.dryRun {
		writer.logDryRun(decision)
		return
	}

	switch decision.Action {
	case models.ActionCreate:
		_, err := writer.client.CreateSchedule(ctx, decision.ScheduleName, decision.NewRanges)
		switch {
		case errors.Is(err, teamsadmin.ErrConflict):
			writer.logger.Warn("schedule already exists, skipping",
				slog.String("schedule", decision.ScheduleName))
		case err != nil:
			writer.logger.Error("failed to create schedule",
				slog.String("schedule", decision.ScheduleName), logging.ErrAttr(err))
		default:
			writer.logger.Info("created schedule",
				slog.String("schedule", decision.ScheduleName),
				slog.Int("ranges", len(decision.NewRanges)))
			metrics.SchedulesWritten.Inc()
		}
	case models.ActionUpdateExact, models.ActionUpdateGroup:
		_, err := writer.client.UpdateSchedule(ctx, decision.ScheduleID, decision.NewRanges)
		if err != nil {
			writer.logger.Error("failed to update schedule",
				slog.String("schedule", decision.ScheduleName),
				slog.String("id", decision.ScheduleID), logging.ErrAttr(err))
			return
		}

		writer.logger.Info("updated schedule",
			slog.String("schedule", decision.ScheduleName),
			slog.Int("old_ranges", len(decision.OldRanges)),
			slog.Int("new_ranges", len(decision.NewRanges)))
		metrics.SchedulesWritten.Inc()
	}
}

func (writer *ScheduleWriter) logDryRun(decision models.ReconcileDecision) {
	attrs := []any{
		slog.String("action", decision.Action.String()),
		slog.String("schedule", decision.ScheduleName),
		slog.String("new", rangesString(decision.NewRanges)),
	}

	if decision.Action != models.ActionCreate {
		attrs = append(attrs,
			slog.String("id", decision.ScheduleID),
			slog.String("old", rangesString(decision.OldRanges)))
	}

	writer.logger.Info("dry-run, would write schedule", attrs...)
}

func rangesString(ranges []teamsadmin.DateTimeRange) string {
	if len(ranges) == 0 {
		return "(none)"
	}

	out := ""
	for i, r := range ranges {
		if i > 0 {
			out += "; "
		}
		out += r.String()
	}

	return out
}
