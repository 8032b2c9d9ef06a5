package services

import (
	"log/slog"
	"time"

	"voiceadmin/internal/metrics"
	"voiceadmin/internal/models"
	"voiceadmin/pkg/teamsadmin"
)

// ReconcileService matches fetched holidays against the schedules
// already configured on the platform and decides, per holiday, whether
// to update a schedule, skip, or (in create mode) queue a creation.
// Matching is purely by schedule name; the platform has no stable
// holiday identifier to key on.
type ReconcileService struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewReconcileService(logger *slog.Logger) *ReconcileService {
	return &ReconcileService{
		logger: logger,
		now:    time.Now,
	}
}

// Reconcile runs the live-feed update path. For each in-window holiday
// it looks for a schedule named exactly "<STATE> <Name>", then for every
// schedule named "<STATE> Public Holiday" (duplicates allowed by the
// convention), and emits one decision per match in presented order.
// Holidays outside [current year, next year] and holidays matching
// nothing are skipped; update mode never creates schedules.
func (service *ReconcileService) Reconcile(
	schedules []teamsadmin.Schedule,
	holidays []models.HolidayRecord,
) []models.ReconcileDecision {
	fixed := fixedOnly(schedules)

	decisions := make([]models.ReconcileDecision, 0, len(holidays))
	for _, holiday := range holidays {
		for _, decision := range service.reconcileOne(fixed, holiday) {
			service.logger.Debug("reconciled holiday",
				slog.String("decision", decision.String()))
			metrics.Decisions.WithLabelValues(decision.Action.String()).Inc()
			decisions = append(decisions, decision)
		}
	}

	return decisions
}

func (service *ReconcileService) reconcileOne(
	fixed []teamsadmin.Schedule,
	holiday models.HolidayRecord,
) []models.ReconcileDecision {
	if !service.inUpdateWindow(holiday) {
		return []models.ReconcileDecision{skip(holiday, models.SkipOutOfWindow)}
	}

	incoming := bufferedRange(holiday)

	for _, schedule := range fixed {
		if schedule.Name != holiday.ScheduleName() {
			continue
		}

		return []models.ReconcileDecision{
			update(models.ActionUpdateExact, holiday, schedule, incoming),
		}
	}

	groupName := models.GroupScheduleName(holiday.State)

	var decisions []models.ReconcileDecision
	for _, schedule := range fixed {
		if schedule.Name != groupName {
			continue
		}

		decisions = append(decisions,
			update(models.ActionUpdateGroup, holiday, schedule, incoming))
	}

	if len(decisions) == 0 {
		return []models.ReconcileDecision{skip(holiday, models.SkipNoMatch)}
	}

	return decisions
}

// ReconcileWholeDay runs the static-file update path. The same year
// window applies as on the live path. Ranges cover a single day
// (00:00:00 to 23:59:59, no buffer), merged ranges collapse to one per
// calendar day with the existing range winning, and only ranges
// starting today or later survive. A match whose merge leaves nothing
// future is skipped so the schedule stays untouched.
func (service *ReconcileService) ReconcileWholeDay(
	schedules []teamsadmin.Schedule,
	holidays []models.HolidayRecord,
) []models.ReconcileDecision {
	fixed := fixedOnly(schedules)
	today := service.today()

	decisions := make([]models.ReconcileDecision, 0, len(holidays))
	for _, holiday := range holidays {
		for _, decision := range service.reconcileOneWholeDay(fixed, holiday, today) {
			service.logger.Debug("reconciled holiday",
				slog.String("decision", decision.String()))
			metrics.Decisions.WithLabelValues(decision.Action.String()).Inc()
			decisions = append(decisions, decision)
		}
	}

	return decisions
}

func (service *ReconcileService) reconcileOneWholeDay(
	fixed []teamsadmin.Schedule,
	holiday models.HolidayRecord,
	today time.Time,
) []models.ReconcileDecision {
	if !service.inUpdateWindow(holiday) {
		return []models.ReconcileDecision{skip(holiday, models.SkipOutOfWindow)}
	}

	incoming := wholeDayRange(holiday)

	matched := false

	var decisions []models.ReconcileDecision
	for _, schedule := range fixed {
		if schedule.Name != holiday.ScheduleName() {
			continue
		}

		matched = true
		decisions = append(decisions,
			service.wholeDayUpdate(models.ActionUpdateExact, holiday, schedule, incoming, today))
		break
	}

	if !matched {
		groupName := models.GroupScheduleName(holiday.State)
		for _, schedule := range fixed {
			if schedule.Name != groupName {
				continue
			}

			matched = true
			decisions = append(decisions,
				service.wholeDayUpdate(models.ActionUpdateGroup, holiday, schedule, incoming, today))
		}
	}

	if !matched {
		return []models.ReconcileDecision{skip(holiday, models.SkipNoMatch)}
	}

	return decisions
}

func (service *ReconcileService) wholeDayUpdate(
	action models.Action,
	holiday models.HolidayRecord,
	schedule teamsadmin.Schedule,
	incoming teamsadmin.DateTimeRange,
	today time.Time,
) models.ReconcileDecision {
	merged := futureOnly(unionByDay(schedule.Fixed.DateTimeRanges, incoming), today)
	if len(merged) == 0 {
		return skip(holiday, models.SkipNoFutureRanges)
	}

	return models.ReconcileDecision{
		Action:       action,
		Holiday:      holiday,
		ScheduleID:   schedule.ID,
		ScheduleName: schedule.Name,
		OldRanges:    schedule.Fixed.DateTimeRanges,
		NewRanges:    merged,
	}
}

// CreateDecisions plans create mode: one grouped schedule per state,
// named "<STATE> Public Holidays" (plural, the create-path convention),
// holding every fetched holiday for that state. No window restriction
// applies in create mode.
func (service *ReconcileService) CreateDecisions(
	holidays []models.HolidayRecord,
) []models.ReconcileDecision {
	rangesByState := map[models.State][]teamsadmin.DateTimeRange{}
	var order []models.State

	for _, holiday := range holidays {
		if _, seen := rangesByState[holiday.State]; !seen {
			order = append(order, holiday.State)
		}

		rangesByState[holiday.State] = append(
			rangesByState[holiday.State], bufferedRange(holiday))
	}

	decisions := make([]models.ReconcileDecision, 0, len(order))
	for _, state := range order {
		decision := models.ReconcileDecision{
			Action:       models.ActionCreate,
			ScheduleName: models.CreateGroupName(state),
			NewRanges:    rangesByState[state],
		}

		metrics.Decisions.WithLabelValues(decision.Action.String()).Inc()
		decisions = append(decisions, decision)
	}

	return decisions
}

func (service *ReconcileService) inUpdateWindow(holiday models.HolidayRecord) bool {
	year := holiday.Start.Year()
	current := service.now().Year()
	return year == current || year == current+1
}

func (service *ReconcileService) today() time.Time {
	now := service.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func fixedOnly(schedules []teamsadmin.Schedule) []teamsadmin.Schedule {
	fixed := make([]teamsadmin.Schedule, 0, len(schedules))
	for _, schedule := range schedules {
		if schedule.IsFixed() {
			fixed = append(fixed, schedule)
		}
	}

	return fixed
}

// bufferedRange spans from midnight on the holiday to 23:45 on the
// following day. The 15 minute gap before midnight rollover is what the
// scheduling platform expects; do not widen it.
func bufferedRange(holiday models.HolidayRecord) teamsadmin.DateTimeRange {
	end := holiday.End
	return teamsadmin.DateTimeRange{
		Start: teamsadmin.NewTimestamp(holiday.Start),
		End: teamsadmin.NewTimestamp(
			time.Date(end.Year(), end.Month(), end.Day(), 23, 45, 0, 0, end.Location())),
	}
}

// wholeDayRange covers the holiday's single calendar day without the
// buffer, the convention of the static-file path.
func wholeDayRange(holiday models.HolidayRecord) teamsadmin.DateTimeRange {
	start := holiday.Start
	return teamsadmin.DateTimeRange{
		Start: teamsadmin.NewTimestamp(start),
		End: teamsadmin.NewTimestamp(
			time.Date(start.Year(), start.Month(), start.Day(), 23, 59, 59, 0, start.Location())),
	}
}

func update(
	action models.Action,
	holiday models.HolidayRecord,
	schedule teamsadmin.Schedule,
	incoming teamsadmin.DateTimeRange,
) models.ReconcileDecision {
	return models.ReconcileDecision{
		Action:       action,
		Holiday:      holiday,
		ScheduleID:   schedule.ID,
		ScheduleName: schedule.Name,
		OldRanges:    schedule.Fixed.DateTimeRanges,
		NewRanges:    unionByDay(schedule.Fixed.DateTimeRanges, incoming),
	}
}

func skip(holiday models.HolidayRecord, reason string) models.ReconcileDecision {
	return models.ReconcileDecision{
		Action:  models.ActionSkip,
		Holiday: holiday,
		Reason:  reason,
	}
}

const dayKeyLayout = "2006-01-02"

// unionByDay merges the incoming range into the existing set, keeping at
// most one range per calendar day of the start instant. First seen wins,
// so an existing range for the same day beats the incoming one.
func unionByDay(
	existing []teamsadmin.DateTimeRange,
	incoming ...teamsadmin.DateTimeRange,
) []teamsadmin.DateTimeRange {
	seen := map[string]bool{}
	merged := make([]teamsadmin.DateTimeRange, 0, len(existing)+len(incoming))

	for _, r := range append(append([]teamsadmin.DateTimeRange{}, existing...), incoming...) {
		key := r.Start.Format(dayKeyLayout)
		if seen[key] {
			continue
		}

		seen[key] = true
		merged = append(merged, r)
	}

	return merged
}

func futureOnly(
	ranges []teamsadmin.DateTimeRange,
	today time.Time,
) []teamsadmin.DateTimeRange {
	kept := make([]teamsadmin.DateTimeRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Start.Before(today) {
			continue
		}

		kept = append(kept, r)
	}

	return kept
}
