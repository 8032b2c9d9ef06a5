package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"voiceadmin/internal/mocks"
	"voiceadmin/internal/models"
	"voiceadmin/pkg/teamsadmin"
)

func TestWriterAppliesUpdates(t *testing.T) {
	client := mocks.NewMockTeamsClient()
	client.Schedules = []teamsadmin.Schedule{
		fixedSchedule("s1", "NSW Boxing Day"),
	}

	ranges := []teamsadmin.DateTimeRange{
		dayRange(
			time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 27, 23, 45, 0, 0, time.UTC),
		),
	}
	decisions := []models.ReconcileDecision{
		{
			Action:       models.ActionUpdateExact,
			ScheduleID:   "s1",
			ScheduleName: "NSW Boxing Day",
			NewRanges:    ranges,
		},
	}

	writer := NewScheduleWriter(nopLogger(), client, false)
	writer.Apply(context.Background(), decisions)

	assert.Equal(t, ranges, client.UpdatedRanges["s1"])
}

func TestWriterCreatesSchedules(t *testing.T) {
	client := mocks.NewMockTeamsClient()

	decisions := []models.ReconcileDecision{
		{
			Action:       models.ActionCreate,
			ScheduleName: "NSW Public Holidays",
			NewRanges: []teamsadmin.DateTimeRange{
				dayRange(
					time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC),
					time.Date(2025, 12, 27, 23, 45, 0, 0, time.UTC),
				),
			},
		},
	}

	writer := NewScheduleWriter(nopLogger(), client, false)
	writer.Apply(context.Background(), decisions)

	assert.Len(t, client.CreatedSchedules, 1)
	assert.Equal(t, "NSW Public Holidays", client.CreatedSchedules[0].Name)
}

func TestWriterTreatsCreateConflictAsSkip(t *testing.T) {
	client := mocks.NewMockTeamsClient()
	client.Schedules = []teamsadmin.Schedule{
		fixedSchedule("s1", "NSW Public Holidays"),
	}

	decisions := []models.ReconcileDecision{
		{Action: models.ActionCreate, ScheduleName: "NSW Public Holidays"},
	}

	writer := NewScheduleWriter(nopLogger(), client, false)
	writer.Apply(context.Background(), decisions)

	assert.Empty(t, client.CreatedSchedules)
}

func TestWriterDryRunPerformsNoCalls(t *testing.T) {
	client := mocks.NewMockTeamsClient()
	client.Schedules = []teamsadmin.Schedule{
		fixedSchedule("s1", "NSW Boxing Day"),
	}

	decisions := []models.ReconcileDecision{
		{
			Action:       models.ActionUpdateExact,
			ScheduleID:   "s1",
			ScheduleName: "NSW Boxing Day",
		},
		{Action: models.ActionCreate, ScheduleName: "VIC Public Holidays"},
	}

	writer := NewScheduleWriter(nopLogger(), client, true)
	writer.Apply(context.Background(), decisions)

	assert.Empty(t, client.UpdatedRanges)
	assert.Empty(t, client.CreatedSchedules)
}

func TestWriterSkipDecisionPerformsNoCalls(t *testing.T) {
	client := mocks.NewMockTeamsClient()

	boxingDay := models.NewHolidayRecord(
		models.StateNSW, "Boxing Day", time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC))
	decisions := []models.ReconcileDecision{
		{Action: models.ActionSkip, Holiday: boxingDay, Reason: models.SkipNoMatch},
	}

	writer := NewScheduleWriter(nopLogger(), client, false)
	writer.Apply(context.Background(), decisions)

	assert.Empty(t, client.UpdatedRanges)
	assert.Empty(t, client.CreatedSchedules)
}
