package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"voiceadmin/internal/models"
	"voiceadmin/pkg/teamsadmin"
)

func TestParseState(t *testing.T) {
	state, err := models.ParseState("nsw")
	assert.Nil(t, err)
	assert.Equal(t, models.StateNSW, state)

	state, err = models.ParseState(" Vic ")
	assert.Nil(t, err)
	assert.Equal(t, models.StateVIC, state)

	_, err = models.ParseState("XYZ")
	assert.ErrorIs(t, err, models.ErrConfig)
}

func TestNewHolidayRecordSpansOneDay(t *testing.T) {
	record := models.NewHolidayRecord(
		models.StateNSW, "Boxing Day",
		time.Date(2025, 12, 26, 15, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC), record.Start)
	assert.Equal(t, time.Date(2025, 12, 27, 0, 0, 0, 0, time.UTC), record.End)
}

func TestScheduleNamingConventions(t *testing.T) {
	record := models.NewHolidayRecord(
		models.StateNSW, "Boxing Day", time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "NSW Boxing Day", record.ScheduleName())
	// Singular for update matching, plural for the create path. The two
	// workflows genuinely differ; see the reconciler docs.
	assert.Equal(t, "NSW Public Holiday", models.GroupScheduleName(models.StateNSW))
	assert.Equal(t, "NSW Public Holidays", models.CreateGroupName(models.StateNSW))
}

func TestParseAccountKind(t *testing.T) {
	kind, err := models.ParseAccountKind("aa")
	assert.Nil(t, err)
	assert.Equal(t, teamsadmin.ApplicationIDAutoAttendant, kind.ApplicationID())

	kind, err = models.ParseAccountKind("cq")
	assert.Nil(t, err)
	assert.Equal(t, teamsadmin.ApplicationIDCallQueue, kind.ApplicationID())

	_, err = models.ParseAccountKind("queue")
	assert.ErrorIs(t, err, models.ErrConfig)
}
