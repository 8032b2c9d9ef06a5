package models

import (
	"fmt"
	"strings"
	"time"
)

// State is an Australian state/territory code as used by the public
// holidays dataset.
type State string

const (
	StateSA  State = "SA"
	StateQLD State = "QLD"
	StateACT State = "ACT"
	StateNSW State = "NSW"
	StateWA  State = "WA"
	StateNT  State = "NT"
	StateVIC State = "VIC"
	StateTAS State = "TAS"
)

func AllStates() []State {
	return []State{
		StateSA,
		StateQLD,
		StateACT,
		StateNSW,
		StateWA,
		StateNT,
		StateVIC,
		StateTAS,
	}
}

func ParseState(value string) (State, error) {
	state := State(strings.ToUpper(strings.TrimSpace(value)))
	for _, known := range AllStates() {
		if state == known {
			return state, nil
		}
	}

	return "", fmt.Errorf("%w: unknown state %q", ErrConfig, value)
}

// HolidayRecord is one public holiday as fetched from the open-data
// source or loaded from a static state file. End is always the day after
// Start, the exclusive upper bound convention of the scheduling platform.
type HolidayRecord struct {
	State State
	Name  string
	Start time.Time
	End   time.Time
}

func NewHolidayRecord(state State, name string, start time.Time) HolidayRecord {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	return HolidayRecord{
		State: state,
		Name:  name,
		Start: day,
		End:   day.AddDate(0, 0, 1),
	}
}

// ScheduleName is the per-holiday schedule naming convention,
// e.g. "NSW Boxing Day".
func (h HolidayRecord) ScheduleName() string {
	return fmt.Sprintf("%s %s", h.State, h.Name)
}

// GroupScheduleName is the grouped-schedule convention matched during
// updates. The singular "Public Holiday" is deliberate; the create path
// names schedules with the plural form (see CreateGroupName).
func GroupScheduleName(state State) string {
	return fmt.Sprintf("%s Public Holiday", state)
}

// CreateGroupName is the grouped-schedule name used when creating a new
// schedule. Plural, unlike the update-matching convention.
func CreateGroupName(state State) string {
	return fmt.Sprintf("%s Public Holidays", state)
}
