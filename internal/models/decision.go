package models

import (
	"fmt"

	"voiceadmin/pkg/teamsadmin"
)

type Action int

const (
	ActionSkip Action = iota
	ActionUpdateExact
	ActionUpdateGroup
	ActionCreate
)

func (a Action) String() string {
	switch a {
	case ActionUpdateExact:
		return "update"
	case ActionUpdateGroup:
		return "update-group"
	case ActionCreate:
		return "create"
	default:
		return "skip"
	}
}

// Skip reasons surfaced by the reconciler.
const (
	SkipOutOfWindow    = "out of window"
	SkipNoMatch        = "no match"
	SkipNoFutureRanges = "no future ranges"
)

// ReconcileDecision is the reconciler's verdict for one holiday record.
// For updates, ScheduleID/ScheduleName identify the matched schedule,
// OldRanges are its ranges as read and NewRanges the ranges to write.
// For creates, ScheduleName is the name to create under. For skips,
// Reason says why.
type ReconcileDecision struct {
	Action       Action
	Holiday      HolidayRecord
	ScheduleID   string
	ScheduleName string
	OldRanges    []teamsadmin.DateTimeRange
	NewRanges    []teamsadmin.DateTimeRange
	Reason       string
}

func (d ReconcileDecision) String() string {
	switch d.Action {
	case ActionSkip:
		return fmt.Sprintf("[skip] %s: %s", d.Holiday.ScheduleName(), d.Reason)
	case ActionCreate:
		return fmt.Sprintf("[create] %s: %d range(s)", d.ScheduleName, len(d.NewRanges))
	default:
		return fmt.Sprintf("[%s] %s: %d -> %d range(s)",
			d.Action, d.ScheduleName, len(d.OldRanges), len(d.NewRanges))
	}
}
