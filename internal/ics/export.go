// Package ics renders fetched holidays as an iCalendar file so an
// administrator can review the dates before running without dry-run.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"voiceadmin/internal/models"
)

func Export(w io.Writer, holidays []models.HolidayRecord) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//voiceadmin//holidaysync//EN")

	now := time.Now()
	for _, holiday := range holidays {
		uid := fmt.Sprintf("%s-%s@voiceadmin",
			strings.ToLower(string(holiday.State)),
			holiday.Start.Format("20060102"))

		event := cal.AddEvent(uid)
		event.SetDtStampTime(now)
		event.SetSummary(holiday.ScheduleName())
		event.SetAllDayStartAt(holiday.Start)
		event.SetAllDayEndAt(holiday.End)
	}

	return cal.SerializeTo(w)
}
