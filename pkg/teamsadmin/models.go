package teamsadmin

import (
	"fmt"
	"time"
)

// Application IDs distinguishing the two resource account kinds.
const (
	ApplicationIDAutoAttendant = "ce933385-9390-45d1-9512-c8d228074e07"
	ApplicationIDCallQueue     = "11cd3e2e-fccb-42ad-ad00-878b93575e07"
)

// Schedule is a named call-routing schedule. Exactly one of Fixed and
// WeeklyRecurrence is set depending on the schedule kind.
type Schedule struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Fixed            *FixedSchedule  `json:"fixedSchedule,omitempty"`
	WeeklyRecurrence *WeeklySchedule `json:"weeklyRecurrentSchedule,omitempty"`
}

// IsFixed reports whether the schedule is calendar-based rather than a
// recurring weekly pattern.
func (s Schedule) IsFixed() bool {
	return s.Fixed != nil
}

type FixedSchedule struct {
	DateTimeRanges []DateTimeRange `json:"dateTimeRanges"`
}

type WeeklySchedule struct {
	MondayHours    []DateTimeRange `json:"mondayHours,omitempty"`
	TuesdayHours   []DateTimeRange `json:"tuesdayHours,omitempty"`
	WednesdayHours []DateTimeRange `json:"wednesdayHours,omitempty"`
	ThursdayHours  []DateTimeRange `json:"thursdayHours,omitempty"`
	FridayHours    []DateTimeRange `json:"fridayHours,omitempty"`
	SaturdayHours  []DateTimeRange `json:"saturdayHours,omitempty"`
	SundayHours    []DateTimeRange `json:"sundayHours,omitempty"`
}

type DateTimeRange struct {
	Start Timestamp `json:"start"`
	End   Timestamp `json:"end"`
}

func (r DateTimeRange) String() string {
	return fmt.Sprintf("%s -> %s", r.Start.Format(timestampLayout), r.End.Format(timestampLayout))
}

const timestampLayout = "2006-01-02T15:04:05"

// Timestamp is a local wall-clock instant without zone designator, the
// format the scheduling API uses for range bounds.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t *Timestamp) UnmarshalJSON(bytes []byte) error {
	parsed, err := time.Parse(`"`+timestampLayout+`"`, string(bytes))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(timestampLayout) + `"`), nil
}

type ResourceAccount struct {
	ID            string `json:"id"`
	UPN           string `json:"userPrincipalName"`
	DisplayName   string `json:"displayName"`
	ApplicationID string `json:"applicationId"`
	UsageLocation string `json:"usageLocation,omitempty"`
}

// ContactDto is the payload for creating a directory contact on the
// calling platform.
type ContactDto struct {
	UPN         string `json:"userPrincipalName"`
	DisplayName string `json:"displayName"`
	GivenName   string `json:"givenName,omitempty"`
	Surname     string `json:"surname,omitempty"`
	Phone       string `json:"phoneNumber,omitempty"`
	JobTitle    string `json:"jobTitle,omitempty"`
	Office      string `json:"officeLocation,omitempty"`
	ObjectID    string `json:"objectId,omitempty"`
}

type Contact struct {
	ID          string `json:"id"`
	UPN         string `json:"userPrincipalName"`
	DisplayName string `json:"displayName"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type createScheduleDto struct {
	Name  string         `json:"name"`
	Fixed *FixedSchedule `json:"fixedSchedule"`
}

type updateScheduleDto struct {
	Fixed *FixedSchedule `json:"fixedSchedule"`
}

type createAccountDto struct {
	UPN           string `json:"userPrincipalName"`
	DisplayName   string `json:"displayName"`
	ApplicationID string `json:"applicationId"`
}

type usageLocationDto struct {
	UsageLocation string `json:"usageLocation"`
}

type assignLicenseDto struct {
	SkuID string `json:"skuId"`
}
