package mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"voiceadmin/pkg/teamsadmin"
)

type MockTeamsClient struct {
	LoginErr  error
	LoggedIn  bool
	Schedules []teamsadmin.Schedule

	CreatedSchedules []teamsadmin.Schedule
	UpdatedRanges    map[string][]teamsadmin.DateTimeRange

	ExistingUPNs    map[string]bool
	CreatedAccounts []teamsadmin.ResourceAccount
	UsageLocations  map[string]string
	Licenses        map[string]string

	ExistingContacts map[string]bool
	CreatedContacts  []teamsadmin.ContactDto
}

func NewMockTeamsClient() *MockTeamsClient {
	return &MockTeamsClient{
		UpdatedRanges:    map[string][]teamsadmin.DateTimeRange{},
		ExistingUPNs:     map[string]bool{},
		UsageLocations:   map[string]string{},
		Licenses:         map[string]string{},
		ExistingContacts: map[string]bool{},
	}
}

func (client *MockTeamsClient) Login(_ context.Context) error {
	if client.LoginErr != nil {
		return client.LoginErr
	}

	client.LoggedIn = true
	return nil
}

func (client *MockTeamsClient) GetSchedules(
	_ context.Context,
) ([]teamsadmin.Schedule, error) {
	return client.Schedules, nil
}

func (client *MockTeamsClient) CreateSchedule(
	_ context.Context,
	name string,
	ranges []teamsadmin.DateTimeRange,
) (*teamsadmin.Schedule, error) {
	for _, schedule := range client.Schedules {
		if schedule.Name == name {
			return nil, fmt.Errorf("%w: %s", teamsadmin.ErrConflict, name)
		}
	}

	schedule := teamsadmin.Schedule{
		ID:    uuid.NewString(),
		Name:  name,
		Fixed: &teamsadmin.FixedSchedule{DateTimeRanges: ranges},
	}

	client.Schedules = append(client.Schedules, schedule)
	client.CreatedSchedules = append(client.CreatedSchedules, schedule)

	return &schedule, nil
}

func (client *MockTeamsClient) UpdateSchedule(
	_ context.Context,
	scheduleID string,
	ranges []teamsadmin.DateTimeRange,
) (*teamsadmin.Schedule, error) {
	for i, schedule := range client.Schedules {
		if schedule.ID != scheduleID {
			continue
		}

		client.Schedules[i].Fixed = &teamsadmin.FixedSchedule{DateTimeRanges: ranges}
		client.UpdatedRanges[scheduleID] = ranges

		return &client.Schedules[i], nil
	}

	return nil, fmt.Errorf("schedule %s not found", scheduleID)
}

func (client *MockTeamsClient) CreateResourceAccount(
	_ context.Context,
	upn string,
	displayName string,
	applicationID string,
) (*teamsadmin.ResourceAccount, error) {
	if client.ExistingUPNs[upn] {
		return nil, fmt.Errorf("%w: %s", teamsadmin.ErrConflict, upn)
	}

	account := teamsadmin.ResourceAccount{
		ID:            uuid.NewString(),
		UPN:           upn,
		DisplayName:   displayName,
		ApplicationID: applicationID,
	}

	client.ExistingUPNs[upn] = true
	client.CreatedAccounts = append(client.CreatedAccounts, account)

	return &account, nil
}

func (client *MockTeamsClient) SetUsageLocation(
	_ context.Context,
	accountID string,
	location string,
) error {
	client.UsageLocations[accountID] = location
	return nil
}

func (client *MockTeamsClient) AssignLicense(
	_ context.Context,
	accountID string,
	skuID string,
) error {
	client.Licenses[accountID] = skuID
	return nil
}

func (client *MockTeamsClient) CreateContact(
	_ context.Context,
	contact teamsadmin.ContactDto,
) (*teamsadmin.Contact, error) {
	if client.ExistingContacts[contact.UPN] {
		return nil, fmt.Errorf("%w: %s", teamsadmin.ErrConflict, contact.UPN)
	}

	client.ExistingContacts[contact.UPN] = true
	client.CreatedContacts = append(client.CreatedContacts, contact)

	return &teamsadmin.Contact{
		ID:          uuid.NewString(),
		UPN:         contact.UPN,
		DisplayName: contact.DisplayName,
	}, nil
}
