package teamsadmin

import (
	"context"
)

type Client interface {
	// Login establishes the administrative session. Every other call
	// fails until it has succeeded.
	Login(ctx context.Context) error
	GetSchedules(ctx context.Context) ([]Schedule, error)
	CreateSchedule(
		ctx context.Context,
		name string,
		ranges []DateTimeRange,
	) (*Schedule, error)
	UpdateSchedule(
		ctx context.Context,
		scheduleID string,
		ranges []DateTimeRange,
	) (*Schedule, error)
	CreateResourceAccount(
		ctx context.Context,
		upn string,
		displayName string,
		applicationID string,
	) (*ResourceAccount, error)
	SetUsageLocation(ctx context.Context, accountID string, location string) error
	AssignLicense(ctx context.Context, accountID string, skuID string) error
	CreateContact(ctx context.Context, contact ContactDto) (*Contact, error)
}
