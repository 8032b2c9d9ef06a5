package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"voiceadmin/internal/csvio"
	"voiceadmin/internal/mocks"
	"voiceadmin/internal/models"
	"voiceadmin/pkg/teamsadmin"
)

func newTestProvisionService(
	client *mocks.MockTeamsClient,
	dryRun bool,
) (*ProvisionService, *[]time.Duration) {
	service := NewProvisionService(
		nopLogger(), client, 30*time.Second, "AU", "sku-phone-system", dryRun)

	var slept []time.Duration
	service.sleep = func(d time.Duration) { slept = append(slept, d) }

	return service, &slept
}

func TestProvisionAllCreatesAndLicenses(t *testing.T) {
	client := mocks.NewMockTeamsClient()
	service, slept := newTestProvisionService(client, false)

	rows := []csvio.Row{
		{Line: 2, UPN: "aa-reception@contoso.com", DisplayName: "Reception"},
	}

	created, skipped := service.ProvisionAll(
		context.Background(), rows, models.KindAutoAttendant)

	assert.Equal(t, 1, created)
	assert.Equal(t, 0, skipped)
	assert.Len(t, client.CreatedAccounts, 1)

	account := client.CreatedAccounts[0]
	assert.Equal(t, "aa-reception@contoso.com", account.UPN)
	assert.Equal(t, teamsadmin.ApplicationIDAutoAttendant, account.ApplicationID)
	assert.Equal(t, "AU", client.UsageLocations[account.ID])
	assert.Equal(t, "sku-phone-system", client.Licenses[account.ID])

	// The replication wait sits between creation and licensing.
	assert.Equal(t, []time.Duration{30 * time.Second}, *slept)
}

func TestProvisionAllUsesCallQueueApplicationID(t *testing.T) {
	client := mocks.NewMockTeamsClient()
	service, _ := newTestProvisionService(client, false)

	rows := []csvio.Row{
		{Line: 2, UPN: "cq-support@contoso.com", DisplayName: "Support Queue"},
	}

	service.ProvisionAll(context.Background(), rows, models.KindCallQueue)

	assert.Len(t, client.CreatedAccounts, 1)
	assert.Equal(t, teamsadmin.ApplicationIDCallQueue,
		client.CreatedAccounts[0].ApplicationID)
}

func TestProvisionAllSkipsExistingAccounts(t *testing.T) {
	client := mocks.NewMockTeamsClient()
	client.ExistingUPNs["aa-reception@contoso.com"] = true

	service, slept := newTestProvisionService(client, false)

	rows := []csvio.Row{
		{Line: 2, UPN: "aa-reception@contoso.com", DisplayName: "Reception"},
		{Line: 3, UPN: "aa-sales@contoso.com", DisplayName: "Sales"},
	}

	created, skipped := service.ProvisionAll(
		context.Background(), rows, models.KindAutoAttendant)

	assert.Equal(t, 1, created)
	assert.Equal(t, 1, skipped)
	assert.Len(t, client.CreatedAccounts, 1)
	assert.Equal(t, "aa-sales@contoso.com", client.CreatedAccounts[0].UPN)
	assert.Len(t, *slept, 1)
}

func TestProvisionAllDryRun(t *testing.T) {
	client := mocks.NewMockTeamsClient()
	service, slept := newTestProvisionService(client, true)

	rows := []csvio.Row{
		{Line: 2, UPN: "aa-reception@contoso.com", DisplayName: "Reception"},
	}

	created, skipped := service.ProvisionAll(
		context.Background(), rows, models.KindAutoAttendant)

	assert.Equal(t, 0, created)
	assert.Equal(t, 1, skipped)
	assert.Empty(t, client.CreatedAccounts)
	assert.Empty(t, *slept)
}
