package mocks

import (
	"context"
	"fmt"

	"voiceadmin/pkg/directory"
)

type MockDirectoryClient struct {
	Users    map[string]directory.User
	TenantID string
}

func NewMockDirectoryClient() *MockDirectoryClient {
	return &MockDirectoryClient{
		Users:    map[string]directory.User{},
		TenantID: "4001e9cf-3fbe-4b09-863f-bd1654cfbf76",
	}
}

func (client *MockDirectoryClient) Login(_ context.Context) error {
	return nil
}

func (client *MockDirectoryClient) GetUser(
	_ context.Context,
	upn string,
) (*directory.User, error) {
	user, ok := client.Users[upn]
	if !ok {
		return nil, fmt.Errorf("%w: %s", directory.ErrNotFound, upn)
	}

	return &user, nil
}

func (client *MockDirectoryClient) GetTenantID(
	_ context.Context,
	_ string,
) (string, error) {
	return client.TenantID, nil
}
