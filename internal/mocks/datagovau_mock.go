package mocks

import (
	"context"
	"fmt"
	"strings"

	"voiceadmin/pkg/datagovau"
)

type MockDataGovClient struct {
	RecordsByState map[string][]datagovau.Record
	FailFor        map[string]bool
	Calls          []string
}

func NewMockDataGovClient() *MockDataGovClient {
	return &MockDataGovClient{
		RecordsByState: map[string][]datagovau.Record{},
		FailFor:        map[string]bool{},
	}
}

func (client *MockDataGovClient) GetHolidays(
	_ context.Context,
	jurisdiction string,
) ([]datagovau.Record, error) {
	key := strings.ToLower(jurisdiction)
	client.Calls = append(client.Calls, key)

	if client.FailFor[key] {
		return nil, fmt.Errorf("datastore query for %s was unsuccessful", jurisdiction)
	}

	return client.RecordsByState[key], nil
}
