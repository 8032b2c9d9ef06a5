package teamsadmin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/logging"

	"voiceadmin/pkg/teamsadmin"
)

func newLoginServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Nil(t, r.ParseForm())
			require.Equal(t, "client_credentials", r.Form.Get("grant_type"))

			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck //test stub
			w.Write([]byte(`{
				"access_token": "token-123",
				"token_type": "Bearer",
				"expires_in": 3599
			}`))
		}))
}

func TestRequestsRequireLogin(t *testing.T) {
	client := teamsadmin.NewWithBaseURLs(
		logging.NewNopLogger(), "http://unused", "http://unused",
		"tenant", "client", "secret")

	_, err := client.GetSchedules(context.Background())
	assert.ErrorIs(t, err, teamsadmin.ErrUnauthorized)
}

func TestLoginFailureIsUnauthorized(t *testing.T) {
	login := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
	defer login.Close()

	client := teamsadmin.NewWithBaseURLs(
		logging.NewNopLogger(), "http://unused", login.URL,
		"tenant", "client", "secret")

	err := client.Login(context.Background())
	assert.ErrorIs(t, err, teamsadmin.ErrUnauthorized)
}

func TestGetSchedules(t *testing.T) {
	login := newLoginServer(t)
	defer login.Close()

	api := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
			require.Equal(t, "/schedules", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck //test stub
			w.Write([]byte(`[
				{
					"id": "s1",
					"name": "NSW Boxing Day",
					"fixedSchedule": {
						"dateTimeRanges": [
							{"start": "2025-12-26T00:00:00", "end": "2025-12-27T23:45:00"}
						]
					}
				},
				{"id": "w1", "name": "Business Hours", "weeklyRecurrentSchedule": {}}
			]`))
		}))
	defer api.Close()

	client := teamsadmin.NewWithBaseURLs(
		logging.NewNopLogger(), api.URL, login.URL, "tenant", "client", "secret")
	require.Nil(t, client.Login(context.Background()))

	schedules, err := client.GetSchedules(context.Background())

	require.Nil(t, err)
	require.Len(t, schedules, 2)
	assert.True(t, schedules[0].IsFixed())
	assert.Len(t, schedules[0].Fixed.DateTimeRanges, 1)
	assert.Equal(t, "2025-12-26T00:00:00 -> 2025-12-27T23:45:00",
		schedules[0].Fixed.DateTimeRanges[0].String())
	assert.False(t, schedules[1].IsFixed())
}

func TestCreateScheduleConflict(t *testing.T) {
	login := newLoginServer(t)
	defer login.Close()

	api := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
	defer api.Close()

	client := teamsadmin.NewWithBaseURLs(
		logging.NewNopLogger(), api.URL, login.URL, "tenant", "client", "secret")
	require.Nil(t, client.Login(context.Background()))

	_, err := client.CreateSchedule(context.Background(), "NSW Public Holidays", nil)
	assert.ErrorIs(t, err, teamsadmin.ErrConflict)
}
