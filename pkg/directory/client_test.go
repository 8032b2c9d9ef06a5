package directory_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voiceadmin/pkg/directory"
)

func newLoginServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/tenant/oauth2/v2.0/token",
		func(w http.ResponseWriter, _ *http.Request) {
			//nolint:errcheck //test stub
			w.Write([]byte(`{"access_token": "token-123", "token_type": "Bearer", "expires_in": 3599}`))
		})
	mux.HandleFunc("/contoso.com/v2.0/.well-known/openid-configuration",
		func(w http.ResponseWriter, r *http.Request) {
			//nolint:errcheck //test stub
			fmt.Fprintf(w,
				`{"issuer": "https://%s/4001e9cf-3fbe-4b09-863f-bd1654cfbf76/v2.0"}`,
				r.Host)
		})

	return httptest.NewServer(mux)
}

func TestGetUser(t *testing.T) {
	login := newLoginServer()
	defer login.Close()

	api := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

			//nolint:errcheck //test stub
			w.Write([]byte(`{
				"id": "obj-1",
				"userPrincipalName": "jan@contoso.com",
				"displayName": "Jan Novak",
				"givenName": "Jan",
				"surname": "Novak",
				"mobilePhone": "+61 2 5550 1234",
				"jobTitle": "Facilities Manager",
				"officeLocation": "Sydney"
			}`))
		}))
	defer api.Close()

	client := directory.NewWithBaseURLs(api.URL, login.URL, "tenant", "client", "secret")
	require.Nil(t, client.Login(context.Background()))

	user, err := client.GetUser(context.Background(), "jan@contoso.com")

	require.Nil(t, err)
	assert.Equal(t, "obj-1", user.ID)
	assert.Equal(t, "Jan", user.GivenName)
	assert.Equal(t, "Sydney", user.Office)
}

func TestGetUserNotFound(t *testing.T) {
	login := newLoginServer()
	defer login.Close()

	api := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
	defer api.Close()

	client := directory.NewWithBaseURLs(api.URL, login.URL, "tenant", "client", "secret")
	require.Nil(t, client.Login(context.Background()))

	_, err := client.GetUser(context.Background(), "ghost@contoso.com")
	assert.ErrorIs(t, err, directory.ErrNotFound)
}

func TestGetTenantID(t *testing.T) {
	login := newLoginServer()
	defer login.Close()

	client := directory.NewWithBaseURLs("http://unused", login.URL, "", "", "")

	tenantID, err := client.GetTenantID(context.Background(), "contoso.com")

	require.Nil(t, err)
	assert.Equal(t, "4001e9cf-3fbe-4b09-863f-bd1654cfbf76", tenantID)
}
