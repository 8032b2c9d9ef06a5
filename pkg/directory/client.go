package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
)

const BaseURLGraphAPI = "https://graph.microsoft.com/v1.0"
const BaseURLLogin = "https://login.microsoftonline.com"

var ErrUnauthorized = errors.New("directory session not established")

// ErrNotFound is returned when a principal name resolves to nothing.
var ErrNotFound = errors.New("user not found")

type client struct {
	baseURL      string
	loginURL     string
	tenantID     string
	clientID     string
	clientSecret string
	accessToken  string
}

func New(tenantID string, clientID string, clientSecret string) Client {
	return &client{
		baseURL:      BaseURLGraphAPI,
		loginURL:     BaseURLLogin,
		tenantID:     tenantID,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// NewWithBaseURLs is used by tests to point the client at stub servers.
func NewWithBaseURLs(
	baseURL string,
	loginURL string,
	tenantID string,
	clientID string,
	clientSecret string,
) Client {
	return &client{
		baseURL:      baseURL,
		loginURL:     loginURL,
		tenantID:     tenantID,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

func (client *client) Login(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", client.clientID)
	form.Set("client_secret", client.clientSecret)
	form.Set("scope", "https://graph.microsoft.com/.default")

	u := fmt.Sprintf("%s/%s/oauth2/v2.0/token", client.loginURL, client.tenantID)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		u,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return err
	}

	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: token endpoint returned status %d",
			ErrUnauthorized, res.StatusCode)
	}

	var token tokenResponse
	err = httptools.ReadJSON(res.Body, &token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	client.accessToken = token.AccessToken
	return nil
}

func (client *client) GetUser(ctx context.Context, upn string) (*User, error) {
	if client.accessToken == "" {
		return nil, ErrUnauthorized
	}

	endpoint := fmt.Sprintf(
		"users/%s?$select=id,userPrincipalName,displayName,givenName,surname,mobilePhone,jobTitle,officeLocation",
		url.PathEscape(upn),
	)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/%s", client.baseURL, endpoint),
		nil,
	)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", client.accessToken))

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, upn)
	case res.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case res.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("user lookup for %s returned status %d",
			upn, res.StatusCode)
	}

	var user *User
	err = httptools.ReadJSON(res.Body, &user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetTenantID resolves a verified domain to its tenant identifier through
// the public OpenID discovery document, so it works before Login.
func (client *client) GetTenantID(ctx context.Context, domain string) (string, error) {
	u := fmt.Sprintf(
		"%s/%s/v2.0/.well-known/openid-configuration",
		client.loginURL,
		domain,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tenant discovery for %s returned status %d",
			domain, res.StatusCode)
	}

	var conf openIDConfiguration
	err = httptools.ReadJSON(res.Body, &conf)
	if err != nil {
		return "", err
	}

	// Issuer looks like https://login.microsoftonline.com/<tenant>/v2.0.
	parts := strings.Split(strings.Trim(conf.Issuer, "/"), "/")
	if len(parts) < 2 {
		return "", fmt.Errorf("unexpected issuer %q for domain %s", conf.Issuer, domain)
	}

	return parts[len(parts)-2], nil
}
