package teamsadmin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
)

const BaseURLAdminAPI = "https://api.interfaces.records.teams.microsoft.com/v1"
const BaseURLLogin = "https://login.microsoftonline.com"

// ErrConflict is returned when a create call targets a name or principal
// that already exists on the platform.
var ErrConflict = errors.New("resource already exists")

// ErrUnauthorized is returned when no session is established or the
// token was rejected.
var ErrUnauthorized = errors.New("administrative session not established")

type client struct {
	logger       *slog.Logger
	baseURL      string
	loginURL     string
	tenantID     string
	clientID     string
	clientSecret string
	accessToken  string
}

func New(
	logger *slog.Logger,
	tenantID string,
	clientID string,
	clientSecret string,
) Client {
	return &client{
		logger:       logger,
		baseURL:      BaseURLAdminAPI,
		loginURL:     BaseURLLogin,
		tenantID:     tenantID,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// NewWithBaseURLs is used by tests to point the client at stub servers.
func NewWithBaseURLs(
	logger *slog.Logger,
	baseURL string,
	loginURL string,
	tenantID string,
	clientID string,
	clientSecret string,
) Client {
	return &client{
		logger:       logger,
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
	form.Set("scope", "https://api.interfaces.records.teams.microsoft.com/.default")

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
	client.logger.Debug("administrative session established",
		slog.String("tenant", client.tenantID))

	return nil
}

func (client *client) GetSchedules(ctx context.Context) ([]Schedule, error) {
	var schedules []Schedule
	err := client.sendRequest(ctx, http.MethodGet, "schedules", nil, &schedules)
	if err != nil {
		return nil, err
	}

	return schedules, nil
}

func (client *client) CreateSchedule(
	ctx context.Context,
	name string,
	ranges []DateTimeRange,
) (*Schedule, error) {
	body := createScheduleDto{
		Name:  name,
		Fixed: &FixedSchedule{DateTimeRanges: ranges},
	}

	var schedule *Schedule
	err := client.sendRequest(ctx, http.MethodPost, "schedules", body, &schedule)
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (client *client) UpdateSchedule(
	ctx context.Context,
	scheduleID string,
	ranges []DateTimeRange,
) (*Schedule, error) {
	endpoint := fmt.Sprintf("schedules/%s", scheduleID)
	body := updateScheduleDto{
		Fixed: &FixedSchedule{DateTimeRanges: ranges},
	}

	var schedule *Schedule
	err := client.sendRequest(ctx, http.MethodPut, endpoint, body, &schedule)
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (client *client) CreateResourceAccount(
	ctx context.Context,
	upn string,
	displayName string,
	applicationID string,
) (*ResourceAccount, error) {
	body := createAccountDto{
		UPN:           upn,
		DisplayName:   displayName,
		ApplicationID: applicationID,
	}

	var account *ResourceAccount
	err := client.sendRequest(ctx, http.MethodPost, "resourceaccounts", body, &account)
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (client *client) SetUsageLocation(
	ctx context.Context,
	accountID string,
	location string,
) error {
	endpoint := fmt.Sprintf("resourceaccounts/%s", accountID)
	return client.sendRequest(
		ctx,
		http.MethodPatch,
		endpoint,
		usageLocationDto{UsageLocation: location},
		nil,
	)
}

func (client *client) AssignLicense(
	ctx context.Context,
	accountID string,
	skuID string,
) error {
	endpoint := fmt.Sprintf("resourceaccounts/%s/assignlicense", accountID)
	return client.sendRequest(
		ctx,
		http.MethodPost,
		endpoint,
		assignLicenseDto{SkuID: skuID},
		nil,
	)
}

func (client *client) CreateContact(
	ctx context.Context,
	contact ContactDto,
) (*Contact, error) {
	var created *Contact
	err := client.sendRequest(ctx, http.MethodPost, "contacts", contact, &created)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (client *client) sendRequest(
	ctx context.Context,
	method string,
	endpoint string,
	body any,
	dst any,
) error {
	if client.accessToken == "" {
		return ErrUnauthorized
	}

	u, err := url.Parse(fmt.Sprintf("%s/%s", client.baseURL, endpoint))
	if err != nil {
		return err
	}

	var req *http.Request
	if body != nil {
		var marshalled []byte
		marshalled, err = json.Marshal(body)
		if err != nil {
			return err
		}

		req, err = http.NewRequestWithContext(
			ctx,
			method,
			u.String(),
			bytes.NewBuffer(marshalled),
		)
		if err != nil {
			return err
		}

		req.Header.Add("Content-Type", "application/json")
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u.String(), nil)
		if err != nil {
			return err
		}
	}

	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", client.accessToken))

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s %s", ErrConflict, method, endpoint)
	case res.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s %s", ErrUnauthorized, method, endpoint)
	case res.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("%s %s returned status %d", method, endpoint, res.StatusCode)
	}

	if dst == nil {
		return nil
	}

	err = httptools.ReadJSON(res.Body, dst)
	if err != nil && err.Error() != "body must not be empty" {
		return err
	}

	return nil
}
