package datagovau

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
)

const BaseURLDataAPI = "https://data.gov.au/data/api/3/action"

// ResourceIDHolidays identifies the combined "Australian public holidays"
// datastore resource covering all jurisdictions and years.
const ResourceIDHolidays = "33673aca-0857-42e5-b8f0-9981b4755686"

type client struct {
	baseURL    string
	resourceID string
}

func New() Client {
	return client{
		baseURL:    BaseURLDataAPI,
		resourceID: ResourceIDHolidays,
	}
}

// NewWithBaseURL is used by tests to point the client at a stub server.
func NewWithBaseURL(baseURL string) Client {
	return client{
		baseURL:    baseURL,
		resourceID: ResourceIDHolidays,
	}
}

func (client client) GetHolidays(
	ctx context.Context,
	jurisdiction string,
) ([]Record, error) {
	sql := fmt.Sprintf(
		`SELECT * from "%s" WHERE LOWER("Jurisdiction") = '%s'`,
		client.resourceID,
		strings.ToLower(jurisdiction),
	)

	var rs sqlResponse
	err := client.sendRequest(ctx, "datastore_search_sql", "sql="+url.QueryEscape(sql), &rs)
	if err != nil {
		return nil, err
	}

	if !rs.Success {
		return nil, fmt.Errorf("datastore query for %s was unsuccessful", jurisdiction)
	}

	return rs.Result.Records, nil
}

func (client client) sendRequest(
	ctx context.Context,
	endpoint string,
	query string,
	dst any,
) error {
	u, err := url.Parse(fmt.Sprintf("%s/%s", client.baseURL, endpoint))
	if err != nil {
		return err
	}

	u.RawQuery = query

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("datastore returned status %d", res.StatusCode)
	}

	return httptools.ReadJSON(res.Body, dst)
}
