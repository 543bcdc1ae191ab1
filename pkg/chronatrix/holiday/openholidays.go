package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultSchoolBaseURL is the public OpenHolidays endpoint.
const DefaultSchoolBaseURL = "https://openholidaysapi.org"

// SchoolHoliday is one school-holiday span as reported by OpenHolidays.
type SchoolHoliday struct {
	// StartDate and EndDate bound the span, inclusive, "2006-01-02".
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	// Name holds localized names; the first entry is used.
	Name []LocalizedText `json:"name"`
}

// LocalizedText is a language-tagged string.
type LocalizedText struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// SchoolClient fetches school holidays from the OpenHolidays API.
type SchoolClient struct {
	baseURL    string
	httpClient *http.Client
}

// SchoolClientOption configures a SchoolClient.
type SchoolClientOption func(*SchoolClient)

// WithSchoolBaseURL overrides the API endpoint. Used by tests.
func WithSchoolBaseURL(u string) SchoolClientOption {
	return func(c *SchoolClient) {
		c.baseURL = u
	}
}

// WithSchoolHTTPClient sets the underlying HTTP client.
func WithSchoolHTTPClient(hc *http.Client) SchoolClientOption {
	return func(c *SchoolClient) {
		c.httpClient = hc
	}
}

// NewSchoolClient creates an OpenHolidays client.
func NewSchoolClient(opts ...SchoolClientOption) *SchoolClient {
	c := &SchoolClient{
		baseURL:    DefaultSchoolBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SchoolHolidays returns the school holidays of a country subdivision
// for one year. Unsupported countries or subdivisions are a normal
// empty result, not an error.
func (c *SchoolClient) SchoolHolidays(ctx context.Context, countryCode, zone string, year int) ([]SchoolHoliday, error) {
	q := url.Values{}
	q.Set("countryIsoCode", strings.ToUpper(countryCode))
	q.Set("subdivisionCode", strings.ToUpper(zone))
	q.Set("validFrom", fmt.Sprintf("%d-01-01", year))
	q.Set("validTo", fmt.Sprintf("%d-12-31", year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/SchoolHolidays?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch school holidays: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusNoContent, http.StatusBadRequest:
		// Country or subdivision not covered by the dataset.
		return nil, nil
	default:
		return nil, fmt.Errorf("school holidays: unexpected status %d", resp.StatusCode)
	}

	var holidays []SchoolHoliday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("decode school holidays: %w", err)
	}
	return holidays, nil
}
