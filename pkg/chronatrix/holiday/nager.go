package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultPublicBaseURL is the public Nager.Date endpoint.
const DefaultPublicBaseURL = "https://date.nager.at"

// PublicHoliday is one bank holiday as reported by Nager.Date.
type PublicHoliday struct {
	// Date is the holiday's civil date, "2006-01-02".
	Date string `json:"date"`
	// LocalName is the name in the country's language.
	LocalName string `json:"localName"`
	// Name is the English name.
	Name string `json:"name"`
}

// PublicClient fetches bank holidays from the Nager.Date API.
type PublicClient struct {
	baseURL    string
	httpClient *http.Client
}

// PublicClientOption configures a PublicClient.
type PublicClientOption func(*PublicClient)

// WithPublicBaseURL overrides the API endpoint. Used by tests.
func WithPublicBaseURL(u string) PublicClientOption {
	return func(c *PublicClient) {
		c.baseURL = u
	}
}

// WithPublicHTTPClient sets the underlying HTTP client.
func WithPublicHTTPClient(hc *http.Client) PublicClientOption {
	return func(c *PublicClient) {
		c.httpClient = hc
	}
}

// NewPublicClient creates a Nager.Date client.
func NewPublicClient(opts ...PublicClientOption) *PublicClient {
	c := &PublicClient{
		baseURL:    DefaultPublicBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Holidays returns the bank holidays of a country for one year.
// An unsupported country code is a normal empty result, not an error.
func (c *PublicClient) Holidays(ctx context.Context, countryCode string, year int) ([]PublicHoliday, error) {
	u := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s",
		c.baseURL, year, strings.ToUpper(countryCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch public holidays: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusNoContent:
		// Country not covered by the dataset.
		return nil, nil
	default:
		return nil, fmt.Errorf("public holidays: unexpected status %d", resp.StatusCode)
	}

	var holidays []PublicHoliday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("decode public holidays: %w", err)
	}
	return holidays, nil
}
