// Package geo wraps the external weather API used to verify that a city
// actually exists and to resolve which country it belongs to. The lookup is
// a blocking HTTP call bounded by a timeout; a negative answer from the API
// is a domain failure (ErrCityNotFound), not a transport error.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the weather API endpoint queried for city lookups.
const DefaultBaseURL = "http://api.weatherapi.com/v1/current.json"

// ErrCityNotFound is returned when the API reports that no location
// matches the requested city name.
var ErrCityNotFound = errors.New("city not found")

// Client performs country lookups for city names. A nil *Client is valid
// and means the collaborator is disabled; GetCountry on nil returns
// ErrDisabled so callers can skip the check.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// ErrDisabled is returned by a nil Client, i.e. when no API key was
// configured at startup.
var ErrDisabled = errors.New("geo lookup disabled")

// New builds a Client with the given API key and request timeout. An empty
// key returns nil, which disables lookups.
func New(apiKey string, timeout time.Duration) *Client {
	if apiKey == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// NewWithBaseURL is New with an overridable endpoint, used by tests.
func NewWithBaseURL(apiKey, baseURL string, timeout time.Duration) *Client {
	c := New(apiKey, timeout)
	if c != nil && baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

type lookupResponse struct {
	Location struct {
		Country string `json:"country"`
	} `json:"location"`
}

// GetCountry resolves the country a city belongs to. It returns
// ErrCityNotFound when the API answers 400 for the city, ErrDisabled on a
// nil client, and a wrapped transport error otherwise.
func (c *Client) GetCountry(ctx context.Context, city string) (string, error) {
	if c == nil {
		return "", ErrDisabled
	}
	// The API does not know the correct name of the capital of Ukraine.
	if city == "Kyiv" || city == "kyiv" {
		city = "Kiev"
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("geo: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("geo: lookup %q: %w", city, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out lookupResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return "", fmt.Errorf("geo: decode response: %w", err)
		}
		return out.Location.Country, nil
	case http.StatusBadRequest:
		return "", ErrCityNotFound
	default:
		return "", fmt.Errorf("geo: unexpected status %d for %q", resp.StatusCode, city)
	}
}
