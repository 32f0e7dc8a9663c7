package sportmonks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the default API base URL
	DefaultBaseURL = "https://api.sportmonks.com/v3/football"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 10 * time.Second

	// Relation includes for the polled resources, semicolon-delimited
	// as the upstream expects.
	LiveScoresInclude = "scores;participants;state;league"
	FixturesInclude   = "participants;league;round;state"
)

// Client represents a SportMonks football API client
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// Config holds the configuration for the API client
type Config struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// NewClient creates a new SportMonks API client
func NewClient(apiToken string) *Client {
	return NewClientWithConfig(Config{
		BaseURL:  DefaultBaseURL,
		APIToken: apiToken,
		Timeout:  DefaultTimeout,
	})
}

// NewClientWithConfig creates a new client with custom configuration
func NewClientWithConfig(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL:  config.BaseURL,
		apiToken: config.APIToken,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// HasToken reports whether the client was configured with an API token.
// Without one every fetch is pointless; callers skip their refresh cycle.
func (c *Client) HasToken() bool {
	return c.apiToken != ""
}

// envelope is the {"data": ...} wrapper every upstream response uses
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// doRequest performs an HTTP request
func (c *Client) doRequest(method, endpoint string, params url.Values) ([]byte, error) {
	// Build URL
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	// Add query parameters; the token travels as a query parameter
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiToken)
	u.RawQuery = params.Encode()

	// Create request
	req, err := http.NewRequest(method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	// Execute request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Check status code
	if resp.StatusCode != http.StatusOK {
		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return nil, &apiErr
		}
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// FetchResource performs a GET against the named resource and decodes the
// "data" payload of the response envelope into out. A response without a
// data field is an error; the caller's previous cached value stays in place.
func (c *Client) FetchResource(endpoint string, params url.Values, out interface{}) error {
	body, err := c.doRequest(http.MethodGet, endpoint, params)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to parse response body: %w", err)
	}
	if env.Data == nil {
		return fmt.Errorf("response for %s is missing the data field", endpoint)
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s data: %w", endpoint, err)
	}

	return nil
}

// includeParams builds the query values for a relation include list
func includeParams(include string) url.Values {
	params := url.Values{}
	if include != "" {
		params.Set("include", include)
	}
	return params
}

// GetLeagues fetches all leagues
func (c *Client) GetLeagues() ([]League, error) {
	var leagues []League
	if err := c.FetchResource("/leagues", nil, &leagues); err != nil {
		return nil, err
	}
	return leagues, nil
}

// GetTeams fetches all teams
func (c *Client) GetTeams() ([]Team, error) {
	var teams []Team
	if err := c.FetchResource("/teams", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// GetLiveScores fetches in-play matches with their score, participant,
// state and league relations included
func (c *Client) GetLiveScores() ([]RawMatch, error) {
	var matches []RawMatch
	if err := c.FetchResource("/livescores", includeParams(LiveScoresInclude), &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// GetFixtures fetches upcoming fixtures with their participant, league,
// round and state relations included
func (c *Client) GetFixtures() ([]RawFixture, error) {
	var fixtures []RawFixture
	if err := c.FetchResource("/fixtures", includeParams(FixturesInclude), &fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// APIError represents an API error response
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}
