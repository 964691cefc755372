// Package googleplaces implements domain.PlaceResolver on the Google Places
// Autocomplete and Details APIs.
package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fieldsense/location-insights/internal/domain"
	"github.com/fieldsense/location-insights/internal/observability"
)

const providerName = "google"

// Client implements domain.PlaceResolver using the Google Places API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Google Places client.
func NewClient(apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://maps.googleapis.com/maps/api/place",
		metrics: metrics,
		logger:  logger,
	}
}

// Autocomplete returns ordered candidates for partial address input. Empty
// input yields an empty slice without a provider call — keystrokes before the
// first character are not billable.
func (c *Client) Autocomplete(ctx context.Context, text, sessionToken string) ([]domain.PlaceCandidate, error) {
	if text == "" {
		return []domain.PlaceCandidate{}, nil
	}

	params := url.Values{
		"input":        {text},
		"sessiontoken": {sessionToken},
		"key":          {c.apiKey},
	}

	var resp autocompleteResponse
	if err := c.doRequest(ctx, "autocomplete", c.baseURL+"/autocomplete/json?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Status != statusOK && resp.Status != statusZeroResults {
		c.observe("autocomplete", outcomeError)
		return nil, fmt.Errorf("places autocomplete: status %s: %s", resp.Status, resp.ErrorMessage)
	}
	c.observe("autocomplete", outcomeSuccess)

	candidates := make([]domain.PlaceCandidate, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		candidates = append(candidates, domain.PlaceCandidate{
			Label:   p.Description,
			PlaceID: p.PlaceID,
		})
	}
	return candidates, nil
}

// Resolve fetches coordinates and canonical name for a selected candidate.
func (c *Client) Resolve(ctx context.Context, placeID, sessionToken string) (domain.Place, error) {
	params := url.Values{
		"place_id":     {placeID},
		"sessiontoken": {sessionToken},
		"fields":       {"name,geometry"},
		"key":          {c.apiKey},
	}

	var resp detailsResponse
	if err := c.doRequest(ctx, "details", c.baseURL+"/details/json?"+params.Encode(), &resp); err != nil {
		return domain.Place{}, err
	}
	if resp.Status != statusOK {
		c.observe("details", outcomeError)
		return domain.Place{}, fmt.Errorf("place details: status %s: %s", resp.Status, resp.ErrorMessage)
	}
	c.observe("details", outcomeSuccess)

	return domain.Place{
		ID:   placeID,
		Name: resp.Result.Name,
		Lat:  resp.Result.Geometry.Location.Lat,
		Lon:  resp.Result.Geometry.Location.Lng,
	}, nil
}

func (c *Client) doRequest(ctx context.Context, op, fullURL string, out any) error {
	start := time.Now()
	defer func() {
		c.metrics.ProviderDuration.WithLabelValues(providerName, op).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, outcomeError)
		return fmt.Errorf("places %s request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.observe(op, outcomeError)
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("places API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.observe(op, outcomeError)
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) observe(op, outcome string) {
	c.metrics.ProviderRequests.WithLabelValues(providerName, op, outcome).Inc()
}

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"

	outcomeSuccess = "success"
	outcomeError   = "error"
)

// Google Places API response types.

type autocompleteResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
	Predictions  []prediction `json:"predictions"`
}

type prediction struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Result       struct {
		Name     string `json:"name"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}
