// Package predicthq implements domain.RadiusAdvisor and domain.EventFinder
// on the PredictHQ events-intelligence API.
package predicthq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fieldsense/location-insights/internal/domain"
	"github.com/fieldsense/location-insights/internal/observability"
)

const providerName = "predicthq"

// resultLimit caps one events query to a single page. The dashboard does not
// paginate; the provider's default sort applies.
const resultLimit = 200

// Client calls the PredictHQ API with bearer-token auth.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a PredictHQ client.
func NewClient(token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.predicthq.com/v1",
		metrics: metrics,
		logger:  logger,
	}
}

// SuggestRadius asks for a recommended search radius around a coordinate for
// a target industry. The industry must be supplied by the caller; the config
// default applies only when the caller has none.
func (c *Client) SuggestRadius(ctx context.Context, lat, lon float64, unit, industry string) (domain.RadiusSuggestion, error) {
	params := url.Values{
		"location.origin": {fmt.Sprintf("%f,%f", lat, lon)},
		"radius_unit":     {unit},
		"industry":        {industry},
	}

	var resp domain.RadiusSuggestion
	if err := c.doRequest(ctx, "suggested_radius", c.baseURL+"/suggested-radius/?"+params.Encode(), &resp); err != nil {
		return domain.RadiusSuggestion{}, err
	}
	return resp, nil
}

// SearchEvents retrieves one page of events matching the search. The window
// is passed with UTC semantics (active.tz=UTC) regardless of venue-local
// timezones; per-record timezones apply only at display time.
func (c *Client) SearchEvents(ctx context.Context, search domain.EventSearch) ([]domain.EventRecord, error) {
	params := url.Values{
		"within":     {fmt.Sprintf("%g%s@%f,%f", search.Radius, search.RadiusUnit, search.Lat, search.Lon)},
		"active.gte": {search.Window.FromDate()},
		"active.lte": {search.Window.ToDate()},
		"active.tz":  {search.Window.Timezone},
		"limit":      {fmt.Sprintf("%d", resultLimit)},
	}
	if len(search.Categories) > 0 {
		params.Set("category", strings.Join(search.Categories, ","))
	}

	var resp eventsResponse
	if err := c.doRequest(ctx, "events_search", c.baseURL+"/events/?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
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
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(providerName, op, "error").Inc()
		return fmt.Errorf("predicthq %s request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ProviderRequests.WithLabelValues(providerName, op, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("predicthq API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.ProviderRequests.WithLabelValues(providerName, op, "error").Inc()
		return fmt.Errorf("decode response: %w", err)
	}

	c.metrics.ProviderRequests.WithLabelValues(providerName, op, "success").Inc()
	return nil
}

// PredictHQ API response types.

type eventsResponse struct {
	Count   int                  `json:"count"`
	Results []domain.EventRecord `json:"results"`
}
