package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsense/location-insights/internal/adapter/httpapi"
	"github.com/fieldsense/location-insights/internal/domain"
	"github.com/fieldsense/location-insights/internal/insights"
)

type mockAPI struct {
	candidates []domain.PlaceCandidate
	result     insights.Insights
	lookupErr  error
	placesErr  error
	readyErr   error

	lastQuery   string
	lastSession string
	lastPlaceID string
}

func (m *mockAPI) Autocomplete(_ context.Context, text, sessionToken string) ([]domain.PlaceCandidate, error) {
	m.lastQuery = text
	m.lastSession = sessionToken
	if m.placesErr != nil {
		return nil, m.placesErr
	}
	if text == "" {
		return []domain.PlaceCandidate{}, nil
	}
	return m.candidates, nil
}

func (m *mockAPI) Lookup(_ context.Context, placeID, sessionToken string) (insights.Insights, error) {
	m.lastPlaceID = placeID
	m.lastSession = sessionToken
	return m.result, m.lookupErr
}

func (m *mockAPI) CheckReadiness(_ context.Context) error { return m.readyErr }

func newTestServer(api *mockAPI) *httpapi.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpapi.NewServer(":0", []string{"*"}, api, logger)
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockAPI{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(&mockAPI{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(&mockAPI{readyErr: fmt.Errorf("providers not wired")})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not ready", body["status"])
		assert.Equal(t, "providers not wired", body["error"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockAPI{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestSessionIssuesFreshTokens(t *testing.T) {
	srv := newTestServer(&mockAPI{})

	token := func() string {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotEmpty(t, body["token"])
		return body["token"]
	}

	assert.NotEqual(t, token(), token(), "each visit gets its own session token")
}

func TestPlaces(t *testing.T) {
	t.Run("returns ordered candidates", func(t *testing.T) {
		api := &mockAPI{candidates: []domain.PlaceCandidate{
			{Label: "123 Main St, Anytown", PlaceID: "place-1"},
			{Label: "123 Main Ave, Otherville", PlaceID: "place-2"},
		}}
		srv := newTestServer(api)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/places?q=123+Main&session=tok-1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "123 Main", api.lastQuery)
		assert.Equal(t, "tok-1", api.lastSession)

		var body struct {
			Candidates []domain.PlaceCandidate `json:"candidates"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Candidates, 2)
		assert.Equal(t, "place-1", body.Candidates[0].PlaceID)
	})

	t.Run("empty query yields empty list", func(t *testing.T) {
		srv := newTestServer(&mockAPI{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/places?session=tok-1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"candidates":[]}`, rec.Body.String())
	})

	t.Run("provider failure maps to 502", func(t *testing.T) {
		srv := newTestServer(&mockAPI{placesErr: errors.New("upstream down")})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/places?q=x&session=tok-1", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestInsights(t *testing.T) {
	t.Run("returns full payload", func(t *testing.T) {
		api := &mockAPI{result: insights.Insights{
			Title:           "Location Insights",
			Place:           domain.Place{ID: "place-1", Name: "Bistro", Lat: 40.7, Lon: -74.0},
			SuggestedRadius: domain.RadiusSuggestion{Radius: 2, Unit: "mi"},
			Map:             insights.MapPanel{Lat: 40.7, Lon: -74.0, RadiusMeters: 3218},
			Summary:         insights.Summary{EventCount: 1, TotalAttendance: 500},
			Events:          []domain.EventRow{{Title: "Arena Concert", Attendance: 500}},
		}}
		srv := newTestServer(api)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/insights?place_id=place-1&session=tok-1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "place-1", api.lastPlaceID)

		var body insights.Insights
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Bistro", body.Place.Name)
		assert.Equal(t, 3218.0, body.Map.RadiusMeters)
		require.Len(t, body.Events, 1)
		assert.Equal(t, "Arena Concert", body.Events[0].Title)
	})

	t.Run("missing place_id is 400", func(t *testing.T) {
		srv := newTestServer(&mockAPI{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/insights?session=tok-1", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("provider failure maps to 502", func(t *testing.T) {
		srv := newTestServer(&mockAPI{lookupErr: errors.New("radius service down")})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/insights?place_id=p&session=tok-1", nil))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("contract violation maps to 500", func(t *testing.T) {
		err := fmt.Errorf("%w: event 3 missing title", insights.ErrMalformedRecord)
		srv := newTestServer(&mockAPI{lookupErr: err})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/insights?place_id=p&session=tok-1", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
