// Package insights assembles the location insights payload: place resolution,
// suggested radius, event retrieval, unit normalization, and row formatting,
// in that order. Each stage blocks on its provider call; the event search
// needs the radius result, so there is no fan-out between them.
package insights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldsense/location-insights/internal/cache"
	"github.com/fieldsense/location-insights/internal/domain"
	"github.com/fieldsense/location-insights/internal/observability"
)

// ErrMalformedRecord marks an upstream data-contract violation (an event
// record missing a mandatory field). Distinct from provider failures: the
// provider answered, but with data this service refuses to render.
var ErrMalformedRecord = errors.New("malformed event record")

// LookupPublisher records completed lookups on an audit trail. Publishing is
// best effort and never fails a lookup.
type LookupPublisher interface {
	PublishLookup(ctx context.Context, record domain.LookupRecord) error
}

// Summary aggregates demand figures across the retrieved events, computed
// from raw records so absent optionals contribute zero.
type Summary struct {
	EventCount          int     `json:"event_count"`
	TotalAttendance     int     `json:"total_attendance"`
	TotalPredictedSpend float64 `json:"total_predicted_spend"`
}

// Window is the date range echo in the payload.
type Window struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Timezone string `json:"timezone"`
}

// MetricsPanel is the input block for the metrics widget, echoing the query
// parameters alongside the suggestion.
type MetricsPanel struct {
	Lat             float64                 `json:"lat"`
	Lon             float64                 `json:"lon"`
	Radius          float64                 `json:"radius"`
	RadiusUnit      string                  `json:"radius_unit"`
	DateFrom        string                  `json:"date_from"`
	DateTo          string                  `json:"date_to"`
	SuggestedRadius domain.RadiusSuggestion `json:"suggested_radius"`
	Timezone        string                  `json:"timezone"`
}

// MapPanel is the input block for the map widget. The map only supports
// meters, so the radius is normalized here; the event rows it marks up are
// the top-level Events slice.
type MapPanel struct {
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	RadiusMeters float64 `json:"radius_meters"`
}

// Insights is the complete payload for one resolved place.
type Insights struct {
	Title           string                  `json:"title"`
	Place           domain.Place            `json:"place"`
	Window          Window                  `json:"window"`
	SuggestedRadius domain.RadiusSuggestion `json:"suggested_radius"`
	Metrics         MetricsPanel            `json:"metrics"`
	Map             MapPanel                `json:"map"`
	Summary         Summary                 `json:"summary"`
	Events          []domain.EventRow       `json:"events"`
}

// Service orchestrates the insights pipeline over the external providers.
type Service struct {
	places    domain.PlaceResolver
	radius    domain.RadiusAdvisor
	events    domain.EventFinder
	publisher LookupPublisher // nil disables the audit trail

	pageTitle string
	industry  string

	memo    *cache.LRU[Insights]
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Service. publisher may be nil.
func New(
	places domain.PlaceResolver,
	radius domain.RadiusAdvisor,
	events domain.EventFinder,
	publisher LookupPublisher,
	pageTitle, industry string,
	memoSize int,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Service {
	if industry == "" {
		industry = domain.DefaultIndustry
	}
	return &Service{
		places:    places,
		radius:    radius,
		events:    events,
		publisher: publisher,
		pageTitle: pageTitle,
		industry:  industry,
		memo:      cache.NewLRU[Insights](memoSize),
		logger:    logger,
		metrics:   metrics,
	}
}

// Autocomplete proxies address candidates for partial input.
func (s *Service) Autocomplete(ctx context.Context, text, sessionToken string) ([]domain.PlaceCandidate, error) {
	return s.places.Autocomplete(ctx, text, sessionToken)
}

// Lookup runs the full pipeline for one selected place. The assembly is a
// pure function of (place, window start, industry) and is memoized on that
// tuple: a repeat lookup of the same place on the same day returns the cached
// payload without touching any provider. No partial result is ever returned;
// any stage failure fails the whole lookup.
func (s *Service) Lookup(ctx context.Context, placeID, sessionToken string) (Insights, error) {
	window := domain.NewSearchWindow()

	key := fmt.Sprintf("%s|%s|%s", placeID, window.FromDate(), s.industry)
	if result, ok := s.memo.Get(key); ok {
		s.metrics.CacheLookups.WithLabelValues("insights", "hit").Inc()
		return result, nil
	}
	s.metrics.CacheLookups.WithLabelValues("insights", "miss").Inc()

	start := time.Now()
	result, err := s.assemble(ctx, placeID, sessionToken, window)
	if err != nil {
		s.metrics.LookupsTotal.WithLabelValues("error").Inc()
		return Insights{}, err
	}
	s.metrics.LookupsTotal.WithLabelValues("success").Inc()
	s.metrics.LookupDuration.Observe(time.Since(start).Seconds())

	s.memo.Put(key, result)
	s.publishAudit(ctx, result)
	return result, nil
}

func (s *Service) assemble(ctx context.Context, placeID, sessionToken string, window domain.SearchWindow) (Insights, error) {
	place, err := s.places.Resolve(ctx, placeID, sessionToken)
	if err != nil {
		return Insights{}, fmt.Errorf("resolve place: %w", err)
	}

	suggestion, err := s.radius.SuggestRadius(ctx, place.Lat, place.Lon, domain.UnitMiles, s.industry)
	if err != nil {
		return Insights{}, fmt.Errorf("suggest radius: %w", err)
	}

	events, err := s.events.SearchEvents(ctx, domain.EventSearch{
		Lat:        place.Lat,
		Lon:        place.Lon,
		Radius:     suggestion.Radius,
		RadiusUnit: suggestion.Unit,
		Window:     window,
		Categories: domain.AttendedCategories,
	})
	if err != nil {
		return Insights{}, fmt.Errorf("search events: %w", err)
	}

	rows, err := domain.FormatEvents(events)
	if err != nil {
		return Insights{}, fmt.Errorf("%w: %s", ErrMalformedRecord, err)
	}

	windowEcho := Window{
		DateFrom: window.FromDate(),
		DateTo:   window.ToDate(),
		Timezone: window.Timezone,
	}

	return Insights{
		Title:           s.pageTitle,
		Place:           place,
		Window:          windowEcho,
		SuggestedRadius: suggestion,
		Metrics: MetricsPanel{
			Lat:             place.Lat,
			Lon:             place.Lon,
			Radius:          suggestion.Radius,
			RadiusUnit:      suggestion.Unit,
			DateFrom:        windowEcho.DateFrom,
			DateTo:          windowEcho.DateTo,
			SuggestedRadius: suggestion,
			Timezone:        window.Timezone,
		},
		Map: MapPanel{
			Lat:          place.Lat,
			Lon:          place.Lon,
			RadiusMeters: domain.ToMeters(suggestion.Radius, suggestion.Unit),
		},
		Summary: summarize(events),
		Events:  rows,
	}, nil
}

// summarize totals demand figures from raw records; absent optionals count
// as zero.
func summarize(events []domain.EventRecord) Summary {
	s := Summary{EventCount: len(events)}
	for _, e := range events {
		if e.PHQAttendance != nil {
			s.TotalAttendance += *e.PHQAttendance
		}
		if e.PredictedEventSpend != nil {
			s.TotalPredictedSpend += *e.PredictedEventSpend
		}
	}
	return s
}

func (s *Service) publishAudit(ctx context.Context, result Insights) {
	if s.publisher == nil {
		return
	}
	record := domain.LookupRecord{
		PlaceID:         result.Place.ID,
		PlaceName:       result.Place.Name,
		Lat:             result.Place.Lat,
		Lon:             result.Place.Lon,
		Radius:          result.SuggestedRadius.Radius,
		RadiusUnit:      result.SuggestedRadius.Unit,
		DateFrom:        result.Window.DateFrom,
		DateTo:          result.Window.DateTo,
		EventCount:      result.Summary.EventCount,
		TotalAttendance: result.Summary.TotalAttendance,
		LookedUpAt:      time.Now().UTC(),
	}
	if err := s.publisher.PublishLookup(ctx, record); err != nil {
		s.logger.Warn("lookup audit publish failed", "place_id", record.PlaceID, "error", err)
	}
}

// CheckReadiness reports whether the service can take lookups.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.places == nil || s.radius == nil || s.events == nil {
		return errors.New("providers not wired")
	}
	return nil
}
