package domain

import (
	"context"
	"time"
)

// EventRecord is the raw PredictHQ event shape, read-only. Optional wire
// fields are pointers so "absent" and "zero" stay distinguishable; the
// optional-field contract is resolved once in [FormatEvents], not scattered
// across render sites.
type EventRecord struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Category      string  `json:"category"`
	PHQAttendance *int    `json:"phq_attendance"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	PredictedEnd  *string `json:"predicted_end,omitempty"`
	Timezone      string  `json:"timezone"`

	Entities []Entity  `json:"entities,omitempty"`
	Geo      *EventGeo `json:"geo,omitempty"`

	PredictedEventSpend           *float64         `json:"predicted_event_spend,omitempty"`
	PredictedEventSpendIndustries *SpendIndustries `json:"predicted_event_spend_industries,omitempty"`
}

// Entity is a typed sub-record attached to an event. At most one entity of
// type "venue" is meaningful per event.
type Entity struct {
	Type             string `json:"type"`
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address,omitempty"`
}

// EntityTypeVenue marks the entity describing the event's physical location.
const EntityTypeVenue = "venue"

// EventGeo holds the event's geo enrichment. Placekey is an external
// standardized location identifier and may be absent even when geo is present.
type EventGeo struct {
	Placekey string `json:"placekey,omitempty"`
}

// SpendIndustries breaks predicted spend down by industry.
type SpendIndustries struct {
	Accommodation *float64 `json:"accommodation,omitempty"`
	Hospitality   *float64 `json:"hospitality,omitempty"`
	Transport     *float64 `json:"transportation,omitempty"`
}

// EventRow is the flattened, display-ready projection of one EventRecord.
// Fully derivable from its source record with no external state; missing
// optionals degrade to "" or 0, never to an error.
type EventRow struct {
	Title                     string `json:"title"`
	Attendance                int    `json:"attendance"`
	Category                  string `json:"category"`
	StartLocal                string `json:"start_local"`
	EndLocal                  string `json:"end_local"`
	PredictedEndLocal         string `json:"predicted_end_local"`
	VenueName                 string `json:"venue_name"`
	VenueAddress              string `json:"venue_address"`
	Placekey                  string `json:"placekey"`
	PredictedSpend            string `json:"predicted_event_spend"`
	PredictedSpendHospitality string `json:"predicted_event_spend_hospitality"`
}

// RadiusSuggestion is a recommended search radius for a coordinate and
// industry, in the unit the provider chose. Never mutated after creation;
// exact input tuples memoize to the same suggestion.
type RadiusSuggestion struct {
	Radius float64 `json:"radius"`
	Unit   string  `json:"radius_unit"`
}

// RadiusAdvisor asks an external heuristic service for a recommended search
// radius around a coordinate for a target industry.
type RadiusAdvisor interface {
	SuggestRadius(ctx context.Context, lat, lon float64, unit, industry string) (RadiusSuggestion, error)
}

// EventSearch parameterizes one events query.
type EventSearch struct {
	Lat        float64
	Lon        float64
	Radius     float64
	RadiusUnit string
	Window     SearchWindow
	Categories []string
}

// EventFinder retrieves events matching a search from the events provider.
// Result order is the provider's and is preserved downstream.
type EventFinder interface {
	SearchEvents(ctx context.Context, search EventSearch) ([]EventRecord, error)
}

// LookupRecord is the audit trail entry published after each completed
// insight lookup.
type LookupRecord struct {
	PlaceID         string    `json:"place_id"`
	PlaceName       string    `json:"place_name"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	Radius          float64   `json:"radius"`
	RadiusUnit      string    `json:"radius_unit"`
	DateFrom        string    `json:"date_from"`
	DateTo          string    `json:"date_to"`
	EventCount      int       `json:"event_count"`
	TotalAttendance int       `json:"total_attendance"`
	LookedUpAt      time.Time `json:"looked_up_at"`
}
