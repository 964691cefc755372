package domain

import "context"

// Place is a resolved physical location: coordinates plus a display name.
// Immutable once resolved; scoped to a single user interaction.
type Place struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// PlaceCandidate is one autocomplete suggestion for a partial address.
type PlaceCandidate struct {
	Label   string `json:"label"`
	PlaceID string `json:"place_id"`
}

// PlaceResolver turns free-text address input into candidates and resolves a
// selected candidate into a precise Place.
//
// The session token groups one user's incremental typing into a single
// billable autocomplete session. It is issued once per page visit and
// threaded through every call, never held as ambient process state.
type PlaceResolver interface {
	// Autocomplete returns ordered candidates for partial input. Empty input
	// yields an empty slice without a provider call.
	Autocomplete(ctx context.Context, text, sessionToken string) ([]PlaceCandidate, error)

	// Resolve fetches coordinates and canonical name for a candidate.
	Resolve(ctx context.Context, placeID, sessionToken string) (Place, error)
}
