package domain

import "time"

// windowDays is the fixed lookahead of the insights window.
const windowDays = 90

// dateLayout is the wire format for calendar dates in provider queries and
// payloads.
const dateLayout = "2006-01-02"

// SearchWindow is the date range and timezone for one events lookup.
// Derived deterministically from the current date; recomputed per lookup,
// never mutated.
type SearchWindow struct {
	DateFrom time.Time `json:"-"`
	DateTo   time.Time `json:"-"`
	Timezone string    `json:"timezone"`
}

// NewSearchWindow returns [today, today+90 days] anchored in UTC. The anchor
// is UTC regardless of venue-local time; behavior at venue-local midnight
// near the edges follows the UTC date.
func NewSearchWindow() SearchWindow {
	now := clock.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return SearchWindow{
		DateFrom: from,
		DateTo:   from.AddDate(0, 0, windowDays),
		Timezone: "UTC",
	}
}

// FromDate returns the window start as a calendar date string.
func (w SearchWindow) FromDate() string {
	return w.DateFrom.Format(dateLayout)
}

// ToDate returns the window end as a calendar date string.
func (w SearchWindow) ToDate() string {
	return w.DateTo.Format(dateLayout)
}
