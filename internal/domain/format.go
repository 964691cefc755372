package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// displayTimeLayout is how local event times render in the table,
// e.g. "01-Jun-2024 16:00".
const displayTimeLayout = "02-Jan-2006 15:04"

// FormatEvents projects raw event records into display-ready rows, preserving
// source order. Start and end times are converted from UTC into each event's
// own timezone; conversion is per record, not per query.
//
// Optional fields degrade per the dashboard contract: absent attendance
// renders as 0, absent predicted end / venue / placekey / spend render as "".
// Title and category are mandatory; a record missing either fails the whole
// batch so upstream contract violations surface instead of events silently
// disappearing from the table.
func FormatEvents(events []EventRecord) ([]EventRow, error) {
	rows := make([]EventRow, 0, len(events))
	for i, event := range events {
		row, err := formatEvent(event)
		if err != nil {
			return nil, fmt.Errorf("format event %d (id %q): %w", i, event.ID, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func formatEvent(event EventRecord) (EventRow, error) {
	if event.Title == "" {
		return EventRow{}, errors.New("missing title")
	}
	if event.Category == "" {
		return EventRow{}, errors.New("missing category")
	}

	loc, err := time.LoadLocation(event.Timezone)
	if err != nil {
		return EventRow{}, fmt.Errorf("load timezone %q: %w", event.Timezone, err)
	}

	startLocal, err := toLocalDisplay(event.Start, loc)
	if err != nil {
		return EventRow{}, fmt.Errorf("start: %w", err)
	}
	endLocal, err := toLocalDisplay(event.End, loc)
	if err != nil {
		return EventRow{}, fmt.Errorf("end: %w", err)
	}

	// Predicted end is optional: absent renders as blank, never as a
	// default date.
	predictedEndLocal := ""
	if event.PredictedEnd != nil {
		predictedEndLocal, err = toLocalDisplay(*event.PredictedEnd, loc)
		if err != nil {
			return EventRow{}, fmt.Errorf("predicted end: %w", err)
		}
	}

	venueName, venueAddress := venueEntity(event.Entities)

	return EventRow{
		Title:                     event.Title,
		Attendance:                attendanceOrZero(event.PHQAttendance),
		Category:                  event.Category,
		StartLocal:                startLocal,
		EndLocal:                  endLocal,
		PredictedEndLocal:         predictedEndLocal,
		VenueName:                 venueName,
		VenueAddress:              venueAddress,
		Placekey:                  placekeyOrEmpty(event.Geo),
		PredictedSpend:            spendOrEmpty(event.PredictedEventSpend),
		PredictedSpendHospitality: spendOrEmpty(hospitalitySpend(event.PredictedEventSpendIndustries)),
	}, nil
}

// toLocalDisplay parses a UTC ISO-8601 instant and renders it in loc.
func toLocalDisplay(iso string, loc *time.Location) (string, error) {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return "", fmt.Errorf("parse time %q: %w", iso, err)
	}
	return t.In(loc).Format(displayTimeLayout), nil
}

// venueEntity returns name and address of the first entity of type "venue".
// Lookup follows source list order, first match wins; no venue yields two
// empty strings.
func venueEntity(entities []Entity) (string, string) {
	for _, e := range entities {
		if e.Type == EntityTypeVenue {
			return e.Name, e.FormattedAddress
		}
	}
	return "", ""
}

func attendanceOrZero(attendance *int) int {
	if attendance == nil {
		return 0
	}
	return *attendance
}

func placekeyOrEmpty(geo *EventGeo) string {
	if geo == nil {
		return ""
	}
	return geo.Placekey
}

// hospitalitySpend is a nested optional lookup: either the industries block
// or its hospitality figure may be absent independently.
func hospitalitySpend(industries *SpendIndustries) *float64 {
	if industries == nil {
		return nil
	}
	return industries.Hospitality
}

func spendOrEmpty(spend *float64) string {
	if spend == nil {
		return ""
	}
	return formatUSD(*spend)
}

// formatUSD renders a dollar amount as "$N,NNN": rounded to the nearest whole
// dollar (half away from zero), comma-grouped, no decimals.
func formatUSD(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	grouped := make([]byte, 0, len(digits)+len(digits)/3)
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, digits[i])
	}
	return sign + "$" + string(grouped)
}
