// Package domain models PredictHQ events-intelligence data and the derived
// rows shown on the Location Insights dashboard.
//
// # Data Source
//
// Event records come from the PredictHQ /v1/events search API. Each record
// carries UTC start/end instants plus the IANA timezone of the venue, so
// local display times are derived per record, not per query.
//
// # Category Groups
//
// PredictHQ splits categories into three groups:
//
//	attended:     a public audience gathers (concerts, sports, expos, ...)
//	non-attended: calendar observances with no crowd (public holidays, ...)
//	unscheduled:  incident-style events (severe weather, disasters, ...)
//
// The insights pipeline queries the attended group only; footfall estimates
// are meaningless for the other two. See [AttendedCategories].
//
// # Optional Fields
//
// Most enrichment fields are optional on the wire: attendance, predicted end,
// geo/placekey, spend predictions, and the venue entity may all be absent.
// Absence is normal and degrades to a zero or empty-string placeholder in the
// output row. Title and category are mandatory; a record missing either is a
// data-contract violation and fails the whole batch rather than being
// silently dropped. See [FormatEvents].
//
// # Search Window
//
// The lookup window is always [today, today+90 days] anchored in UTC,
// regardless of the venue's local timezone. That is a product decision
// carried over from the original dashboard, not a timezone bug. See
// [NewSearchWindow].
package domain
