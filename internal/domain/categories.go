package domain

// PredictHQ category groups. The insights pipeline queries the attended group
// only; the other two are listed for completeness of the provider contract.
var (
	// AttendedCategories are categories where a public audience gathers.
	AttendedCategories = []string{
		"community",
		"concerts",
		"conferences",
		"expos",
		"festivals",
		"performing-arts",
		"sports",
	}

	// NonAttendedCategories are calendar observances with no crowd.
	NonAttendedCategories = []string{
		"academic",
		"daylight-savings",
		"observances",
		"politics",
		"public-holidays",
		"school-holidays",
	}

	// UnscheduledCategories are incident-style events with no fixed schedule.
	UnscheduledCategories = []string{
		"airport-delays",
		"disasters",
		"health-warnings",
		"severe-weather",
		"terror",
	}
)

// DefaultIndustry is the suggested-radius industry used when none is
// configured. "Fall back" means "use when absent", never "use instead of a
// present value".
const DefaultIndustry = "accommodation"
