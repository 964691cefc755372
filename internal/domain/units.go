package domain

// Radius units as the events provider reports them.
const (
	UnitMiles      = "mi"
	UnitFeet       = "ft"
	UnitKilometers = "km"
	UnitMeters     = "m"
)

// ToMeters converts a radius in the given unit to meters. The constants are
// the dashboard's historical ones and are preserved exactly; an unrecognized
// unit is treated as already meters. No rounding here — that belongs to the
// rendering sink.
func ToMeters(value float64, unit string) float64 {
	switch unit {
	case UnitMiles:
		return value * 1609
	case UnitFeet:
		return value * 0.3048
	case UnitKilometers:
		return value * 1000
	default:
		return value
	}
}
