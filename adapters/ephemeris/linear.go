package ephemeris

import (
	"time"

	"sukuyo/domain/mansion"
)

// DegreesPerDay advances the linear strategy one tropical year per turn.
const DegreesPerDay = 360.0 / 365.2422

// Linear is the day-of-year approximation: (day_of_year × DegreesPerDay) mod 360.
// It ignores the year entirely and does not track the real moon.
type Linear struct{}

// NewLinear returns the day-of-year approximation
func NewLinear() *Linear {
	return &Linear{}
}

func (l *Linear) Name() string { return StrategyLinear }

// Longitude uses the calendar day of the instant in its own location
func (l *Linear) Longitude(at time.Time) float64 {
	return mansion.Normalize(float64(at.YearDay()) * DegreesPerDay)
}
