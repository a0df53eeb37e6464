package ports

import "time"

// Ephemeris turns an instant into the moon's ecliptic longitude
type Ephemeris interface {
	// Name identifies the strategy in responses and survey reports
	Name() string

	// Longitude returns degrees in [0, 360)
	Longitude(at time.Time) float64
}
