package ephemeris

import (
	"time"

	"sukuyo/domain/mansion"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
)

// Meeus computes the apparent geocentric longitude of the moon with the
// truncated ELP-2000/82 series (Meeus, Astronomical Algorithms, ch. 47).
// ΔT is ignored; at ~70s it moves the moon by under 0.04°.
type Meeus struct{}

// NewMeeus returns the series-based ephemeris
func NewMeeus() *Meeus {
	return &Meeus{}
}

func (m *Meeus) Name() string { return StrategyMeeus }

// Longitude returns the apparent lunar longitude at the given instant
func (m *Meeus) Longitude(at time.Time) float64 {
	return ApparentLongitude(julian.TimeToJD(at.UTC()))
}

// ApparentLongitude returns the moon's apparent longitude in degrees for a
// Julian Ephemeris Day: the mean-equinox position corrected for nutation.
func ApparentLongitude(jde float64) float64 {
	lon, _, _ := moonposition.Position(jde)
	dpsi, _ := nutation.Nutation(jde)
	return mansion.Normalize(lon.Deg() + dpsi.Deg())
}
