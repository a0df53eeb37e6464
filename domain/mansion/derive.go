package mansion

import "math"

// Triple is the classification derived from one longitude. It is a value:
// computed per request and never mutated.
type Triple struct {
	Primary   int     `json:"primary"`
	Karma     int     `json:"karma"`
	Origin    int     `json:"origin"`
	Longitude float64 `json:"longitude"`
	Phase     Phase   `json:"phase"`
	MoonAge   float64 `json:"moon_age"`
}

// Normalize reduces a longitude in degrees into [0, 360).
func Normalize(longitude float64) float64 {
	l := math.Mod(longitude, 360)
	if l < 0 {
		l += 360
	}
	// -1e-15 + 360 rounds to 360
	if l >= 360 || l == 0 {
		return 0
	}
	return l
}

// PrimaryIndex buckets a longitude into one of the 28 equal-width mansions.
func PrimaryIndex(longitude float64) int {
	idx := int(math.Floor(Normalize(longitude) / Width))
	if idx >= CycleLength {
		idx = CycleLength - 1
	}
	return idx
}

// KarmaIndex is the mansion nine places after the primary.
func KarmaIndex(primary int) int {
	return Mod(primary + KarmaOffset)
}

// OriginIndex is the mansion three places before the primary.
func OriginIndex(primary int) int {
	return Mod(primary + OriginOffset)
}

// Derive computes the index triple for a longitude. The phase fields are
// left zero; see DeriveAt.
func Derive(longitude float64) Triple {
	primary := PrimaryIndex(longitude)
	return Triple{
		Primary:   primary,
		Karma:     KarmaIndex(primary),
		Origin:    OriginIndex(primary),
		Longitude: Normalize(longitude),
	}
}

// PrimaryMansion returns the named primary mansion.
func (t Triple) PrimaryMansion() Mansion { return At(t.Primary) }

// KarmaMansion returns the named karma mansion.
func (t Triple) KarmaMansion() Mansion { return At(t.Karma) }

// OriginMansion returns the named origin mansion.
func (t Triple) OriginMansion() Mansion { return At(t.Origin) }
