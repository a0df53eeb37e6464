package mansion

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// SynodicMonth is the mean length of a lunation in days.
const SynodicMonth = 29.53058867

// YangThreshold splits the lunation: ages below it are waxing (yang).
const YangThreshold = 14.7

// phaseEpoch is the reference new moon used by MoonAge.
var phaseEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// Phase is the binary yin/yang label of the moon's age.
type Phase int

const (
	Yang Phase = iota
	Yin
)

// String returns the short code used in JSON and logs.
func (p Phase) String() string {
	if p == Yin {
		return "yin"
	}
	return "yang"
}

// Label returns the Japanese display label.
func (p Phase) Label() string {
	if p == Yin {
		return "陰（収める力）"
	}
	return "陽（成りゆく力）"
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "yang":
		*p = Yang
	case "yin":
		*p = Yin
	default:
		return fmt.Errorf("unknown phase %q", s)
	}
	return nil
}

// MoonAge returns the mean lunar age in days at t, in [0, SynodicMonth).
func MoonAge(t time.Time) float64 {
	// Unix arithmetic instead of t.Sub: Duration saturates after ~292 years.
	secs := float64(t.Unix()-phaseEpoch.Unix()) + float64(t.Nanosecond())/1e9
	days := secs / 86400
	age := math.Mod(days, SynodicMonth)
	if age < 0 {
		age += SynodicMonth
	}
	return age
}

// PhaseOf classifies a moon age.
func PhaseOf(age float64) Phase {
	if age < YangThreshold {
		return Yang
	}
	return Yin
}

// DeriveAt computes the full triple, including the phase of the moon at t.
func DeriveAt(longitude float64, t time.Time) Triple {
	triple := Derive(longitude)
	triple.MoonAge = MoonAge(t)
	triple.Phase = PhaseOf(triple.MoonAge)
	return triple
}
