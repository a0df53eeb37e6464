// Package ephemeris holds the date-to-longitude strategies. Exactly one is
// active per process; their results differ and are never blended.
package ephemeris

import (
	"fmt"

	"sukuyo/ports"
)

// Strategy names as accepted by New and the EPHEMERIS setting
const (
	StrategyMeeus  = "meeus"
	StrategyLinear = "linear"
)

// New returns the named strategy
func New(name string) (ports.Ephemeris, error) {
	switch name {
	case StrategyMeeus, "":
		return NewMeeus(), nil
	case StrategyLinear:
		return NewLinear(), nil
	default:
		return nil, fmt.Errorf("unknown ephemeris strategy %q", name)
	}
}
