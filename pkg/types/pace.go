package types

import (
	"fmt"
	"math"
)

// Pace is a duration per distance unit, in (fractional) minutes.
type Pace float64

// PaceOf returns the pace for a speed given in distance-units/hour.
// Zero, negative and non-finite speeds yield an invalid pace.
func PaceOf(speed float64) Pace {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return Pace(math.NaN())
	}
	return Pace(60 / speed)
}

// Valid reports whether p is a finite, positive pace.
func (p Pace) Valid() bool {
	v := float64(p)
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Split returns whole minutes and rounded seconds. Seconds that round up to 60
// carry into the minutes, so the result is always in [0, 59].
func (p Pace) Split() (minutes, seconds int) {
	total := int(math.Round(float64(p) * 60))
	return total / 60, total % 60
}

// Humanized returns the "M:SS" form, or "--:--" for an invalid pace.
func (p Pace) Humanized() string {
	if !p.Valid() {
		return "--:--"
	}
	m, s := p.Split()
	return fmt.Sprintf("%d:%02d", m, s)
}

// Speed returns the speed in distance-units/hour.
func (p Pace) Speed() float64 {
	if !p.Valid() {
		return 0
	}
	return 60 / float64(p)
}
