package types

import (
	"fmt"
	"strings"
)

// KmPerMile is the fixed km/mi conversion constant.
const KmPerMile = 1.60934

// Unit is the display unit chosen by the user. Computation is always metric.
type Unit uint8

const (
	Metric Unit = iota
	Imperial
)

// ParseUnit accepts "metric"/"km" and "imperial"/"mi" (case-insensitive).
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metric", "km", "kmh", "km/h":
		return Metric, nil
	case "imperial", "mi", "mph":
		return Imperial, nil
	default:
		return Metric, fmt.Errorf("unknown unit %q (want metric or imperial)", s)
	}
}

func (u Unit) String() string {
	if u == Imperial {
		return "imperial"
	}
	return "metric"
}

// Distance returns the distance label ("km" or "mi").
func (u Unit) Distance() string {
	if u == Imperial {
		return "mi"
	}
	return "km"
}

// SpeedLabel returns "km/h" or "mph".
func (u Unit) SpeedLabel() string {
	if u == Imperial {
		return "mph"
	}
	return "km/h"
}

// PaceLabel returns "min/km" or "min/mi".
func (u Unit) PaceLabel() string { return "min/" + u.Distance() }

// ToMetric converts a speed in this unit to km/h.
func (u Unit) ToMetric(speed float64) float64 {
	if u == Imperial {
		return MiToKm(speed)
	}
	return speed
}

// FromMetric converts a km/h speed to this unit.
func (u Unit) FromMetric(kmh float64) float64 {
	if u == Imperial {
		return KmToMi(kmh)
	}
	return kmh
}

// KmToMi converts kilometers (or km/h) to miles (or mph).
func KmToMi(km float64) float64 { return km / KmPerMile }

// MiToKm converts miles (or mph) to kilometers (or km/h).
func MiToKm(mi float64) float64 { return mi * KmPerMile }
