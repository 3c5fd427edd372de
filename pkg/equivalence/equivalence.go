package equivalence

import (
	"fmt"
	"math"

	"github.com/ja7ad/inclinepace/pkg/types"
	"github.com/ja7ad/inclinepace/pkg/util"
)

// Calculator evaluates the ACSM running equation with a fixed set of coefficients.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	cfg *Config
}

var _default = New(nil)

// New creates a calculator with the given config.
// Fields > 0 in cfg override defaults.
// Notes:
//   - The table range is taken as a pair: it overrides only when ToIncline > 0
//     and FromIncline >= 0.
//   - The range is capped at MaxIncline.
//   - ToIncline < FromIncline collapses the range to the single row FromIncline.
func New(cfg *Config) *Calculator {
	base := _defaultConfig()

	if cfg == nil {
		return &Calculator{cfg: base}
	}

	merged := *base

	if cfg.RestingVO2 > 0 {
		merged.RestingVO2 = cfg.RestingVO2
	}
	if cfg.HorizontalCost > 0 {
		merged.HorizontalCost = cfg.HorizontalCost
	}
	if cfg.VerticalCost > 0 {
		merged.VerticalCost = cfg.VerticalCost
	}

	if cfg.ToIncline > 0 && cfg.FromIncline >= 0 {
		merged.FromIncline = cfg.FromIncline
		merged.ToIncline = cfg.ToIncline
	}
	if merged.FromIncline > int(MaxIncline) {
		merged.FromIncline = int(MaxIncline)
	}
	if merged.ToIncline > int(MaxIncline) {
		merged.ToIncline = int(MaxIncline)
	}
	if merged.ToIncline < merged.FromIncline {
		merged.ToIncline = merged.FromIncline
	}

	return &Calculator{cfg: &merged}
}

// Config returns a copy of the effective coefficients.
func (c *Calculator) Config() Config { return *c.cfg }

// VO2Cost returns the oxygen cost (mL/kg/min) of running at speedMPerMin (m/min)
// on the given incline (percent):
//
//	VO2 = R + H*v + V*v*(incline/100)
func (c *Calculator) VO2Cost(speedMPerMin, incline float64) float64 {
	return c.cfg.RestingVO2 +
		c.cfg.HorizontalCost*speedMPerMin +
		c.cfg.VerticalCost*speedMPerMin*(incline/100)
}

// EquivalentSpeed solves VO2Cost for speed and returns km/h. The result is NaN
// when the incline term makes the denominator non-positive (steep negative grades).
func (c *Calculator) EquivalentSpeed(vo2Ref, incline float64) float64 {
	denom := c.cfg.HorizontalCost + c.cfg.VerticalCost*(incline/100)
	if denom <= 0 {
		return math.NaN()
	}
	return MPerMinToKmh((vo2Ref - c.cfg.RestingVO2) / denom)
}

// Reference evaluates the reference condition. in is not validated; call
// Input.Validate first when it comes from a user.
func (c *Calculator) Reference(in Input) Reference {
	speed := SpeedFromPace(in.Pace)
	kmh := in.Unit.ToMetric(speed)
	mpm := KmhToMPerMin(kmh)

	return Reference{
		Unit:         in.Unit,
		Incline:      in.Incline,
		Speed:        speed,
		SpeedKmh:     kmh,
		SpeedMPerMin: mpm,
		VO2:          c.VO2Cost(mpm, in.Incline),
		Pace:         PaceFromSpeed(speed),
	}
}

// Table returns one row per integer incline of the configured range, ascending.
func (c *Calculator) Table(vo2Ref float64, unit types.Unit) []Row {
	inclines := make([]int, 0, c.cfg.ToIncline-c.cfg.FromIncline+1)
	for i := c.cfg.FromIncline; i <= c.cfg.ToIncline; i++ {
		inclines = append(inclines, i)
	}
	return c.TableFor(vo2Ref, unit, inclines)
}

// TableFor returns one row per given incline, in the given order.
func (c *Calculator) TableFor(vo2Ref float64, unit types.Unit, inclines []int) []Row {
	rows := make([]Row, 0, len(inclines))
	for _, i := range inclines {
		speed := unit.FromMetric(c.EquivalentSpeed(vo2Ref, float64(i)))
		rows = append(rows, Row{
			Incline: i,
			Speed:   speed,
			Pace:    PaceFromSpeed(speed),
		})
	}
	return rows
}

// Evaluate validates in, then computes the reference and its table.
func (c *Calculator) Evaluate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	ref := c.Reference(in)
	return Result{Reference: ref, Rows: c.Table(ref.VO2, in.Unit)}, nil
}

// Validate checks in against the domain of the model and the input bounds.
func (in Input) Validate() error {
	switch {
	case !(in.Pace > 0):
		return fmt.Errorf("%w: got %v", ErrNonPositivePace, in.Pace)
	case in.Incline < 0:
		return fmt.Errorf("%w: got %v", ErrNegativeIncline, in.Incline)
	case math.IsNaN(in.Incline):
		return fmt.Errorf("%w: got %v", ErrInclineOutOfRange, in.Incline)
	case in.Pace < MinPace || in.Pace > MaxPace:
		return fmt.Errorf("%w: %.2f not in [%.1f, %.1f]", ErrPaceOutOfRange, in.Pace, MinPace, MaxPace)
	case in.Incline > MaxIncline:
		return fmt.Errorf("%w: %.2f not in [0, %.1f]", ErrInclineOutOfRange, in.Incline, MaxIncline)
	case in.Unit != types.Metric && in.Unit != types.Imperial:
		return fmt.Errorf("%w: %d", ErrUnknownUnit, in.Unit)
	}
	return nil
}

// SpeedFromPace converts minutes per unit to units per hour. Pace <= 0 yields 0.
func SpeedFromPace(pace float64) float64 {
	if pace <= 0 {
		return 0
	}
	return util.SafeDiv(60, pace)
}

// PaceFromSpeed formats the pace for speed (units per hour) as "M:SS".
func PaceFromSpeed(speed float64) string {
	return types.PaceOf(speed).Humanized()
}

// VO2Cost is Calculator.VO2Cost with the standard ACSM coefficients.
func VO2Cost(speedMPerMin, incline float64) float64 {
	return _default.VO2Cost(speedMPerMin, incline)
}

// EquivalentSpeed is Calculator.EquivalentSpeed with the standard ACSM coefficients.
func EquivalentSpeed(vo2Ref, incline float64) float64 {
	return _default.EquivalentSpeed(vo2Ref, incline)
}

// GenerateTable returns the 1..10% equivalence table for vo2Ref in unit.
func GenerateTable(vo2Ref float64, unit types.Unit) []Row {
	return _default.Table(vo2Ref, unit)
}

// KmhToMPerMin converts km/h to m/min.
func KmhToMPerMin(kmh float64) float64 { return kmh * 1000 / 60 }

// MPerMinToKmh converts m/min to km/h.
func MPerMinToKmh(mpm float64) float64 { return mpm * 60 / 1000 }
