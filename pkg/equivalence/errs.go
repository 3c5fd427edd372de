package equivalence

import "errors"

var (
	// ErrNonPositivePace indicates a pace <= 0 (or NaN); speed is undefined there.
	ErrNonPositivePace = errors.New("equivalence: pace must be > 0")

	// ErrNegativeIncline indicates an incline below 0%, outside the modeled domain.
	ErrNegativeIncline = errors.New("equivalence: incline must be >= 0")

	// ErrPaceOutOfRange indicates a pace outside [MinPace, MaxPace].
	ErrPaceOutOfRange = errors.New("equivalence: pace out of range")

	// ErrInclineOutOfRange indicates an incline above MaxIncline.
	ErrInclineOutOfRange = errors.New("equivalence: incline out of range")

	// ErrUnknownUnit indicates a unit value other than Metric or Imperial.
	ErrUnknownUnit = errors.New("equivalence: unknown unit")
)
