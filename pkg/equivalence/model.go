package equivalence

import "github.com/ja7ad/inclinepace/pkg/types"

// Input bounds enforced by Input.Validate.
const (
	MinPace    = 2.0  // min per unit
	MaxPace    = 15.0 // min per unit
	MaxIncline = 15.0 // percent
)

// Config holds the ACSM running equation coefficients and the default table range.
// Units:
//   - RestingVO2: mL/kg/min
//   - HorizontalCost: mL/kg/min per m/min
//   - VerticalCost: mL/kg/min per m/min of vertical rise (multiplied by grade)
//   - FromIncline/ToIncline: integer percent, inclusive
type Config struct {
	RestingVO2     float64
	HorizontalCost float64
	VerticalCost   float64
	FromIncline    int
	ToIncline      int
}

// _defaultConfig returns the standard ACSM running coefficients and the 1..10% table.
func _defaultConfig() *Config {
	return &Config{
		RestingVO2:     3.5, // mL/kg/min
		HorizontalCost: 0.2,
		VerticalCost:   0.9,
		FromIncline:    1,
		ToIncline:      10,
	}
}

// Input is the reference condition supplied by the user.
type Input struct {
	Pace    float64 // minutes per Unit distance
	Incline float64 // percent
	Unit    types.Unit
}

// Reference is the evaluated reference condition.
type Reference struct {
	Unit         types.Unit
	Incline      float64
	Speed        float64 // display unit per hour
	SpeedKmh     float64
	SpeedMPerMin float64
	VO2          float64 // mL/kg/min
	Pace         string  // M:SS per display unit
}

// Row is one line of the equivalence table.
type Row struct {
	Incline int     `json:"incline_percent"`
	Speed   float64 `json:"speed"`
	Pace    string  `json:"pace"`
}

// Result bundles a reference and its equivalence table.
type Result struct {
	Reference Reference
	Rows      []Row
}
