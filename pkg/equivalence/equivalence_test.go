package equivalence

import (
	"fmt"
	"math"
	"testing"

	"github.com/ja7ad/inclinepace/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expect recomputes the reference VO2 straight from the ACSM equation.
func expect(pace, incline float64, unit types.Unit) (kmh, vo2 float64) {
	speed := 60 / pace
	kmh = speed
	if unit == types.Imperial {
		kmh = speed * 1.60934
	}
	v := kmh * 1000 / 60
	vo2 = 3.5 + 0.2*v + 0.9*v*(incline/100)
	return kmh, vo2
}

func parsePace(t *testing.T, s string) float64 {
	t.Helper()
	var m, sec int
	_, err := fmt.Sscanf(s, "%d:%d", &m, &sec)
	require.NoError(t, err, "pace %q", s)
	require.Less(t, sec, 60, "pace %q", s)
	return float64(m) + float64(sec)/60
}

func TestReference_MetricScenario(t *testing.T) {
	ref := New(nil).Reference(Input{Pace: 5.0, Incline: 1.5, Unit: types.Metric})

	assert.InDelta(t, 12.0, ref.Speed, 1e-12)
	assert.InDelta(t, 12.0, ref.SpeedKmh, 1e-12)
	assert.InDelta(t, 200.0, ref.SpeedMPerMin, 1e-9)
	assert.InDelta(t, 46.2, ref.VO2, 1e-9)
	assert.Equal(t, "5:00", ref.Pace)

	rows := GenerateTable(ref.VO2, types.Metric)
	require.Len(t, rows, 10)
	assert.Equal(t, 1, rows[0].Incline)
	assert.InDelta(t, 12.2584, rows[0].Speed, 1e-3)
	assert.Equal(t, "4:54", rows[0].Pace)
	assert.InDelta(t, 8.8345, rows[9].Speed, 1e-3)

	t.Logf("# incline | speed (km/h) | pace")
	for _, r := range rows {
		t.Logf("%9d | %12.2f | %s", r.Incline, r.Speed, r.Pace)
	}
}

func TestReference_ImperialScenario(t *testing.T) {
	c := New(nil)
	ref := c.Reference(Input{Pace: 8.0, Incline: 0, Unit: types.Imperial})

	// Speed comes first: 60/pace in mph, then km/h. 8:00/mi is 7.50 mph (12.07 km/h),
	// and the cost is computed from that metric speed.
	expKmh, expVO2 := expect(8.0, 0, types.Imperial)
	assert.InDelta(t, 7.5, ref.Speed, 1e-12, "display speed is mph")
	assert.InDelta(t, expKmh, ref.SpeedKmh, 1e-9)
	assert.InDelta(t, 12.07005, ref.SpeedKmh, 1e-5)
	assert.InDelta(t, expVO2, ref.VO2, 1e-9)
	assert.Equal(t, "8:00", ref.Pace)

	// The same effort expressed as a metric pace gives the same cost.
	metric := c.Reference(Input{Pace: 8.0 / types.KmPerMile, Incline: 0, Unit: types.Metric})
	assert.InDelta(t, ref.VO2, metric.VO2, 1e-9)

	// Imperial rows are the metric rows converted to mph.
	mi := GenerateTable(ref.VO2, types.Imperial)
	km := GenerateTable(ref.VO2, types.Metric)
	require.Len(t, mi, len(km))
	for i := range km {
		assert.Equal(t, km[i].Incline, mi[i].Incline)
		assert.InDelta(t, km[i].Speed/types.KmPerMile, mi[i].Speed, 1e-12, "row %d", i)
	}
	assert.InDelta(t, 7.1771, mi[0].Speed, 1e-3)
}

func TestReference_MatchesExpect(t *testing.T) {
	c := New(nil)
	for _, unit := range []types.Unit{types.Metric, types.Imperial} {
		for pace := MinPace; pace <= MaxPace; pace += 0.7 {
			for incline := 0.0; incline <= MaxIncline; incline += 1.3 {
				ref := c.Reference(Input{Pace: pace, Incline: incline, Unit: unit})
				kmh, vo2 := expect(pace, incline, unit)
				require.InDelta(t, kmh, ref.SpeedKmh, 1e-9, "%s pace=%.1f incline=%.1f", unit, pace, incline)
				require.InDelta(t, vo2, ref.VO2, 1e-9, "%s pace=%.1f incline=%.1f", unit, pace, incline)
			}
		}
	}
}

func TestPaceRoundTrip(t *testing.T) {
	for p := MinPace; p <= MaxPace; p += 0.013 {
		got := parsePace(t, PaceFromSpeed(SpeedFromPace(p)))
		require.LessOrEqual(t, math.Abs(got-p)*60, 0.5+1e-9, "pace %.4f", p)
	}
}

func TestInverseLaw(t *testing.T) {
	for kmh := 4.0; kmh <= 30; kmh += 0.5 {
		for incline := 0.0; incline <= MaxIncline; incline += 0.5 {
			vo2 := VO2Cost(KmhToMPerMin(kmh), incline)
			require.InDelta(t, kmh, EquivalentSpeed(vo2, incline), 1e-9, "kmh=%.1f incline=%.1f", kmh, incline)
		}
	}
}

func TestEquivalentSpeed_StrictlyDecreasing(t *testing.T) {
	for _, vo2 := range []float64{20, 35, 46.2, 60, 80} {
		prev := EquivalentSpeed(vo2, 0)
		for i := 1; i <= 15; i++ {
			cur := EquivalentSpeed(vo2, float64(i))
			require.Less(t, cur, prev, "vo2=%.1f incline=%d", vo2, i)
			prev = cur
		}
	}
}

func TestEquivalentSpeed_ZeroInclineIsFlatRelation(t *testing.T) {
	// At 0% the incline term vanishes: v = (VO2 - 3.5) / 0.2.
	assert.InDelta(t, (46.2-3.5)/0.2*60/1000, EquivalentSpeed(46.2, 0), 1e-12)
}

func TestEquivalentSpeed_DegenerateDenominator(t *testing.T) {
	assert.True(t, math.IsNaN(EquivalentSpeed(46.2, -25)))
	assert.True(t, math.IsNaN(EquivalentSpeed(46.2, -50)))
	assert.Equal(t, "--:--", PaceFromSpeed(EquivalentSpeed(46.2, -50)))
}

func TestSpeedFromPace_Guard(t *testing.T) {
	assert.Equal(t, 0.0, SpeedFromPace(0))
	assert.Equal(t, 0.0, SpeedFromPace(-5))
	assert.InDelta(t, 12.0, SpeedFromPace(5), 1e-12)
	assert.Equal(t, "--:--", PaceFromSpeed(SpeedFromPace(0)))
}

func TestGenerateTable_Completeness(t *testing.T) {
	for _, vo2 := range []float64{15, 46.2, 70} {
		rows := GenerateTable(vo2, types.Metric)
		require.Len(t, rows, 10)
		seen := map[int]bool{}
		for i, r := range rows {
			assert.Equal(t, i+1, r.Incline)
			assert.False(t, seen[r.Incline], "duplicate incline %d", r.Incline)
			seen[r.Incline] = true
		}
		assert.Equal(t, rows, GenerateTable(vo2, types.Metric), "table must be restartable")
	}
}

func TestNew_Overrides(t *testing.T) {
	t.Run("nil_uses_defaults", func(t *testing.T) {
		assert.Equal(t, *_defaultConfig(), New(nil).Config())
	})
	t.Run("non_positive_ignored", func(t *testing.T) {
		cfg := New(&Config{RestingVO2: -1, HorizontalCost: 0, VerticalCost: -0.9}).Config()
		assert.Equal(t, *_defaultConfig(), cfg)
	})
	t.Run("coefficients", func(t *testing.T) {
		c := New(&Config{RestingVO2: 3.0, HorizontalCost: 0.25, VerticalCost: 1.0})
		assert.InDelta(t, 3.0+0.25*200+1.0*200*0.05, c.VO2Cost(200, 5), 1e-12)
		assert.InDelta(t, 12.0, c.EquivalentSpeed(c.VO2Cost(200, 5), 5), 1e-9)
	})
	t.Run("range_from_zero", func(t *testing.T) {
		c := New(&Config{FromIncline: 0, ToIncline: 15})
		rows := c.Table(46.2, types.Metric)
		require.Len(t, rows, 16)
		assert.Equal(t, 0, rows[0].Incline)
		assert.Equal(t, 15, rows[15].Incline)
	})
	t.Run("range_inverted_collapses", func(t *testing.T) {
		rows := New(&Config{FromIncline: 5, ToIncline: 3}).Table(46.2, types.Metric)
		require.Len(t, rows, 1)
		assert.Equal(t, 5, rows[0].Incline)
	})
	t.Run("range_needs_to", func(t *testing.T) {
		cfg := New(&Config{FromIncline: 4}).Config()
		assert.Equal(t, 1, cfg.FromIncline)
		assert.Equal(t, 10, cfg.ToIncline)
	})
	t.Run("range_capped", func(t *testing.T) {
		c := New(&Config{FromIncline: 0, ToIncline: 2000000000})
		assert.Equal(t, int(MaxIncline), c.Config().ToIncline)
		rows := c.Table(46.2, types.Metric)
		require.Len(t, rows, int(MaxIncline)+1)
		assert.Equal(t, int(MaxIncline), rows[len(rows)-1].Incline)
	})
	t.Run("range_above_cap_collapses", func(t *testing.T) {
		cfg := New(&Config{FromIncline: 90, ToIncline: 99}).Config()
		assert.Equal(t, int(MaxIncline), cfg.FromIncline)
		assert.Equal(t, int(MaxIncline), cfg.ToIncline)
	})
}

func TestTableFor_KeepsOrder(t *testing.T) {
	rows := New(nil).TableFor(46.2, types.Metric, []int{0, 8, 3})
	require.Len(t, rows, 3)
	assert.Equal(t, []int{0, 8, 3}, []int{rows[0].Incline, rows[1].Incline, rows[2].Incline})
	assert.InDelta(t, EquivalentSpeed(46.2, 8), rows[1].Speed, 1e-12)
}

func TestInput_Validate(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want error
	}{
		{"ok_defaults", Input{Pace: 5, Incline: 1.5}, nil},
		{"ok_bounds_low", Input{Pace: MinPace, Incline: 0}, nil},
		{"ok_bounds_high", Input{Pace: MaxPace, Incline: MaxIncline, Unit: types.Imperial}, nil},
		{"zero_pace", Input{Pace: 0, Incline: 1}, ErrNonPositivePace},
		{"negative_pace", Input{Pace: -4, Incline: 1}, ErrNonPositivePace},
		{"nan_pace", Input{Pace: math.NaN(), Incline: 1}, ErrNonPositivePace},
		{"negative_incline", Input{Pace: 5, Incline: -0.1}, ErrNegativeIncline},
		{"nan_incline", Input{Pace: 5, Incline: math.NaN()}, ErrInclineOutOfRange},
		{"pace_too_fast", Input{Pace: 1.9, Incline: 1}, ErrPaceOutOfRange},
		{"pace_too_slow", Input{Pace: 15.1, Incline: 1}, ErrPaceOutOfRange},
		{"incline_too_steep", Input{Pace: 5, Incline: 15.5}, ErrInclineOutOfRange},
		{"bad_unit", Input{Pace: 5, Incline: 1, Unit: types.Unit(7)}, ErrUnknownUnit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEvaluate(t *testing.T) {
	c := New(nil)

	res, err := c.Evaluate(Input{Pace: 5, Incline: 1.5, Unit: types.Metric})
	require.NoError(t, err)
	assert.InDelta(t, 46.2, res.Reference.VO2, 1e-9)
	require.Len(t, res.Rows, 10)
	assert.Equal(t, "4:54", res.Rows[0].Pace)

	_, err = c.Evaluate(Input{Pace: 0, Incline: 1.5})
	require.ErrorIs(t, err, ErrNonPositivePace)
}

func ExampleGenerateTable() {
	ref := New(nil).Reference(Input{Pace: 5, Incline: 1.5, Unit: types.Metric})
	fmt.Printf("%.2f km/h %s VO2=%.1f\n", ref.Speed, ref.Pace, ref.VO2)
	for _, r := range GenerateTable(ref.VO2, types.Metric)[:2] {
		fmt.Printf("%d%% %.2f %s\n", r.Incline, r.Speed, r.Pace)
	}
	// Output:
	// 12.00 km/h 5:00 VO2=46.2
	// 1% 12.26 4:54
	// 2% 11.75 5:06
}
