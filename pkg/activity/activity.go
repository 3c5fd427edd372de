// Package activity derives a reference pace from a recorded treadmill run.
package activity

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tormoder/fit"

	"github.com/ja7ad/inclinepace/pkg/types"
)

var (
	// ErrNoSession indicates an activity file without a session summary.
	ErrNoSession = errors.New("activity: no session in activity")

	// ErrNoSpeed indicates a session without a usable average speed.
	ErrNoSpeed = errors.New("activity: session has no average speed")
)

// Summary is the part of a recorded session used as a reference.
type Summary struct {
	SpeedKmh    float64 // average speed
	DistanceKm  float64
	TimerMinute float64 // moving time
}

// Pace returns the average pace in unit.
func (s Summary) Pace(unit types.Unit) float64 {
	return float64(types.PaceOf(unit.FromMetric(s.SpeedKmh)))
}

// ReadFile decodes the FIT file at path.
func ReadFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Summary{}, err
	}
	return Decode(data)
}

// Decode reads the first session of a FIT activity.
func Decode(data []byte) (Summary, error) {
	fitFile, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return Summary{}, fmt.Errorf("failed to decode FIT file: %w", err)
	}

	act, err := fitFile.Activity()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get activity from FIT: %w", err)
	}
	if len(act.Sessions) == 0 {
		return Summary{}, ErrNoSession
	}
	return fromSession(act.Sessions[0])
}

func fromSession(s *fit.SessionMsg) (Summary, error) {
	if s == nil {
		return Summary{}, ErrNoSession
	}

	// m/s; the enhanced field supersedes the 16-bit one when present
	mps := s.GetEnhancedAvgSpeedScaled()
	if !usable(mps) {
		mps = s.GetAvgSpeedScaled()
	}
	if !usable(mps) {
		return Summary{}, ErrNoSpeed
	}

	sum := Summary{SpeedKmh: mps * 3.6}
	if d := s.GetTotalDistanceScaled(); usable(d) {
		sum.DistanceKm = d / 1000
	}
	if t := s.GetTotalTimerTimeScaled(); usable(t) {
		sum.TimerMinute = t / 60
	}
	return sum, nil
}

func usable(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
