package util

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ErrBadRange indicates a malformed incline list such as "3..", "a" or "5..2".
var ErrBadRange = errors.New("util: bad incline range")

func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

// FmtFloat formats v with two decimals; non-finite values become "NaN".
func FmtFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ParseInclines parses a comma separated list of integer inclines and
// inclusive ranges, e.g. "1..10" or "0,2..4,8", each within [0, limit].
// The result is sorted ascending without duplicates.
func ParseInclines(s string, limit int) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "..")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadRange, part)
		}
		to := from
		if isRange {
			to, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadRange, part)
			}
		}
		if from < 0 || to < from {
			return nil, fmt.Errorf("%w: %q", ErrBadRange, part)
		}
		if to > limit {
			return nil, fmt.Errorf("%w: %q exceeds %d", ErrBadRange, part, limit)
		}
		for i := from; i <= to; i++ {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadRange)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
