package utils

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidRange is returned when check-out is not after check-in.
var ErrInvalidRange = errors.New("check-out must be after check-in")

// NormalizeDate truncates t to midnight UTC, discarding the time-of-day and
// location components. Every stored or compared date goes through this, so the
// same calendar date always names the same instant regardless of the offset
// the client sent it with.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights returns ceil((checkOut - checkIn) / 1 day) after both inputs are
// truncated to the date component. Fails with ErrInvalidRange when the result
// would be zero or negative.
func Nights(checkIn, checkOut time.Time) (int, error) {
	in := NormalizeDate(checkIn)
	out := NormalizeDate(checkOut)
	n := int(math.Ceil(out.Sub(in).Hours() / 24))
	if n <= 0 {
		return 0, ErrInvalidRange
	}
	return n, nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. A checkout on day X and a check-in on day X are
// back-to-back, not overlapping.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ParseDate accepts "2006-01-02" or RFC3339 and returns the calendar date as
// midnight UTC. For RFC3339 inputs the date is taken in the input's own
// offset, then canonicalized.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return NormalizeDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

// Round2 rounds to currency-cent precision using half-up rounding.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
