package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	t.Run("WholeDays", func(t *testing.T) {
		n, err := Nights(date(2024, 6, 10), date(2024, 6, 13))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("TimeOfDayDiscarded", func(t *testing.T) {
		in := time.Date(2024, 6, 10, 22, 15, 0, 0, time.UTC)
		out := time.Date(2024, 6, 11, 1, 30, 0, 0, time.UTC)
		n, err := Nights(in, out)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("SameDayInvalid", func(t *testing.T) {
		_, err := Nights(date(2024, 6, 10), date(2024, 6, 10))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("ReversedInvalid", func(t *testing.T) {
		_, err := Nights(date(2024, 6, 13), date(2024, 6, 10))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestOverlaps(t *testing.T) {
	a1, a2 := date(2024, 6, 10), date(2024, 6, 12)
	b1, b2 := date(2024, 6, 11), date(2024, 6, 13)

	t.Run("Overlapping", func(t *testing.T) {
		assert.True(t, Overlaps(a1, a2, b1, b2))
	})

	t.Run("Symmetry", func(t *testing.T) {
		cases := [][4]time.Time{
			{a1, a2, b1, b2},
			{a1, a2, date(2024, 6, 12), date(2024, 6, 14)},
			{a1, a2, date(2024, 6, 1), date(2024, 6, 5)},
			{a1, a2, a1, a2},
		}
		for _, cse := range cases {
			assert.Equal(t,
				Overlaps(cse[0], cse[1], cse[2], cse[3]),
				Overlaps(cse[2], cse[3], cse[0], cse[1]))
		}
	})

	t.Run("BackToBackNeverOverlaps", func(t *testing.T) {
		// checkout on day X and a new check-in on day X don't collide
		assert.False(t, Overlaps(a1, a2, a2, date(2024, 6, 14)))
		assert.False(t, Overlaps(a2, date(2024, 6, 14), a1, a2))
	})

	t.Run("Contained", func(t *testing.T) {
		assert.True(t, Overlaps(date(2024, 6, 1), date(2024, 6, 30), a1, a2))
	})
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 6, 10), got)

	got, err = ParseDate("2024-06-10T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 6, 10), got)

	_, err = ParseDate("10/06/2024")
	assert.Error(t, err)
}

func TestNormalizeDateCanonicalizesLocation(t *testing.T) {
	offset := time.FixedZone("UTC+5", 5*60*60)

	t.Run("SameDateSameInstant", func(t *testing.T) {
		local := time.Date(2024, 6, 13, 10, 0, 0, 0, offset)
		assert.True(t, NormalizeDate(local).Equal(date(2024, 6, 13)))
		assert.Equal(t, time.UTC, NormalizeDate(local).Location())
	})

	t.Run("ParseDateWithOffset", func(t *testing.T) {
		got, err := ParseDate("2024-06-13T10:00:00+05:00")
		require.NoError(t, err)
		assert.True(t, got.Equal(date(2024, 6, 13)))
	})

	t.Run("BackToBackAcrossOffsets", func(t *testing.T) {
		// Existing booking stored from date-only input; new check-in arrives as
		// RFC3339 with a non-UTC offset on the same calendar day. Back-to-back
		// stays must stay conflict-free regardless of the offset.
		bookedIn, bookedOut := date(2024, 6, 10), date(2024, 6, 13)
		candidate, err := ParseDate("2024-06-13T10:00:00+05:00")
		require.NoError(t, err)
		assert.False(t, Overlaps(NormalizeDate(candidate), date(2024, 6, 15), bookedIn, bookedOut))
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 216.0, Round2(1200*18.0/100))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 99.99, Round2(99.994))
}
