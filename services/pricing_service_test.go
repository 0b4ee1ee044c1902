package services

import (
	"testing"
	"time"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveStayPrice(t *testing.T) {
	t.Run("NoOverridesEqualsBaseTimesNights", func(t *testing.T) {
		for _, n := range []int{1, 2, 7, 30} {
			total, applied := ResolveStayPrice(400, nil, date(2024, 6, 10), n)
			assert.Equal(t, 400*float64(n), total)
			assert.False(t, applied)
		}
	})

	t.Run("FridayOverride", func(t *testing.T) {
		specials := models.SpecialPrices{"Friday": 650}
		// 2024-06-07 is a Friday; 7 consecutive nights contain exactly one
		start := date(2024, 6, 7)
		require.Equal(t, time.Friday, start.Weekday())

		total, applied := ResolveStayPrice(400, specials, start, 7)
		assert.Equal(t, 650+6*400.0, total)
		assert.True(t, applied)
	})

	t.Run("OverridePresentButNotHit", func(t *testing.T) {
		specials := models.SpecialPrices{"Friday": 650}
		// Monday to Wednesday, no Friday night involved
		start := date(2024, 6, 10)
		require.Equal(t, time.Monday, start.Weekday())

		total, applied := ResolveStayPrice(400, specials, start, 2)
		assert.Equal(t, 800.0, total)
		assert.False(t, applied)
	})

	t.Run("WeekendOverridesAcrossWeek", func(t *testing.T) {
		specials := models.SpecialPrices{"Friday": 650, "Saturday": 700}
		start := date(2024, 6, 7) // Friday
		total, applied := ResolveStayPrice(400, specials, start, 3)
		// Friday + Saturday + Sunday nights
		assert.Equal(t, 650+700+400.0, total)
		assert.True(t, applied)
	})
}

func TestApplyVAT(t *testing.T) {
	pricing := &PricingService{VATRatePercent: 18}

	t.Run("TouristExempt", func(t *testing.T) {
		vat, total := pricing.ApplyVAT(1200, true)
		assert.Zero(t, vat)
		assert.Equal(t, 1200.0, total)
	})

	t.Run("ResidentPaysVAT", func(t *testing.T) {
		vat, total := pricing.ApplyVAT(1200, false)
		assert.Equal(t, 216.0, vat)
		assert.Equal(t, 1416.0, total)
	})

	t.Run("VATRoundedToCents", func(t *testing.T) {
		vat, total := pricing.ApplyVAT(333.33, false)
		assert.Equal(t, 60.0, vat) // 59.9994 rounds up
		assert.InDelta(t, 393.33, total, 1e-9)
	})
}

func TestQuoteStay(t *testing.T) {
	pricing := &PricingService{VATRatePercent: 18}
	room := &models.Room{BasePrice: 400, MaxOccupancy: 2}
	room.ID = 7

	t.Run("ResidentThreeNights", func(t *testing.T) {
		q := pricing.QuoteStay(room, date(2024, 6, 10), 3, false)
		assert.Equal(t, uint(7), q.RoomID)
		assert.Equal(t, 3, q.Nights)
		assert.Equal(t, 1200.0, q.BasePrice)
		assert.Equal(t, 216.0, q.VATAmount)
		assert.Equal(t, 1416.0, q.TotalPrice)
		assert.False(t, q.SpecialApplied)
	})

	t.Run("TouristThreeNights", func(t *testing.T) {
		q := pricing.QuoteStay(room, date(2024, 6, 10), 3, true)
		assert.Equal(t, 1200.0, q.BasePrice)
		assert.Zero(t, q.VATAmount)
		assert.Equal(t, 1200.0, q.TotalPrice)
	})
}

func TestSpecialPricesValidate(t *testing.T) {
	assert.NoError(t, models.SpecialPrices(nil).Validate())
	assert.NoError(t, models.SpecialPrices{"Friday": 650, "Sunday": 500}.Validate())
	assert.Error(t, models.SpecialPrices{"friday": 650}.Validate())
	assert.Error(t, models.SpecialPrices{"Someday": 650}.Validate())
	assert.Error(t, models.SpecialPrices{"Friday": 0}.Validate())
	assert.Error(t, models.SpecialPrices{"Friday": -10}.Validate())
}
