package services

import (
	"time"

	"hotel-booking-backend/config"
	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"
)

// PriceQuote is the price composition for one room over one stay.
type PriceQuote struct {
	RoomID         uint    `json:"roomId"`
	Nights         int     `json:"nights"`
	BasePrice      float64 `json:"basePrice"`
	VATRate        float64 `json:"vatRate"`
	VATAmount      float64 `json:"vatAmount"`
	TotalPrice     float64 `json:"totalPrice"`
	SpecialApplied bool    `json:"specialApplied"`
}

// PricingService composes nightly prices with day-of-week overrides and VAT.
type PricingService struct {
	VATRatePercent float64
}

func NewPricingService() *PricingService {
	return &PricingService{VATRatePercent: config.VATRate()}
}

// ResolveStayPrice sums the nightly price across the nights consecutive
// calendar days starting at checkIn, using the weekday override when one is
// set and the base price otherwise. No rounding happens here; rounding is
// applied once, at VAT computation. The bool reports whether any override was
// actually used (diagnostics only).
func ResolveStayPrice(basePrice float64, specials models.SpecialPrices, checkIn time.Time, nights int) (float64, bool) {
	start := utils.NormalizeDate(checkIn)
	total := 0.0
	applied := false
	for i := 0; i < nights; i++ {
		night := start.AddDate(0, 0, i)
		price, isSpecial := specials.PriceFor(night.Weekday(), basePrice)
		total += price
		applied = applied || isSpecial
	}
	return total, applied
}

// ApplyVAT returns the VAT amount and grand total for a pre-tax amount.
// Tourist bookings are VAT-exempt.
func (s *PricingService) ApplyVAT(preTax float64, isTourist bool) (vatAmount, total float64) {
	if isTourist {
		return 0, preTax
	}
	vatAmount = utils.Round2(preTax * s.VATRatePercent / 100)
	return vatAmount, preTax + vatAmount
}

// QuoteStay prices a stay in the given room.
func (s *PricingService) QuoteStay(room *models.Room, checkIn time.Time, nights int, isTourist bool) PriceQuote {
	base, applied := ResolveStayPrice(room.BasePrice, room.SpecialPrices, checkIn, nights)
	vat, total := s.ApplyVAT(base, isTourist)
	return PriceQuote{
		RoomID:         room.ID,
		Nights:         nights,
		BasePrice:      base,
		VATRate:        s.VATRatePercent,
		VATAmount:      vat,
		TotalPrice:     total,
		SpecialApplied: applied,
	}
}
