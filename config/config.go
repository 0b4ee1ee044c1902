package config

import (
	"os"
	"strconv"
	"strings"
)

// DefaultVATRatePercent is the VAT rate applied to non-tourist bookings when
// VAT_RATE_PERCENT is not set. One configured rate is used everywhere.
const DefaultVATRatePercent = 18.0

// VATRate returns the configured VAT percentage.
func VATRate() float64 {
	raw := strings.TrimSpace(os.Getenv("VAT_RATE_PERCENT"))
	if raw == "" {
		return DefaultVATRatePercent
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0 {
		return DefaultVATRatePercent
	}
	return rate
}
