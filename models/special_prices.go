package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SpecialPrices maps a weekday name ("Monday" .. "Sunday") to a nightly price
// that replaces the room's base price on that weekday.
type SpecialPrices map[string]float64

var weekdayNames = map[string]struct{}{
	"Monday":    {},
	"Tuesday":   {},
	"Wednesday": {},
	"Thursday":  {},
	"Friday":    {},
	"Saturday":  {},
	"Sunday":    {},
}

// Validate rejects unknown weekday keys and non-positive prices.
func (sp SpecialPrices) Validate() error {
	for day, price := range sp {
		if _, ok := weekdayNames[day]; !ok {
			return fmt.Errorf("special price key %q is not a weekday name", day)
		}
		if price <= 0 {
			return fmt.Errorf("special price for %s must be positive, got %v", day, price)
		}
	}
	return nil
}

// PriceFor returns the override for the given weekday, or base when none is set.
// The second return reports whether an override was used.
func (sp SpecialPrices) PriceFor(day time.Weekday, base float64) (float64, bool) {
	if price, ok := sp[day.String()]; ok {
		return price, true
	}
	return base, false
}

func (sp SpecialPrices) Value() (driver.Value, error) {
	if sp == nil {
		return nil, nil
	}
	b, err := json.Marshal(sp)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (sp *SpecialPrices) Scan(src interface{}) error {
	if src == nil {
		*sp = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SpecialPrices", src)
	}
	if len(b) == 0 {
		*sp = nil
		return nil
	}
	return json.Unmarshal(b, sp)
}
