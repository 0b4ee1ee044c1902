package models

import (
	"errors"

	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	RoomNumber   int     `json:"roomNumber" gorm:"column:room_number;uniqueIndex"`
	Type         string  `json:"type" gorm:"size:64"`
	BasePrice    float64 `json:"basePrice" gorm:"column:base_price"`
	MaxOccupancy int     `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Floor        string  `json:"floor" gorm:"type:varchar(10)"`
	Description  string  `json:"description" gorm:"type:text"`

	// Per-weekday nightly overrides, stored as JSON. Validated on create/update.
	SpecialPrices SpecialPrices `json:"specialPrices,omitempty" gorm:"column:special_prices;type:json"`

	// Rooms with future bookings are deactivated instead of deleted.
	Active bool `json:"active" gorm:"column:active;default:true"`
}

// Validate checks the invariants enforced at write time.
func (r *Room) Validate() error {
	if r.RoomNumber <= 0 {
		return errors.New("room number must be a positive integer")
	}
	if r.BasePrice <= 0 {
		return errors.New("base price must be positive")
	}
	if r.MaxOccupancy <= 0 {
		return errors.New("max occupancy must be positive")
	}
	return r.SpecialPrices.Validate()
}
