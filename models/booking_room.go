package models

import (
	"gorm.io/gorm"
)

// BookingRoom links one room of a multi-room booking. It carries a snapshot of
// the per-room price so later room edits don't rewrite booking history.
type BookingRoom struct {
	gorm.Model
	BookingID uint `gorm:"index;column:booking_id" json:"bookingId"`
	RoomID    uint `gorm:"index;column:room_id" json:"roomId"`

	Nights     int     `gorm:"column:nights" json:"nights"`
	BasePrice  float64 `gorm:"column:base_price" json:"basePrice"`
	VATAmount  float64 `gorm:"column:vat_amount" json:"vatAmount"`
	TotalPrice float64 `gorm:"column:total_price" json:"totalPrice"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
