package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking lifecycle statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCanceled  = "canceled"
	BookingStatusCompleted = "completed"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

type Booking struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingNumber string `gorm:"column:booking_number;size:32;uniqueIndex" json:"bookingNumber"`

	// RoomID is set for single-room bookings; multi-room bookings carry their
	// rooms as BookingRoom rows instead. The two modes are mutually exclusive.
	RoomID *uint         `gorm:"column:room_id;index" json:"roomId,omitempty"`
	Rooms  []BookingRoom `gorm:"foreignKey:BookingID" json:"rooms,omitempty"`

	CheckIn  time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out" json:"checkOut"`
	Nights   int       `gorm:"column:nights" json:"nights"`

	GuestName  string `gorm:"column:guest_name;size:255" json:"guestName"`
	GuestEmail string `gorm:"column:guest_email;size:150" json:"guestEmail"`
	GuestPhone string `gorm:"column:guest_phone;size:50" json:"guestPhone,omitempty"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	// Tourists are VAT-exempt.
	IsTourist bool `gorm:"column:is_tourist" json:"isTourist"`

	BasePrice  float64 `gorm:"column:base_price" json:"basePrice"`
	VATAmount  float64 `gorm:"column:vat_amount" json:"vatAmount"`
	TotalPrice float64 `gorm:"column:total_price" json:"totalPrice"`

	Status        string `gorm:"column:status;size:32;index" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:32" json:"paymentStatus"`

	CancellationFee *float64   `gorm:"column:cancellation_fee" json:"cancellationFee,omitempty"`
	CanceledAt      *time.Time `gorm:"column:canceled_at" json:"canceledAt,omitempty"`

	AccompanyingGuests datatypes.JSON `gorm:"column:accompanying_guests" json:"accompanyingGuests,omitempty"`

	Room *Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

// IsMultiRoom reports whether the booking occupies more than one room.
func (b *Booking) IsMultiRoom() bool {
	return b.RoomID == nil && len(b.Rooms) > 0
}

// OccupiedRoomIDs returns every room the booking holds, regardless of mode.
func (b *Booking) OccupiedRoomIDs() []uint {
	if b.RoomID != nil {
		return []uint{*b.RoomID}
	}
	ids := make([]uint, 0, len(b.Rooms))
	for _, br := range b.Rooms {
		ids = append(ids, br.RoomID)
	}
	return ids
}
