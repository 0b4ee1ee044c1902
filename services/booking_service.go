package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking-backend/logger"
	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService owns the booking lifecycle: create, cancel, update, complete.
type BookingService struct {
	DB           *gorm.DB
	Rooms        *RoomService
	Availability *AvailabilityService
	Pricing      *PricingService
}

func NewBookingService(db *gorm.DB, rooms *RoomService, availability *AvailabilityService, pricing *PricingService) *BookingService {
	return &BookingService{DB: db, Rooms: rooms, Availability: availability, Pricing: pricing}
}

type CreateBookingInput struct {
	RoomID  uint
	RoomIDs []uint

	CheckIn  time.Time
	CheckOut time.Time

	GuestName  string
	GuestEmail string
	GuestPhone string
	Adults     int
	Children   int

	IsTourist     bool
	PaymentStatus string

	AccompanyingGuests datatypes.JSON
}

type UpdateBookingInput struct {
	CheckIn  *time.Time
	CheckOut *time.Time
	RoomIDs  []uint
}

// dedupeRoomIDs drops zero IDs and repeats, preserving first-seen order. Both
// the create and update paths go through this so a repeated ID can never be
// priced or persisted twice.
func dedupeRoomIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := map[uint]struct{}{}
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (in *CreateBookingInput) roomIDs() []uint {
	ids := make([]uint, 0, len(in.RoomIDs)+1)
	if in.RoomID != 0 {
		ids = append(ids, in.RoomID)
	}
	ids = append(ids, in.RoomIDs...)
	return dedupeRoomIDs(ids)
}

func (in *CreateBookingInput) validate() error {
	if strings.TrimSpace(in.GuestName) == "" {
		return fmt.Errorf("%w: guest name is required", ErrValidation)
	}
	if strings.TrimSpace(in.GuestEmail) == "" {
		return fmt.Errorf("%w: guest email is required", ErrValidation)
	}
	switch in.PaymentStatus {
	case "", models.PaymentStatusPending, models.PaymentStatusPartial, models.PaymentStatusPaid:
	default:
		return fmt.Errorf("%w: unknown payment status %q", ErrValidation, in.PaymentStatus)
	}
	return nil
}

// CancellationFee implements the cancellation policy: free when the request
// comes 3 or more calendar days before check-in, otherwise the full total.
func CancellationFee(totalPrice float64, checkIn, cancelAt time.Time) float64 {
	daysBefore := utils.NormalizeDate(checkIn).Sub(utils.NormalizeDate(cancelAt)).Hours() / 24
	if daysBefore >= 3 {
		return 0
	}
	return totalPrice
}

const bookingNumberRetries = 5

// CreateBooking validates the candidate, re-checks availability inside a
// transaction holding the room row locks (the authoritative gate against the
// check-then-create race) and persists the booking with status confirmed.
// Confirmation emails are best-effort and never fail the booking.
func (s *BookingService) CreateBooking(in CreateBookingInput) (*models.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	roomIDs := in.roomIDs()
	if len(roomIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one room is required", ErrValidation)
	}

	nights, err := utils.Nights(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	checkIn := utils.NormalizeDate(in.CheckIn)
	checkOut := utils.NormalizeDate(in.CheckOut)

	// Advisory pre-check; also resolves rooms and prices the stay.
	decision, err := s.Availability.CheckRooms(roomIDs, checkIn, checkOut, in.IsTourist)
	if err != nil {
		return nil, err
	}
	if !decision.AllAvailable {
		return nil, ErrRoomUnavailable
	}

	adults := in.Adults
	if adults <= 0 {
		adults = 1
	}
	children := in.Children
	if children < 0 {
		children = 0
	}
	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusPending
	}

	booking := models.Booking{
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Nights:             nights,
		GuestName:          strings.TrimSpace(in.GuestName),
		GuestEmail:         strings.TrimSpace(in.GuestEmail),
		GuestPhone:         strings.TrimSpace(in.GuestPhone),
		Adults:             adults,
		Children:           children,
		IsTourist:          in.IsTourist,
		BasePrice:          decision.TotalBasePrice,
		VATAmount:          decision.TotalVAT,
		TotalPrice:         decision.TotalPrice,
		Status:             models.BookingStatusConfirmed,
		PaymentStatus:      paymentStatus,
		AccompanyingGuests: in.AccompanyingGuests,
	}
	if len(roomIDs) == 1 {
		booking.RoomID = &roomIDs[0]
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockRoomRows(tx, roomIDs); err != nil {
			return err
		}

		// Authoritative re-check under the locks.
		free, err := s.Availability.checkRoomsTx(tx, roomIDs, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if !free {
			return ErrRoomUnavailable
		}

		if err := s.insertWithFreshNumber(tx, &booking); err != nil {
			return err
		}

		if len(roomIDs) > 1 {
			for _, q := range decision.Rooms {
				br := models.BookingRoom{
					BookingID:  booking.ID,
					RoomID:     q.RoomID,
					Nights:     nights,
					BasePrice:  q.Quote.BasePrice,
					VATAmount:  q.Quote.VATAmount,
					TotalPrice: q.Quote.TotalPrice,
				}
				if err := tx.Create(&br).Error; err != nil {
					return fmt.Errorf("failed to create booking room for room %d: %w", q.RoomID, err)
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifyCreated(&booking, roomIDs)

	// The booking is committed at this point; a failed reload must not make
	// the caller believe the booking failed.
	if err := s.DB.Preload("Rooms.Room").Preload("Room").First(&booking, booking.ID).Error; err != nil {
		logger.ErrorLogger.Errorf("reload after create failed for booking %s: %v", booking.BookingNumber, err)
	}
	return &booking, nil
}

// insertWithFreshNumber creates the booking, regenerating the booking number
// on unique-index collisions.
func (s *BookingService) insertWithFreshNumber(tx *gorm.DB, booking *models.Booking) error {
	var createErr error
	for attempt := 0; attempt < bookingNumberRetries; attempt++ {
		number, err := utils.GenerateBookingNumber()
		if err != nil {
			return fmt.Errorf("failed to generate booking number: %w", err)
		}
		booking.BookingNumber = number

		createErr = tx.Create(booking).Error
		if createErr == nil {
			return nil
		}
		if isDuplicateKeyError(createErr) {
			logger.InfoLogger.Printf("booking number collision (attempt %d), retrying", attempt+1)
			booking.ID = 0
			continue
		}
		return createErr
	}
	return fmt.Errorf("failed to create booking after retries: %w", createErr)
}

func (s *BookingService) notifyCreated(booking *models.Booking, roomIDs []uint) {
	var rooms []models.Room
	if err := s.DB.Where("id IN ?", roomIDs).Find(&rooms).Error; err != nil {
		logger.ErrorLogger.Errorf("failed to load rooms for confirmation email (booking %s): %v", booking.BookingNumber, err)
	}
	if err := utils.SendBookingConfirmation(booking, rooms); err != nil {
		logger.ErrorLogger.Errorf("confirmation email failed for booking %s: %v", booking.BookingNumber, err)
	}
	if err := utils.SendBookingNotificationToAdmin(booking); err != nil {
		logger.ErrorLogger.Errorf("admin notification failed for booking %s: %v", booking.BookingNumber, err)
	}
}

// CancelBooking flips the booking to canceled and records the cancellation
// fee. The record is kept; canceled bookings are excluded from every future
// overlap check. Cancel-all-or-nothing: a multi-room booking releases all of
// its rooms at once.
func (s *BookingService) CancelBooking(id uint) (*models.Booking, error) {
	booking, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCanceled {
		return nil, fmt.Errorf("%w: booking is already canceled", ErrValidation)
	}
	if booking.Status == models.BookingStatusCompleted {
		return nil, fmt.Errorf("%w: completed bookings cannot be canceled", ErrValidation)
	}

	now := time.Now()
	fee := CancellationFee(booking.TotalPrice, booking.CheckIn, now)

	if err := s.DB.Model(booking).Updates(map[string]interface{}{
		"status":           models.BookingStatusCanceled,
		"canceled_at":      now,
		"cancellation_fee": fee,
	}).Error; err != nil {
		return nil, err
	}
	booking.Status = models.BookingStatusCanceled
	booking.CanceledAt = &now
	booking.CancellationFee = &fee

	if err := utils.SendCancellationAlert(booking, fee); err != nil {
		logger.ErrorLogger.Errorf("cancellation alert failed for booking %s: %v", booking.BookingNumber, err)
	}
	return booking, nil
}

// UpdateBooking changes dates and/or rooms. Availability is re-validated
// excluding the booking's own record and the price recomputed before the
// mutation commits; otherwise the update is rejected with ErrRoomUnavailable.
func (s *BookingService) UpdateBooking(id uint, in UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCanceled || booking.Status == models.BookingStatusCompleted {
		return nil, fmt.Errorf("%w: booking can no longer be modified", ErrValidation)
	}

	checkIn := booking.CheckIn
	checkOut := booking.CheckOut
	if in.CheckIn != nil {
		checkIn = utils.NormalizeDate(*in.CheckIn)
	}
	if in.CheckOut != nil {
		checkOut = utils.NormalizeDate(*in.CheckOut)
	}
	nights, err := utils.Nights(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	roomIDs := booking.OccupiedRoomIDs()
	if requested := dedupeRoomIDs(in.RoomIDs); len(requested) > 0 {
		roomIDs = requested
	}

	decision, err := s.Availability.CheckRooms(roomIDs, checkIn, checkOut, booking.IsTourist)
	if err != nil {
		return nil, err
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockRoomRows(tx, roomIDs); err != nil {
			return err
		}
		free, err := s.Availability.checkRoomsTx(tx, roomIDs, checkIn, checkOut, booking.ID)
		if err != nil {
			return err
		}
		if !free {
			return ErrRoomUnavailable
		}

		booking.CheckIn = checkIn
		booking.CheckOut = checkOut
		booking.Nights = nights
		booking.BasePrice = decision.TotalBasePrice
		booking.VATAmount = decision.TotalVAT
		booking.TotalPrice = decision.TotalPrice

		// Re-point the room references: single mode keeps RoomID, multi mode
		// replaces the BookingRoom rows.
		if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.BookingRoom{}).Error; err != nil {
			return err
		}
		if len(roomIDs) == 1 {
			booking.RoomID = &roomIDs[0]
			booking.Rooms = nil
		} else {
			booking.RoomID = nil
			booking.Rooms = nil
			for _, q := range decision.Rooms {
				br := models.BookingRoom{
					BookingID:  booking.ID,
					RoomID:     q.RoomID,
					Nights:     nights,
					BasePrice:  q.Quote.BasePrice,
					VATAmount:  q.Quote.VATAmount,
					TotalPrice: q.Quote.TotalPrice,
				}
				if err := tx.Create(&br).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"check_in":    booking.CheckIn,
				"check_out":   booking.CheckOut,
				"nights":      booking.Nights,
				"room_id":     booking.RoomID,
				"base_price":  booking.BasePrice,
				"vat_amount":  booking.VATAmount,
				"total_price": booking.TotalPrice,
			}).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetByID(id)
}

// CompleteBooking marks a stay as finished after checkout.
func (s *BookingService) CompleteBooking(id uint) (*models.Booking, error) {
	booking, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusConfirmed && booking.Status != models.BookingStatusPending {
		return nil, fmt.Errorf("%w: only pending or confirmed bookings can be completed", ErrValidation)
	}
	if err := s.DB.Model(booking).Update("status", models.BookingStatusCompleted).Error; err != nil {
		return nil, err
	}
	booking.Status = models.BookingStatusCompleted
	return booking, nil
}

func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Rooms.Room").Preload("Room").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
		}
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) GetAllWithRelations() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Rooms.Room").
		Preload("Room").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	for i := range list {
		if list[i].Rooms == nil {
			list[i].Rooms = []models.BookingRoom{}
		}
	}
	return list, nil
}

// isDuplicateKeyError detects a MySQL unique-index violation (error 1062).
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate") || strings.Contains(lower, "unique")
}
