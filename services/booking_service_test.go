package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"hotel-booking-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancellationFee(t *testing.T) {
	checkIn := date(2024, 7, 10)

	t.Run("FourDaysBeforeIsFree", func(t *testing.T) {
		fee := CancellationFee(1416, checkIn, date(2024, 7, 6))
		assert.Zero(t, fee)
	})

	t.Run("ExactlyThreeDaysBeforeIsFree", func(t *testing.T) {
		fee := CancellationFee(1416, checkIn, date(2024, 7, 7))
		assert.Zero(t, fee)
	})

	t.Run("TwoDaysBeforeIsFullPrice", func(t *testing.T) {
		fee := CancellationFee(1416, checkIn, date(2024, 7, 8))
		assert.Equal(t, 1416.0, fee)
	})

	t.Run("SameDayIsFullPrice", func(t *testing.T) {
		fee := CancellationFee(1416, checkIn, checkIn)
		assert.Equal(t, 1416.0, fee)
	})

	t.Run("TimeOfDayIgnored", func(t *testing.T) {
		// 23:59 three calendar days out still counts as 3 days
		cancelAt := time.Date(2024, 7, 7, 23, 59, 0, 0, time.UTC)
		fee := CancellationFee(1416, checkIn, cancelAt)
		assert.Zero(t, fee)
	})
}

func TestCreateBookingInputValidate(t *testing.T) {
	valid := CreateBookingInput{GuestName: "Ana Petrov", GuestEmail: "ana@example.com"}
	assert.NoError(t, valid.validate())

	t.Run("MissingName", func(t *testing.T) {
		in := valid
		in.GuestName = "  "
		assert.ErrorIs(t, in.validate(), ErrValidation)
	})

	t.Run("MissingEmail", func(t *testing.T) {
		in := valid
		in.GuestEmail = ""
		assert.ErrorIs(t, in.validate(), ErrValidation)
	})

	t.Run("PaymentStatuses", func(t *testing.T) {
		for _, status := range []string{"", "pending", "partial", "paid"} {
			in := valid
			in.PaymentStatus = status
			assert.NoError(t, in.validate())
		}
		in := valid
		in.PaymentStatus = "refunded"
		assert.ErrorIs(t, in.validate(), ErrValidation)
	})
}

func TestCreateBookingInputRoomIDs(t *testing.T) {
	t.Run("SingleRoom", func(t *testing.T) {
		in := CreateBookingInput{RoomID: 3}
		assert.Equal(t, []uint{3}, in.roomIDs())
	})

	t.Run("MultiRoomList", func(t *testing.T) {
		in := CreateBookingInput{RoomIDs: []uint{4, 5}}
		assert.Equal(t, []uint{4, 5}, in.roomIDs())
	})

	t.Run("MergedAndDeduped", func(t *testing.T) {
		in := CreateBookingInput{RoomID: 3, RoomIDs: []uint{3, 0, 5}}
		assert.Equal(t, []uint{3, 5}, in.roomIDs())
	})

	t.Run("NoRooms", func(t *testing.T) {
		in := CreateBookingInput{}
		assert.Empty(t, in.roomIDs())
	})
}

func TestDedupeRoomIDs(t *testing.T) {
	t.Run("RepeatedIDCollapsed", func(t *testing.T) {
		assert.Equal(t, []uint{3}, dedupeRoomIDs([]uint{3, 3}))
	})

	t.Run("ZerosSkippedOrderKept", func(t *testing.T) {
		assert.Equal(t, []uint{5, 3, 4}, dedupeRoomIDs([]uint{5, 0, 3, 5, 4, 3}))
	})

	t.Run("AllZeros", func(t *testing.T) {
		assert.Empty(t, dedupeRoomIDs([]uint{0, 0}))
	})
}

func emptyBookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "check_in", "check_out", "status"})
}

// A booking that committed must be reported as created even when the final
// reload of its relations fails.
func TestCreateBookingSurvivesReloadFailure(t *testing.T) {
	t.Setenv("SMTP_HOST", "")

	db, mock := newMockDB(t)
	pricing := &PricingService{VATRatePercent: 18}
	rooms := NewRoomService(db)
	avail := NewAvailabilityService(db, rooms, pricing)
	svc := NewBookingService(db, rooms, avail, pricing)

	// Advisory check: resolve the room, no competing bookings.
	mock.ExpectQuery("SELECT (.+) FROM `rooms`").
		WillReturnRows(roomRows().AddRow(3, 101, "Standard", 400.0, 2, true))
	mock.ExpectQuery("SELECT DISTINCT bookings\\.(.+) FROM `bookings`").
		WillReturnRows(emptyBookingRows())

	// The write transaction: lock, re-check, insert, commit.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `rooms`(.+)FOR UPDATE").
		WillReturnRows(roomRows().AddRow(3, 101, "Standard", 400.0, 2, true))
	mock.ExpectQuery("SELECT DISTINCT bookings\\.(.+) FROM `bookings`").
		WillReturnRows(emptyBookingRows())
	mock.ExpectExec("INSERT INTO `bookings`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Room lookup for the confirmation email, then the reload breaks.
	mock.ExpectQuery("SELECT (.+) FROM `rooms`").
		WillReturnRows(roomRows().AddRow(3, 101, "Standard", 400.0, 2, true))
	mock.ExpectQuery("SELECT (.+) FROM `bookings`").
		WillReturnError(errors.New("connection reset"))

	booking, err := svc.CreateBooking(CreateBookingInput{
		RoomID:     3,
		CheckIn:    date(2024, 7, 1),
		CheckOut:   date(2024, 7, 3),
		GuestName:  "Ana Petrov",
		GuestEmail: "ana@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, uint(1), booking.ID)
	assert.Regexp(t, `^BK-[A-Z0-9]{8}$`, booking.BookingNumber)
	assert.Equal(t, 944.0, booking.TotalPrice)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateBookingNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^BK-[A-Z0-9]{8}$`)

	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		num, err := utils.GenerateBookingNumber()
		require.NoError(t, err)
		assert.Regexp(t, pattern, num)
		seen[num] = struct{}{}
	}
	// collisions over 100 draws from a 36^8 space would point at a broken generator
	assert.Len(t, seen, 100)
}
