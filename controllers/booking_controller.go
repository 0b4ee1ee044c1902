package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-backend/logger"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{Bookings: svc}
}

type createBookingRequest struct {
	RoomID  uint   `json:"roomId"`
	RoomIDs []uint `json:"roomIds"`

	CheckIn  string `json:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`

	GuestName  string `json:"guestName" binding:"required"`
	GuestEmail string `json:"guestEmail" binding:"required"`
	GuestPhone string `json:"guestPhone"`
	Adults     int    `json:"adults"`
	Children   int    `json:"children"`

	IsTourist     bool   `json:"isTourist"`
	PaymentStatus string `json:"paymentStatus"`

	AccompanyingGuests datatypes.JSON `json:"accompanyingGuests"`
}

type updateBookingRequest struct {
	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut"`
	RoomIDs  []uint  `json:"roomIds"`
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return 0, false
	}
	return uint(id), true
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkIn date")
		return
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOut date")
		return
	}

	booking, err := ctrl.Bookings.CreateBooking(services.CreateBookingInput{
		RoomID:             req.RoomID,
		RoomIDs:            req.RoomIDs,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		GuestName:          req.GuestName,
		GuestEmail:         req.GuestEmail,
		GuestPhone:         req.GuestPhone,
		Adults:             req.Adults,
		Children:           req.Children,
		IsTourist:          req.IsTourist,
		PaymentStatus:      req.PaymentStatus,
		AccompanyingGuests: req.AccompanyingGuests,
	})
	if err != nil {
		logger.ErrorLogger.Errorf("create booking failed: %v", err)
		respondEngineError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"bookingNumber": booking.BookingNumber,
		"booking":       booking,
	})
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.Bookings.GetAllWithRelations()
	if err != nil {
		logger.ErrorLogger.Errorf("list bookings failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.GetByID(id)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.CancelBooking(id)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"bookingNumber":   booking.BookingNumber,
		"status":          booking.Status,
		"cancellationFee": booking.CancellationFee,
	})
}

func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var input services.UpdateBookingInput
	if req.CheckIn != nil {
		t, err := utils.ParseDate(*req.CheckIn)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid checkIn date")
			return
		}
		input.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, err := utils.ParseDate(*req.CheckOut)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid checkOut date")
			return
		}
		input.CheckOut = &t
	}
	input.RoomIDs = req.RoomIDs

	booking, err := ctrl.Bookings.UpdateBooking(id, input)
	if err != nil {
		logger.ErrorLogger.Errorf("update booking %d failed: %v", id, err)
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) CompleteBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.CompleteBooking(id)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"bookingNumber": booking.BookingNumber,
		"status":        booking.Status,
	})
}
