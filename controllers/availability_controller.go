package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	Availability *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Availability: svc}
}

type availabilityRequest struct {
	RoomID    uint   `json:"roomId"`
	RoomIDs   []uint `json:"roomIds"`
	CheckIn   string `json:"checkIn" binding:"required"`
	CheckOut  string `json:"checkOut" binding:"required"`
	Guests    int    `json:"guests"`
	Rooms     int    `json:"rooms"`
	IsTourist bool   `json:"isTourist"`
}

// resolveRoomList expands the request into an explicit room list: an explicit
// roomIds list wins; a single roomId with rooms=N means that room repeated N
// times.
func (r *availabilityRequest) resolveRoomList() []uint {
	if len(r.RoomIDs) > 0 {
		return r.RoomIDs
	}
	if r.RoomID == 0 {
		return nil
	}
	count := r.Rooms
	if count < 1 {
		count = 1
	}
	ids := make([]uint, count)
	for i := range ids {
		ids[i] = r.RoomID
	}
	return ids
}

// Check decides availability and price for specific rooms, or falls back to
// search mode when no room is named.
func (ctrl *AvailabilityController) Check(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkIn and checkOut are required")
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

	roomIDs := req.resolveRoomList()
	if len(roomIDs) == 0 {
		results, err := ctrl.Availability.Search(services.SearchParams{
			CheckIn:   checkIn,
			CheckOut:  checkOut,
			Guests:    req.Guests,
			Rooms:     req.Rooms,
			IsTourist: req.IsTourist,
		})
		if err != nil {
			respondEngineError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, gin.H{"data": results})
		return
	}

	decision, err := ctrl.Availability.CheckRooms(roomIDs, checkIn, checkOut, req.IsTourist)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if len(roomIDs) == 1 {
		q := decision.Rooms[0]
		utils.JSONSuccess(c, http.StatusOK, gin.H{
			"isAvailable": q.Available,
			"nights":      decision.Nights,
			"basePrice":   q.Quote.BasePrice,
			"vatAmount":   q.Quote.VATAmount,
			"totalPrice":  q.Quote.TotalPrice,
		})
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"allRoomsAvailable": decision.AllAvailable,
		"nights":            decision.Nights,
		"basePrice":         decision.TotalBasePrice,
		"vatAmount":         decision.TotalVAT,
		"totalPrice":        decision.TotalPrice,
		"data":              decision.Rooms,
	})
}

// Search lists available rooms for a date range, cheapest first.
func (ctrl *AvailabilityController) Search(c *gin.Context) {
	checkIn, err := utils.ParseDate(c.Query("checkIn"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid or missing checkIn date")
		return
	}
	checkOut, err := utils.ParseDate(c.Query("checkOut"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid or missing checkOut date")
		return
	}
	guests, _ := strconv.Atoi(c.DefaultQuery("guests", "1"))
	rooms, _ := strconv.Atoi(c.DefaultQuery("rooms", "1"))
	isTourist := c.DefaultQuery("isTourist", "false") == "true"

	results, err := ctrl.Availability.Search(services.SearchParams{
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    guests,
		Rooms:     rooms,
		IsTourist: isTourist,
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"data": results})
}

// respondEngineError maps the engine error taxonomy to HTTP statuses.
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRange):
		utils.JSONError(c, http.StatusBadRequest, "check-out must be after check-in")
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRoomUnavailable):
		utils.JSONError(c, http.StatusConflict, "room is no longer available for the requested dates")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}
