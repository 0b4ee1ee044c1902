package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-backend/logger"
	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{Rooms: svc}
}

func roomIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return 0, false
	}
	return uint(id), true
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	if c.Query("active") == "true" {
		rooms, err := ctrl.Rooms.FindActiveRooms()
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to fetch rooms")
			return
		}
		utils.JSONSuccess(c, http.StatusOK, rooms)
		return
	}

	var rooms []models.Room
	if err := ctrl.Rooms.DB.Order("room_number ASC").Find(&rooms).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := roomIDParam(c)
	if !ok {
		return
	}
	room, err := ctrl.Rooms.FindRoomByID(id)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	if err := ctrl.Rooms.Create(&room); err != nil {
		logger.ErrorLogger.Errorf("create room failed: %v", err)
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := roomIDParam(c)
	if !ok {
		return
	}

	var payload models.Room
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	room, err := ctrl.Rooms.Update(id, &payload)
	if err != nil {
		logger.ErrorLogger.Errorf("update room %d failed: %v", id, err)
		respondEngineError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DeleteRoom removes a room, or deactivates it when future bookings still
// reference it.
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := roomIDParam(c)
	if !ok {
		return
	}

	deactivated, err := ctrl.Rooms.Remove(id)
	if err != nil {
		logger.ErrorLogger.Errorf("delete room %d failed: %v", id, err)
		respondEngineError(c, err)
		return
	}
	if deactivated {
		utils.JSONSuccess(c, http.StatusOK, gin.H{"deactivated": true, "message": "room has future bookings and was deactivated instead of deleted"})
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
