package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-booking-backend/models"

	"gorm.io/gorm"
)

// RoomService is the room store: read access for the engine plus admin writes.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) FindActiveRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Where("active = ?", true).Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) FindRoomByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrRoomNotFound, id)
		}
		return nil, err
	}
	return &room, nil
}

// FindRoomsByIDs resolves every ID, preserving order and duplicates. A missing
// ID fails the whole call with ErrRoomNotFound rather than being skipped.
func (s *RoomService) FindRoomsByIDs(ids []uint) ([]*models.Room, error) {
	unique := map[uint]*models.Room{}
	var distinct []uint
	for _, id := range ids {
		if _, seen := unique[id]; !seen {
			unique[id] = nil
			distinct = append(distinct, id)
		}
	}

	var fetched []models.Room
	if err := s.DB.Where("id IN ?", distinct).Find(&fetched).Error; err != nil {
		return nil, err
	}
	for i := range fetched {
		unique[fetched[i].ID] = &fetched[i]
	}

	rooms := make([]*models.Room, 0, len(ids))
	for _, id := range ids {
		room := unique[id]
		if room == nil {
			return nil, fmt.Errorf("%w: id %d", ErrRoomNotFound, id)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (s *RoomService) Create(room *models.Room) error {
	if err := room.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.DB.Create(room).Error
}

func (s *RoomService) Update(id uint, updated *models.Room) (*models.Room, error) {
	room, err := s.FindRoomByID(id)
	if err != nil {
		return nil, err
	}

	room.RoomNumber = updated.RoomNumber
	room.Type = updated.Type
	room.BasePrice = updated.BasePrice
	room.MaxOccupancy = updated.MaxOccupancy
	room.Floor = updated.Floor
	room.Description = updated.Description
	room.SpecialPrices = updated.SpecialPrices
	room.Active = updated.Active

	if err := room.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.DB.Save(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// Remove deletes a room, or deactivates it instead when future non-canceled
// bookings still reference it. The bool reports whether it was deactivated.
func (s *RoomService) Remove(id uint) (deactivated bool, err error) {
	room, err := s.FindRoomByID(id)
	if err != nil {
		return false, err
	}

	var futureBookings int64
	today := time.Now()
	err = s.DB.Model(&models.Booking{}).
		Distinct("bookings.id").
		Joins("LEFT JOIN booking_rooms br ON br.booking_id = bookings.id AND br.deleted_at IS NULL").
		Where("bookings.room_id = ? OR br.room_id = ?", id, id).
		Where("bookings.status <> ?", models.BookingStatusCanceled).
		Where("bookings.check_out > ?", today).
		Count(&futureBookings).Error
	if err != nil {
		return false, err
	}

	if futureBookings > 0 {
		room.Active = false
		return true, s.DB.Save(room).Error
	}
	return false, s.DB.Delete(room).Error
}
