package services

import (
	"sort"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomQuote is one room's availability decision plus its stay price.
type RoomQuote struct {
	RoomID       uint       `json:"roomId"`
	RoomNumber   int        `json:"roomNumber"`
	RoomType     string     `json:"roomType"`
	MaxOccupancy int        `json:"maxOccupancy"`
	Available    bool       `json:"available"`
	Quote        PriceQuote `json:"quote"`
}

// MultiRoomDecision aggregates per-room checks into one answer.
type MultiRoomDecision struct {
	AllAvailable   bool        `json:"allRoomsAvailable"`
	Nights         int         `json:"nights"`
	TotalBasePrice float64     `json:"totalBasePrice"`
	TotalVAT       float64     `json:"totalVat"`
	TotalPrice     float64     `json:"totalPrice"`
	Rooms          []RoomQuote `json:"rooms"`
}

// SearchParams describe a guest's room search.
type SearchParams struct {
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	Rooms     int
	IsTourist bool
}

type AvailabilityService struct {
	DB      *gorm.DB
	Rooms   *RoomService
	Pricing *PricingService
}

func NewAvailabilityService(db *gorm.DB, rooms *RoomService, pricing *PricingService) *AvailabilityService {
	return &AvailabilityService{DB: db, Rooms: rooms, Pricing: pricing}
}

// fetchRoomBookings loads every non-canceled booking that occupies the room,
// either as its sole room or as a member of a multi-room set. excludeID drops
// the booking being edited so an update doesn't collide with itself.
func fetchRoomBookings(tx *gorm.DB, roomID uint, excludeID uint) ([]models.Booking, error) {
	q := tx.Model(&models.Booking{}).
		Distinct("bookings.*").
		Joins("LEFT JOIN booking_rooms br ON br.booking_id = bookings.id AND br.deleted_at IS NULL").
		Where("bookings.room_id = ? OR br.room_id = ?", roomID, roomID).
		Where("bookings.status <> ?", models.BookingStatusCanceled)
	if excludeID != 0 {
		q = q.Where("bookings.id <> ?", excludeID)
	}
	var bookings []models.Booking
	err := q.Find(&bookings).Error
	return bookings, err
}

// anyOverlap applies the single overlap predicate against a candidate
// interval. Stored intervals are normalized too, so rows written before the
// driver location was pinned to UTC still compare by calendar date.
func anyOverlap(bookings []models.Booking, checkIn, checkOut time.Time) bool {
	for _, b := range bookings {
		if utils.Overlaps(checkIn, checkOut, utils.NormalizeDate(b.CheckIn), utils.NormalizeDate(b.CheckOut)) {
			return true
		}
	}
	return false
}

// IsRoomAvailable decides free/occupied for a candidate interval. This is the
// advisory pre-check; the booking transaction re-runs the same decision under
// row locks before persisting.
func (s *AvailabilityService) IsRoomAvailable(roomID uint, checkIn, checkOut time.Time) (bool, error) {
	return s.isRoomFree(s.DB, roomID, checkIn, checkOut, 0)
}

func (s *AvailabilityService) isRoomFree(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	in := utils.NormalizeDate(checkIn)
	out := utils.NormalizeDate(checkOut)
	bookings, err := fetchRoomBookings(tx, roomID, excludeID)
	if err != nil {
		return false, err
	}
	return !anyOverlap(bookings, in, out), nil
}

// lockRoomRows takes FOR UPDATE locks on the target rooms, serializing
// concurrent booking writes for the same rooms. Must run inside a transaction.
func lockRoomRows(tx *gorm.DB, roomIDs []uint) error {
	var locked []models.Room
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", roomIDs).
		Find(&locked).Error
}

// checkRoomsTx re-runs the availability decision for every room inside a
// transaction. Callers must have locked the room rows first; this is the
// authoritative gate against the check-then-create race.
func (s *AvailabilityService) checkRoomsTx(tx *gorm.DB, roomIDs []uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	for _, id := range roomIDs {
		free, err := s.isRoomFree(tx, id, checkIn, checkOut, excludeID)
		if err != nil {
			return false, err
		}
		if !free {
			return false, nil
		}
	}
	return true, nil
}

// CheckRooms runs the per-room check and quote for an explicit room list and
// aggregates them into a single decision. The per-room checks are read-only
// and order-independent. Fails with ErrRoomNotFound when any ID is unknown.
func (s *AvailabilityService) CheckRooms(roomIDs []uint, checkIn, checkOut time.Time, isTourist bool) (*MultiRoomDecision, error) {
	nights, err := utils.Nights(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	in := utils.NormalizeDate(checkIn)
	out := utils.NormalizeDate(checkOut)

	rooms, err := s.Rooms.FindRoomsByIDs(roomIDs)
	if err != nil {
		return nil, err
	}

	quotes := make([]RoomQuote, 0, len(rooms))
	for _, room := range rooms {
		free, err := s.IsRoomAvailable(room.ID, in, out)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, RoomQuote{
			RoomID:       room.ID,
			RoomNumber:   room.RoomNumber,
			RoomType:     room.Type,
			MaxOccupancy: room.MaxOccupancy,
			Available:    free,
			Quote:        s.Pricing.QuoteStay(room, in, nights, isTourist),
		})
	}

	decision := AggregateQuotes(quotes, nights)
	return &decision, nil
}

// AggregateQuotes folds per-room results: allAvailable is the AND of the
// individual availabilities, totals are sums. Nights is shared since every
// room covers the same candidate interval.
func AggregateQuotes(quotes []RoomQuote, nights int) MultiRoomDecision {
	d := MultiRoomDecision{AllAvailable: true, Nights: nights, Rooms: quotes}
	for _, q := range quotes {
		d.AllAvailable = d.AllAvailable && q.Available
		d.TotalBasePrice += q.Quote.BasePrice
		d.TotalVAT += q.Quote.VATAmount
		d.TotalPrice += q.Quote.TotalPrice
	}
	return d
}

// Search scans all active rooms with enough capacity, keeps the ones free in
// the interval and returns them priced, cheapest first. When exactly one room
// is requested for 1-2 guests the list is reduced to the cheapest room of
// each distinct type.
func (s *AvailabilityService) Search(p SearchParams) ([]RoomQuote, error) {
	nights, err := utils.Nights(p.CheckIn, p.CheckOut)
	if err != nil {
		return nil, err
	}
	in := utils.NormalizeDate(p.CheckIn)
	out := utils.NormalizeDate(p.CheckOut)

	guests := p.Guests
	if guests < 1 {
		guests = 1
	}
	roomsWanted := p.Rooms
	if roomsWanted < 1 {
		roomsWanted = 1
	}
	guestsPerRoom := (guests + roomsWanted - 1) / roomsWanted

	active, err := s.Rooms.FindActiveRooms()
	if err != nil {
		return nil, err
	}

	results := make([]RoomQuote, 0, len(active))
	for i := range active {
		room := &active[i]
		if room.MaxOccupancy < guestsPerRoom {
			continue
		}
		free, err := s.IsRoomAvailable(room.ID, in, out)
		if err != nil {
			return nil, err
		}
		if !free {
			continue
		}
		results = append(results, RoomQuote{
			RoomID:       room.ID,
			RoomNumber:   room.RoomNumber,
			RoomType:     room.Type,
			MaxOccupancy: room.MaxOccupancy,
			Available:    true,
			Quote:        s.Pricing.QuoteStay(room, in, nights, p.IsTourist),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Quote.TotalPrice < results[j].Quote.TotalPrice
	})

	if roomsWanted == 1 && guests <= 2 {
		results = CheapestPerType(results)
	}
	return results, nil
}

// CheapestPerType keeps only the first (cheapest, input must be price-sorted)
// room of each distinct room type, so the guest isn't flooded with
// near-identical options.
func CheapestPerType(quotes []RoomQuote) []RoomQuote {
	seen := map[string]struct{}{}
	out := make([]RoomQuote, 0, len(quotes))
	for _, q := range quotes {
		if _, ok := seen[q.RoomType]; ok {
			continue
		}
		seen[q.RoomType] = struct{}{}
		out = append(out, q)
	}
	return out
}
