package services

import (
	"log/slog"
	"sync"

	"hotel-pricing/models"

	"github.com/shopspring/decimal"
)

var preferredViewFactors = map[models.PreferredView]float64{
	models.ViewSea:    0.05,
	models.ViewGarden: 0.02,
	models.ViewCity:   0.03,
}

var connectingRoomFactors = map[bool]float64{
	true:  0.05,
	false: 0,
}

// RoomAllocationService owns the room inventory. All availability checks and
// updates happen under mu, so two callers can never claim the same room.
type RoomAllocationService struct {
	mu    sync.Mutex
	rooms map[models.RoomType]*models.Room
	log   *slog.Logger
}

// NewRoomAllocationService creates an allocator over the default inventory.
func NewRoomAllocationService(logger *slog.Logger) *RoomAllocationService {
	if logger == nil {
		logger = slog.Default()
	}
	rooms := make(map[models.RoomType]*models.Room)
	for _, r := range models.DefaultRooms() {
		room := r
		rooms[room.RoomType] = &room
	}
	return &RoomAllocationService{rooms: rooms, log: logger}
}

// AllocateRoom reserves the room of the requested type if it is free and
// matches the special requests.
func (s *RoomAllocationService) AllocateRoom(req models.RoomAllocationRequest, pricing models.PricingResponse) models.RoomAllocationResponse {
	return s.allocate(req.RoomType, req.Nights, req.SpecialRequests, pricing.AdjustedPrice)
}

// AllocateRoomWhenBooking is AllocateRoom for the multi-room booking shape.
func (s *RoomAllocationService) AllocateRoomWhenBooking(req models.BookingRequest, pricing models.PricingResponse) models.RoomAllocationResponse {
	return s.allocate(req.RoomType, req.Nights, req.SpecialRequests, pricing.AdjustedPrice)
}

func (s *RoomAllocationService) allocate(rt models.RoomType, nights int, special models.SpecialRequests, nightlyPrice float64) models.RoomAllocationResponse {
	if nights < 1 {
		s.log.Warn("invalid number of nights", "room_type", rt, "nights", nights)
		return unavailable(rt, special)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[rt]
	if !ok {
		s.log.Warn("room type not found", "room_type", rt)
		return unavailable(rt, special)
	}
	if !room.IsAvailable ||
		room.HasConnectingRooms != special.ConnectingRoom ||
		room.AvailableView != special.PreferredView {
		s.log.Warn("room does not match special requests",
			"room_id", room.ID, "room_type", rt, "available", room.IsAvailable,
			"preferred_view", special.PreferredView, "connecting_room", special.ConnectingRoom)
		return unavailable(rt, special)
	}

	room.IsAvailable = false
	total := stayPrice(nightlyPrice, nights, special)
	s.log.Info("room allocated", "room_id", room.ID, "room_type", rt, "nights", nights, "total_price", total)

	return models.RoomAllocationResponse{
		RoomType:        rt,
		AllocatedRoomID: room.ID,
		TotalPrice:      total,
		SpecialRequests: special,
	}
}

// ResetRoomAvailability marks every room available again.
func (s *RoomAllocationService) ResetRoomAvailability() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, room := range s.rooms {
		room.IsAvailable = true
	}
	s.log.Info("room availability has been reset")
}

// Rooms returns a snapshot of the inventory ordered by room id.
func (s *RoomAllocationService) Rooms() []models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Room, 0, len(s.rooms))
	for _, def := range models.DefaultRooms() {
		if room, ok := s.rooms[def.RoomType]; ok {
			out = append(out, *room)
		}
	}
	return out
}

func stayPrice(nightly float64, nights int, special models.SpecialRequests) float64 {
	factor := decimal.NewFromInt(1).
		Add(decimal.NewFromFloat(preferredViewFactors[special.PreferredView])).
		Add(decimal.NewFromFloat(connectingRoomFactors[special.ConnectingRoom]))
	total := decimal.NewFromFloat(nightly).Mul(decimal.NewFromInt(int64(nights))).Mul(factor)
	return roundPrice(total)
}

func unavailable(rt models.RoomType, special models.SpecialRequests) models.RoomAllocationResponse {
	return models.RoomAllocationResponse{
		RoomType:        rt,
		AllocatedRoomID: models.NoRoomAllocated,
		TotalPrice:      0,
		SpecialRequests: special,
	}
}
