package models

// Room is one physical room in the fixed inventory. IsAvailable is the only
// field that changes after startup.
type Room struct {
	ID                 int           `json:"id"`
	RoomType           RoomType      `json:"roomType"`
	HasConnectingRooms bool          `json:"hasConnectingRooms"`
	AvailableView      PreferredView `json:"availableView"`
	IsAvailable        bool          `json:"isAvailable"`
}

// DefaultRooms returns a fresh copy of the hotel's three rooms, all available.
func DefaultRooms() []Room {
	return []Room{
		{ID: 101, RoomType: RoomTypeDeluxe, HasConnectingRooms: false, AvailableView: ViewSea, IsAvailable: true},
		{ID: 202, RoomType: RoomTypeStandard, HasConnectingRooms: true, AvailableView: ViewGarden, IsAvailable: true},
		{ID: 301, RoomType: RoomTypeSuite, HasConnectingRooms: false, AvailableView: ViewCity, IsAvailable: true},
	}
}
