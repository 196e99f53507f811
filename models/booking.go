package models

// NoRoomAllocated is the AllocatedRoomID of a request that matched no room.
const NoRoomAllocated = -1

type SpecialRequests struct {
	PreferredView  PreferredView `json:"preferredView"`
	ConnectingRoom bool          `json:"connectingRoom"`
}

// RoomAllocationRequest is the single-room booking shape.
type RoomAllocationRequest struct {
	RoomType        RoomType        `json:"roomType" binding:"required"`
	Season          Season          `json:"season" binding:"required"`
	Nights          int             `json:"nights" binding:"required,min=1"`
	SpecialRequests SpecialRequests `json:"specialRequests"`
}

// BookingRequest is one entry of a multi-room booking. Unlike
// RoomAllocationRequest it carries the occupancy rate used for pricing.
type BookingRequest struct {
	RoomType        RoomType        `json:"roomType" binding:"required"`
	Season          Season          `json:"season" binding:"required"`
	Nights          int             `json:"nights" binding:"required,min=1"`
	OccupancyRate   int             `json:"occupancyRate" binding:"min=0,max=100"`
	SpecialRequests SpecialRequests `json:"specialRequests"`
}

type RoomAllocationResponse struct {
	RoomType        RoomType        `json:"roomType"`
	AllocatedRoomID int             `json:"allocatedRoomId"`
	TotalPrice      float64         `json:"totalPrice"`
	SpecialRequests SpecialRequests `json:"specialRequests"`
}

// Allocated reports whether a room was reserved.
func (r RoomAllocationResponse) Allocated() bool {
	return r.AllocatedRoomID != NoRoomAllocated
}
