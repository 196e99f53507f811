package models

// PricingRequest asks for the nightly price of a room type. CompetitorNames
// restricts which competitors are compared against.
type PricingRequest struct {
	RoomType        RoomType `json:"roomType" binding:"required"`
	Season          Season   `json:"season" binding:"required"`
	OccupancyRate   int      `json:"occupancyRate" binding:"min=0,max=100"`
	CompetitorNames []string `json:"competitorNames,omitempty"`
}

// PricingResponse carries the base and adjusted nightly price.
type PricingResponse struct {
	RoomType      RoomType `json:"roomType"`
	BasePrice     float64  `json:"basePrice"`
	AdjustedPrice float64  `json:"adjustedPrice"`
}

// CompetitorPriceRecord is one row of competitor market data. Only RoomType,
// Season, OccupancyRate, BasePrice and CompetitorName matter for pricing.
type CompetitorPriceRecord struct {
	Title               string  `json:"title,omitempty"`
	Date                string  `json:"date,omitempty"`
	RoomType            string  `json:"roomType"`
	Season              string  `json:"season"`
	OccupancyRate       int     `json:"occupancyRate"`
	BasePrice           float64 `json:"basePrice"`
	CompetitorName      string  `json:"competitor"`
	ID                  int     `json:"id,omitempty"`
	HaveConnectingRooms bool    `json:"haveConnectingRooms,omitempty"`
	AvailableViews      string  `json:"availableViews,omitempty"`
}
