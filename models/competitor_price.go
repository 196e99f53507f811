package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompetitorPrice is the competitor_prices table backing the MySQL
// competitor source.
type CompetitorPrice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title               string          `gorm:"type:varchar(255)" json:"title"`
	Date                *datatypes.Date `gorm:"column:date" json:"date,omitempty"`
	RoomType            string          `gorm:"column:room_type;index;type:varchar(50)" json:"roomType"`
	Season              string          `gorm:"column:season;index;type:varchar(50)" json:"season"`
	OccupancyRate       int             `gorm:"column:occupancy_rate" json:"occupancyRate"`
	BasePrice           float64         `gorm:"column:base_price" json:"basePrice"`
	Competitor          string          `gorm:"column:competitor;index;type:varchar(255)" json:"competitor"`
	ExternalID          int             `gorm:"column:external_id" json:"externalId"`
	HaveConnectingRooms bool            `gorm:"column:have_connecting_rooms" json:"haveConnectingRooms"`
	AvailableViews      string          `gorm:"column:available_views;type:varchar(255)" json:"availableViews"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

const competitorDateLayout = "2006-01-02"

// Record converts the row to the pricing engine's record shape.
func (cp CompetitorPrice) Record() CompetitorPriceRecord {
	var date string
	if cp.Date != nil {
		date = time.Time(*cp.Date).Format(competitorDateLayout)
	}
	return CompetitorPriceRecord{
		Title:               cp.Title,
		Date:                date,
		RoomType:            cp.RoomType,
		Season:              cp.Season,
		OccupancyRate:       cp.OccupancyRate,
		BasePrice:           cp.BasePrice,
		CompetitorName:      cp.Competitor,
		ID:                  cp.ExternalID,
		HaveConnectingRooms: cp.HaveConnectingRooms,
		AvailableViews:      cp.AvailableViews,
	}
}

// NewCompetitorPrice builds a row from a record. Dates that don't parse as
// YYYY-MM-DD are dropped.
func NewCompetitorPrice(r CompetitorPriceRecord) CompetitorPrice {
	row := CompetitorPrice{
		Title:               r.Title,
		RoomType:            r.RoomType,
		Season:              r.Season,
		OccupancyRate:       r.OccupancyRate,
		BasePrice:           r.BasePrice,
		Competitor:          r.CompetitorName,
		ExternalID:          r.ID,
		HaveConnectingRooms: r.HaveConnectingRooms,
		AvailableViews:      r.AvailableViews,
	}
	if t, err := time.Parse(competitorDateLayout, r.Date); err == nil {
		d := datatypes.Date(t)
		row.Date = &d
	}
	return row
}
