package models_test

import (
	"hotel-pricing/models"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CompetitorPrice", func() {
	record := models.CompetitorPriceRecord{
		Title:               "Harbour View Deluxe",
		Date:                "2024-07-12",
		RoomType:            "Deluxe",
		Season:              "Peak Season",
		OccupancyRate:       85,
		BasePrice:           190,
		CompetitorName:      "Harbour Inn",
		ID:                  1,
		HaveConnectingRooms: true,
		AvailableViews:      "sea",
	}

	It("converts to and from the pricing record", func() {
		row := models.NewCompetitorPrice(record)
		Ω(row.Competitor).Should(Equal("Harbour Inn"))
		Ω(row.ExternalID).Should(Equal(1))
		Ω(row.Date).ShouldNot(BeNil())
		Ω(row.Record()).Should(Equal(record))
	})

	It("drops dates it cannot parse", func() {
		r := record
		r.Date = "12/07/2024"
		row := models.NewCompetitorPrice(r)
		Ω(row.Date).Should(BeNil())
		Ω(row.Record().Date).Should(BeEmpty())
	})
})

var _ = Describe("DefaultRooms", func() {
	It("returns a fresh inventory each time", func() {
		rooms := models.DefaultRooms()
		Ω(rooms).Should(HaveLen(3))
		rooms[0].IsAvailable = false
		Ω(models.DefaultRooms()[0].IsAvailable).Should(BeTrue())
	})
})
