package services_test

import (
	"hotel-pricing/models"
	"hotel-pricing/services"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PricingService", func() {
	var svc *services.PricingService

	BeforeEach(func() {
		svc = services.NewPricingService(testLogger())
	})

	Describe("CalculateAdjustedPrice", func() {
		It("combines seasonality, occupancy and the competitor adjustment", func() {
			resp, err := svc.CalculateAdjustedPrice(&models.PricingRequest{
				RoomType:      models.RoomTypeDeluxe,
				Season:        models.SeasonPeak,
				OccupancyRate: 50,
			}, 0.05)
			Ω(err).ShouldNot(HaveOccurred())
			Ω(resp.RoomType).Should(Equal(models.RoomTypeDeluxe))
			Ω(resp.BasePrice).Should(Equal(140.0))
			Ω(resp.AdjustedPrice).Should(Equal(189.0))
		})

		It("rejects an unknown room type", func() {
			_, err := svc.CalculateAdjustedPrice(&models.PricingRequest{
				RoomType: "Penthouse",
				Season:   models.SeasonPeak,
			}, 0)
			Ω(err).Should(MatchError(services.ErrInvalidArgument))
			Ω(err.Error()).Should(ContainSubstring("Penthouse"))
		})

		It("rejects a nil request", func() {
			_, err := svc.CalculateAdjustedPrice(nil, 0)
			Ω(err).Should(MatchError(services.ErrInvalidArgument))
		})

		DescribeTable("occupancy bands",
			func(rate int, expected float64) {
				resp, err := svc.CalculateAdjustedPrice(&models.PricingRequest{
					RoomType:      models.RoomTypeStandard,
					Season:        models.SeasonOff,
					OccupancyRate: rate,
				}, 0)
				Ω(err).ShouldNot(HaveOccurred())
				Ω(resp.AdjustedPrice).Should(Equal(expected))
			},
			Entry("empty hotel", 0, 63.0),
			Entry("at 30", 30, 63.0),
			Entry("at 31", 31, 72.0),
			Entry("at 70", 70, 72.0),
			Entry("at 71", 71, 90.0),
			Entry("full", 100, 90.0),
		)

		It("prices a discounted suite in peak season", func() {
			resp, err := svc.CalculateAdjustedPrice(&models.PricingRequest{
				RoomType:      models.RoomTypeSuite,
				Season:        models.SeasonPeak,
				OccupancyRate: 80,
			}, -0.10)
			Ω(err).ShouldNot(HaveOccurred())
			Ω(resp.AdjustedPrice).Should(Equal(336.0))
		})

		It("matches the formula for every room, season and band", func() {
			seasonal := map[models.Season]float64{models.SeasonOff: -0.20, models.SeasonPeak: 0.30}
			occupancy := map[int]float64{10: -0.10, 50: 0, 90: 0.20}
			for _, rt := range models.RoomTypes {
				base, ok := services.BasePrice(rt)
				Ω(ok).Should(BeTrue())
				for season, sf := range seasonal {
					for rate, of := range occupancy {
						for _, adj := range []float64{-0.10, 0, 0.10} {
							resp, err := svc.CalculateAdjustedPrice(&models.PricingRequest{
								RoomType: rt, Season: season, OccupancyRate: rate,
							}, adj)
							Ω(err).ShouldNot(HaveOccurred())
							Ω(resp.AdjustedPrice).Should(BeNumerically("~", base*(1+sf+of+adj), 0.005),
								"%s %s %d %.2f", rt, season, rate, adj)
						}
					}
				}
			}
		})
	})

	Describe("competitor adjustments", func() {
		var records []models.CompetitorPriceRecord

		BeforeEach(func() {
			records = []models.CompetitorPriceRecord{
				{CompetitorName: "Harbour Inn", RoomType: "Deluxe", Season: "Peak Season", OccupancyRate: 60, BasePrice: 200},
				{CompetitorName: "City Lights", RoomType: "Deluxe", Season: "Peak Season", OccupancyRate: 55, BasePrice: 100},
				{CompetitorName: "Harbour Inn", RoomType: "Deluxe", Season: "Peak Season", OccupancyRate: 85, BasePrice: 100},
				{CompetitorName: "Harbour Inn", RoomType: "Standard", Season: "Peak Season", OccupancyRate: 60, BasePrice: 500},
				{CompetitorName: "Harbour Inn", RoomType: "Deluxe", Season: "Off-Season", OccupancyRate: 60, BasePrice: 500},
			}
		})

		request := func(names ...string) *models.PricingRequest {
			return &models.PricingRequest{
				RoomType:        models.RoomTypeDeluxe,
				Season:          models.SeasonPeak,
				OccupancyRate:   50,
				CompetitorNames: names,
			}
		}

		Context("with named competitors", func() {
			It("raises the price when the named competitors charge more", func() {
				adj, err := svc.GetCompetitorAdjustment(records, request("Harbour Inn"))
				Ω(err).ShouldNot(HaveOccurred())
				Ω(adj).Should(Equal(0.10))
			})

			It("lowers the price when they charge less", func() {
				adj, err := svc.GetCompetitorAdjustment(records, request("City Lights"))
				Ω(err).ShouldNot(HaveOccurred())
				Ω(adj).Should(Equal(-0.10))
			})

			It("averages every named competitor in the same band", func() {
				adj, err := svc.GetCompetitorAdjustment(records, request("Harbour Inn", "City Lights"))
				Ω(err).ShouldNot(HaveOccurred())
				Ω(adj).Should(Equal(0.10))
			})

			It("returns zero when no names are given", func() {
				adj, err := svc.GetCompetitorAdjustment(records, request())
				Ω(err).ShouldNot(HaveOccurred())
				Ω(adj).Should(BeZero())
			})

			It("returns zero when the market average equals the base price", func() {
				adj, err := svc.GetCompetitorAdjustment([]models.CompetitorPriceRecord{
					{CompetitorName: "Harbour Inn", RoomType: "Deluxe", Season: "PeakSeason", OccupancyRate: 50, BasePrice: 140},
				}, request("Harbour Inn"))
				Ω(err).ShouldNot(HaveOccurred())
				Ω(adj).Should(BeZero())
			})
		})

		Context("automatically", func() {
			It("uses every competitor with the same room type and season", func() {
				adj, err := svc.GetCompetitorAdjustmentAuto(records, request())
				Ω(err).ShouldNot(HaveOccurred())
				Ω(adj).Should(Equal(-0.10))
			})

			It("matches room types case-insensitively", func() {
				adj, err := svc.GetCompetitorAdjustmentAuto([]models.CompetitorPriceRecord{
					{RoomType: "deluxe", Season: "peak season", BasePrice: 300},
				}, request())
				Ω(err).ShouldNot(HaveOccurred())
				Ω(adj).Should(Equal(0.10))
			})
		})

		It("treats matched rows without a price as no market data", func() {
			unpriced := []models.CompetitorPriceRecord{
				{CompetitorName: "Harbour Inn", RoomType: "Deluxe", Season: "Peak Season", OccupancyRate: 50},
			}
			adj, err := svc.GetCompetitorAdjustmentAuto(unpriced, request())
			Ω(err).ShouldNot(HaveOccurred())
			Ω(adj).Should(BeZero())

			adj, err = svc.GetCompetitorAdjustment(unpriced, request("Harbour Inn"))
			Ω(err).ShouldNot(HaveOccurred())
			Ω(adj).Should(BeZero())
		})

		It("lets unpriced rows pull down the average of priced ones", func() {
			mixed := []models.CompetitorPriceRecord{
				{CompetitorName: "Harbour Inn", RoomType: "Deluxe", Season: "Peak Season", OccupancyRate: 50, BasePrice: 200},
				{CompetitorName: "City Lights", RoomType: "Deluxe", Season: "Peak Season", OccupancyRate: 50},
			}
			adj, err := svc.GetCompetitorAdjustmentAuto(mixed, request())
			Ω(err).ShouldNot(HaveOccurred())
			Ω(adj).Should(Equal(-0.10))
		})

		It("returns zero for an empty record list", func() {
			adj, err := svc.GetCompetitorAdjustment([]models.CompetitorPriceRecord{}, request("Harbour Inn"))
			Ω(err).ShouldNot(HaveOccurred())
			Ω(adj).Should(BeZero())

			adj, err = svc.GetCompetitorAdjustmentAuto([]models.CompetitorPriceRecord{}, request())
			Ω(err).ShouldNot(HaveOccurred())
			Ω(adj).Should(BeZero())
		})

		It("returns zero for an unknown room type", func() {
			adj, err := svc.GetCompetitorAdjustmentAuto(records, &models.PricingRequest{RoomType: "Penthouse", Season: models.SeasonPeak})
			Ω(err).ShouldNot(HaveOccurred())
			Ω(adj).Should(BeZero())
		})

		It("rejects missing arguments", func() {
			_, err := svc.GetCompetitorAdjustment(nil, request("Harbour Inn"))
			Ω(err).Should(MatchError(services.ErrInvalidArgument))

			_, err = svc.GetCompetitorAdjustmentAuto(records, nil)
			Ω(err).Should(MatchError(services.ErrInvalidArgument))
		})

		It("always stays within ten percent", func() {
			for _, price := range []float64{0.01, 50, 139.99, 140, 140.01, 10000} {
				recs := []models.CompetitorPriceRecord{{RoomType: "Deluxe", Season: "Peak Season", BasePrice: price}}
				adj, err := svc.GetCompetitorAdjustmentAuto(recs, request())
				Ω(err).ShouldNot(HaveOccurred())
				Ω(adj).Should(BeNumerically(">=", -0.10))
				Ω(adj).Should(BeNumerically("<=", 0.10))
			}
		})
	})
})
