package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"hotel-pricing/models"
	"hotel-pricing/services"
	"hotel-pricing/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	PricingSvc   *services.PricingService
	AllocatorSvc *services.RoomAllocationService
	Competitors  services.CompetitorSource
	Publisher    services.AllocationPublisher
	FetchTimeout time.Duration
	log          *slog.Logger
}

func NewBookingController(
	pricing *services.PricingService,
	allocator *services.RoomAllocationService,
	competitors services.CompetitorSource,
	publisher services.AllocationPublisher,
	fetchTimeout time.Duration,
	log *slog.Logger,
) *BookingController {
	if pricing == nil || allocator == nil || competitors == nil {
		panic("nil dependency passed to NewBookingController")
	}
	if log == nil {
		log = slog.Default()
	}
	return &BookingController{
		PricingSvc:   pricing,
		AllocatorSvc: allocator,
		Competitors:  competitors,
		Publisher:    publisher,
		FetchTimeout: fetchTimeout,
		log:          log,
	}
}

// BookRooms (POST /api/booking/booking-rooms)
//
// Requests are processed in order. The first one that cannot be allocated
// ends the batch with 400; rooms allocated before it stay allocated.
func (ctrl *BookingController) BookRooms(c *gin.Context) {
	var reqs []models.BookingRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		utils.JSONBindError(c, http.StatusBadRequest, err)
		return
	}
	if len(reqs) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "At least one booking request is required.")
		return
	}

	records, ok := fetchCompetitorRecords(c, ctrl.Competitors, ctrl.FetchTimeout, ctrl.log)
	if !ok {
		return
	}

	allocations := make([]models.RoomAllocationResponse, 0, len(reqs))
	for _, req := range reqs {
		pricingReq := models.PricingRequest{
			RoomType:      req.RoomType,
			Season:        req.Season,
			OccupancyRate: req.OccupancyRate,
		}
		adjustment, err := ctrl.PricingSvc.GetCompetitorAdjustmentAuto(records, &pricingReq)
		if err != nil {
			respondPricingError(c, err, ctrl.log)
			return
		}
		pricing, err := ctrl.PricingSvc.CalculateAdjustedPrice(&pricingReq, adjustment)
		if err != nil {
			respondPricingError(c, err, ctrl.log)
			return
		}

		resp := ctrl.AllocatorSvc.AllocateRoomWhenBooking(req, pricing)
		if !resp.Allocated() {
			utils.JSONError(c, http.StatusBadRequest, fmt.Sprintf("Room for %s is not available.", req.RoomType))
			return
		}
		publishAllocation(c, ctrl.Publisher,
			services.NewRoomAllocatedEvent(resp, req.Season, req.Nights, pricing.AdjustedPrice, "booking-rooms"), ctrl.log)
		allocations = append(allocations, resp)
	}

	c.JSON(http.StatusOK, gin.H{"allocations": allocations})
}
