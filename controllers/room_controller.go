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

type RoomAllocationController struct {
	PricingSvc   *services.PricingService
	AllocatorSvc *services.RoomAllocationService
	Competitors  services.CompetitorSource
	Publisher    services.AllocationPublisher

	FetchTimeout         time.Duration
	DefaultOccupancyRate int

	log *slog.Logger
}

func NewRoomAllocationController(
	pricing *services.PricingService,
	allocator *services.RoomAllocationService,
	competitors services.CompetitorSource,
	publisher services.AllocationPublisher,
	fetchTimeout time.Duration,
	defaultOccupancyRate int,
	log *slog.Logger,
) *RoomAllocationController {
	if pricing == nil || allocator == nil || competitors == nil {
		panic("nil dependency passed to NewRoomAllocationController")
	}
	if log == nil {
		log = slog.Default()
	}
	return &RoomAllocationController{
		PricingSvc:           pricing,
		AllocatorSvc:         allocator,
		Competitors:          competitors,
		Publisher:            publisher,
		FetchTimeout:         fetchTimeout,
		DefaultOccupancyRate: defaultOccupancyRate,
		log:                  log,
	}
}

// BookRoom (POST /api/roomallocation/book-room)
//
// The request has no occupancy rate, so the nightly price uses the configured
// default occupancy and the automatic competitor adjustment.
func (ctrl *RoomAllocationController) BookRoom(c *gin.Context) {
	var req models.RoomAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONBindError(c, http.StatusBadRequest, err)
		return
	}

	records, ok := fetchCompetitorRecords(c, ctrl.Competitors, ctrl.FetchTimeout, ctrl.log)
	if !ok {
		return
	}

	pricingReq := models.PricingRequest{
		RoomType:      req.RoomType,
		Season:        req.Season,
		OccupancyRate: ctrl.DefaultOccupancyRate,
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

	resp := ctrl.AllocatorSvc.AllocateRoom(req, pricing)
	if !resp.Allocated() {
		utils.JSONError(c, http.StatusBadRequest, fmt.Sprintf("Room for %s is not available.", req.RoomType))
		return
	}

	publishAllocation(c, ctrl.Publisher,
		services.NewRoomAllocatedEvent(resp, req.Season, req.Nights, pricing.AdjustedPrice, "book-room"), ctrl.log)
	c.JSON(http.StatusOK, resp)
}

// ResetRoomAvailability (POST /api/roomallocation/reset)
func (ctrl *RoomAllocationController) ResetRoomAvailability(c *gin.Context) {
	ctrl.AllocatorSvc.ResetRoomAvailability()
	utils.JSONSuccess(c, http.StatusOK, "Room availability has been reset.")
}

// GetRooms (GET /api/roomallocation/rooms)
func (ctrl *RoomAllocationController) GetRooms(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.AllocatorSvc.Rooms())
}
