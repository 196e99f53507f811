package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"hotel-pricing/models"
	"hotel-pricing/services"
	"hotel-pricing/utils"

	"github.com/gin-gonic/gin"
)

const errFetchingCompetitorPrices = "Error fetching competitor prices"

// fetchCompetitorRecords loads competitor data before any pricing or
// allocation happens. On failure it writes the 500 response and returns false.
func fetchCompetitorRecords(c *gin.Context, source services.CompetitorSource, timeout time.Duration, log *slog.Logger) ([]models.CompetitorPriceRecord, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	records, err := source.Records(ctx)
	if err != nil {
		log.Error("error fetching competitor prices", "error", err)
		utils.JSONError(c, http.StatusInternalServerError, errFetchingCompetitorPrices)
		return nil, false
	}
	return records, true
}

// respondPricingError maps a pricing failure to a status code.
func respondPricingError(c *gin.Context, err error, log *slog.Logger) {
	if errors.Is(err, services.ErrInvalidArgument) {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	log.Error("pricing failed", "error", err)
	utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
}

// publishAllocation sends the event in the background; the allocation stands
// whether or not delivery succeeds.
func publishAllocation(c *gin.Context, pub services.AllocationPublisher, event services.RoomAllocatedEvent, log *slog.Logger) {
	if pub == nil {
		return
	}
	ctx := context.WithoutCancel(c.Request.Context())
	go func() {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := pub.PublishRoomAllocated(ctx, event); err != nil {
			log.Warn("room allocated event not published", "room_id", event.RoomID, "error", err)
		}
	}()
}
