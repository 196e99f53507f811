package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"hotel-pricing/models"
	"hotel-pricing/services"
	"hotel-pricing/utils"

	"github.com/gin-gonic/gin"
)

type PricingController struct {
	PricingSvc   *services.PricingService
	Competitors  services.CompetitorSource
	FetchTimeout time.Duration
	log          *slog.Logger
}

func NewPricingController(pricing *services.PricingService, competitors services.CompetitorSource, fetchTimeout time.Duration, log *slog.Logger) *PricingController {
	if pricing == nil || competitors == nil {
		panic("nil dependency passed to NewPricingController")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PricingController{PricingSvc: pricing, Competitors: competitors, FetchTimeout: fetchTimeout, log: log}
}

// CalculatePrice (POST /api/pricing/calculate-price)
//
// Uses the named competitors when competitorNames is given, otherwise every
// competitor with the same room type and season.
func (ctrl *PricingController) CalculatePrice(c *gin.Context) {
	var req models.PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONBindError(c, http.StatusBadRequest, err)
		return
	}

	records, ok := fetchCompetitorRecords(c, ctrl.Competitors, ctrl.FetchTimeout, ctrl.log)
	if !ok {
		return
	}

	var (
		adjustment float64
		err        error
	)
	if len(req.CompetitorNames) > 0 {
		adjustment, err = ctrl.PricingSvc.GetCompetitorAdjustment(records, &req)
	} else {
		adjustment, err = ctrl.PricingSvc.GetCompetitorAdjustmentAuto(records, &req)
	}
	if err != nil {
		respondPricingError(c, err, ctrl.log)
		return
	}

	resp, err := ctrl.PricingSvc.CalculateAdjustedPrice(&req, adjustment)
	if err != nil {
		respondPricingError(c, err, ctrl.log)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCompetitors (GET /api/pricing/competitors)
func (ctrl *PricingController) GetCompetitors(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctrl.FetchTimeout)
	defer cancel()

	names, err := ctrl.Competitors.Names(ctx)
	if err != nil {
		ctrl.log.Error("error fetching competitor names", "error", err)
		utils.JSONError(c, http.StatusInternalServerError, "Error fetching competitor names")
		return
	}
	c.JSON(http.StatusOK, gin.H{"competitors": names})
}
