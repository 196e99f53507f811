package services

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"hotel-pricing/models"

	"github.com/shopspring/decimal"
)

var basePrices = map[models.RoomType]float64{
	models.RoomTypeStandard: 90,
	models.RoomTypeDeluxe:   140,
	models.RoomTypeSuite:    240,
}

var seasonalityFactors = map[models.Season]float64{
	models.SeasonOff:  -0.20,
	models.SeasonPeak: 0.30,
}

const (
	minCompetitorAdjustment = -0.10
	maxCompetitorAdjustment = 0.10
)

// PricingService computes nightly prices. It holds no mutable state and is
// safe for concurrent use.
type PricingService struct {
	log *slog.Logger
}

func NewPricingService(logger *slog.Logger) *PricingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PricingService{log: logger}
}

// BasePrice returns the list price of a known room type.
func BasePrice(rt models.RoomType) (float64, bool) {
	p, ok := basePrices[rt]
	return p, ok
}

// CalculateAdjustedPrice applies seasonality, occupancy and the given
// competitor adjustment to the room type's base price.
func (s *PricingService) CalculateAdjustedPrice(req *models.PricingRequest, competitorAdjustment float64) (models.PricingResponse, error) {
	if req == nil {
		return models.PricingResponse{}, fmt.Errorf("%w: pricing request is required", ErrInvalidArgument)
	}
	base, ok := basePrices[req.RoomType]
	if !ok {
		return models.PricingResponse{}, fmt.Errorf("%w: invalid room type %q", ErrInvalidArgument, req.RoomType)
	}

	factor := decimal.NewFromInt(1).
		Add(decimal.NewFromFloat(seasonalityFactors[req.Season])).
		Add(decimal.NewFromFloat(occupancyRateFactor(req.OccupancyRate))).
		Add(decimal.NewFromFloat(competitorAdjustment))
	adjusted := decimal.NewFromFloat(base).Mul(factor)

	resp := models.PricingResponse{
		RoomType:      req.RoomType,
		BasePrice:     base,
		AdjustedPrice: roundPrice(adjusted),
	}
	s.log.Debug("price calculated",
		"room_type", req.RoomType, "season", req.Season, "occupancy", req.OccupancyRate,
		"competitor_adjustment", competitorAdjustment, "adjusted_price", resp.AdjustedPrice)
	return resp, nil
}

// GetCompetitorAdjustment compares the base price with competitors named in
// the request, for the same room type, season and occupancy band.
func (s *PricingService) GetCompetitorAdjustment(records []models.CompetitorPriceRecord, req *models.PricingRequest) (float64, error) {
	if err := checkAdjustmentArgs(records, req); err != nil {
		return 0, err
	}
	band := occupancyBand(req.OccupancyRate)
	var prices []float64
	for _, cp := range records {
		if matchesRoomAndSeason(cp, req) &&
			occupancyBand(cp.OccupancyRate) == band &&
			slices.Contains(req.CompetitorNames, cp.CompetitorName) {
			prices = append(prices, cp.BasePrice)
		}
	}
	adj := signAdjustment(mean(prices), req.RoomType)
	s.log.Debug("competitor adjustment", "room_type", req.RoomType, "matched", len(prices), "adjustment", adj)
	return adj, nil
}

// GetCompetitorAdjustmentAuto is GetCompetitorAdjustment without the
// occupancy and competitor-name filters.
func (s *PricingService) GetCompetitorAdjustmentAuto(records []models.CompetitorPriceRecord, req *models.PricingRequest) (float64, error) {
	if err := checkAdjustmentArgs(records, req); err != nil {
		return 0, err
	}
	var prices []float64
	for _, cp := range records {
		if matchesRoomAndSeason(cp, req) {
			prices = append(prices, cp.BasePrice)
		}
	}
	adj := signAdjustment(mean(prices), req.RoomType)
	s.log.Debug("automatic competitor adjustment", "room_type", req.RoomType, "matched", len(prices), "adjustment", adj)
	return adj, nil
}

func checkAdjustmentArgs(records []models.CompetitorPriceRecord, req *models.PricingRequest) error {
	if records == nil {
		return fmt.Errorf("%w: competitor prices are required", ErrInvalidArgument)
	}
	if req == nil {
		return fmt.Errorf("%w: pricing request is required", ErrInvalidArgument)
	}
	return nil
}

func matchesRoomAndSeason(cp models.CompetitorPriceRecord, req *models.PricingRequest) bool {
	if !strings.EqualFold(strings.TrimSpace(cp.RoomType), string(req.RoomType)) {
		return false
	}
	season, ok := models.ParseSeason(cp.Season)
	return ok && season == req.Season
}

// signAdjustment moves the price one fixed step toward the market, never
// proportionally to the gap. An average of zero counts as no market data, so
// matched rows whose price was missing (parsed as 0) only matter when mixed
// with priced rows, where they pull the mean down.
func signAdjustment(avg float64, rt models.RoomType) float64 {
	base, ok := basePrices[rt]
	if !ok || avg == 0 {
		return 0
	}
	var adj float64
	switch {
	case avg > base:
		adj = maxCompetitorAdjustment
	case avg < base:
		adj = minCompetitorAdjustment
	}
	return clamp(adj, minCompetitorAdjustment, maxCompetitorAdjustment)
}

func occupancyRateFactor(rate int) float64 {
	switch occupancyBand(rate) {
	case 0:
		return -0.10
	case 1:
		return 0.00
	}
	return 0.20
}

// occupancyBand buckets a rate into <=30, 31-70 and >70.
func occupancyBand(rate int) int {
	switch {
	case rate <= 30:
		return 0
	case rate <= 70:
		return 1
	}
	return 2
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// roundPrice rounds to cents, half away from zero.
func roundPrice(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
