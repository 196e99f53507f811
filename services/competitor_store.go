package services

import (
	"context"
	"fmt"
	"log/slog"

	"hotel-pricing/models"

	"gorm.io/gorm"
)

// GormCompetitorSource reads competitor prices from the competitor_prices
// table.
type GormCompetitorSource struct {
	DB  *gorm.DB
	log *slog.Logger
}

func NewGormCompetitorSource(db *gorm.DB, logger *slog.Logger) *GormCompetitorSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormCompetitorSource{DB: db, log: logger}
}

func (s *GormCompetitorSource) Records(ctx context.Context) ([]models.CompetitorPriceRecord, error) {
	var rows []models.CompetitorPrice
	if err := s.DB.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		s.log.Error("error reading competitor prices", "error", err)
		return nil, fmt.Errorf("%w: query competitor_prices: %v", ErrExternalSourceUnavailable, err)
	}
	records := make([]models.CompetitorPriceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record())
	}
	s.log.Info("read competitor prices", "table", "competitor_prices", "count", len(records))
	return records, nil
}

func (s *GormCompetitorSource) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := s.DB.WithContext(ctx).
		Model(&models.CompetitorPrice{}).
		Where("competitor <> ?", "").
		Distinct().
		Order("competitor").
		Pluck("competitor", &names).Error
	if err != nil {
		s.log.Error("error reading competitor names", "error", err)
		return nil, fmt.Errorf("%w: query competitor names: %v", ErrExternalSourceUnavailable, err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Import inserts records in batches inside one transaction.
func (s *GormCompetitorSource) Import(ctx context.Context, records []models.CompetitorPriceRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]models.CompetitorPrice, 0, len(records))
	for _, r := range records {
		rows = append(rows, models.NewCompetitorPrice(r))
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&rows, 200).Error; err != nil {
			return fmt.Errorf("failed to import competitor prices: %w", err)
		}
		return nil
	})
}

// Count returns the number of stored competitor rows.
func (s *GormCompetitorSource) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.CompetitorPrice{}).Count(&n).Error
	return n, err
}
