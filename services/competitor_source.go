package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"hotel-pricing/models"
)

// CompetitorSource supplies competitor market data. Implementations return
// ErrExternalSourceUnavailable when the data cannot be read.
type CompetitorSource interface {
	Records(ctx context.Context) ([]models.CompetitorPriceRecord, error)
	Names(ctx context.Context) ([]string, error)
}

// CSVCompetitorSource reads competitor prices from a CSV file with a header
// row. Unknown columns are ignored, missing ones leave the field zero.
type CSVCompetitorSource struct {
	path string
	log  *slog.Logger
}

func NewCSVCompetitorSource(path string, logger *slog.Logger) *CSVCompetitorSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVCompetitorSource{path: path, log: logger}
}

func (s *CSVCompetitorSource) Records(ctx context.Context) ([]models.CompetitorPriceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalSourceUnavailable, err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		s.log.Error("error reading competitor csv", "path", s.path, "error", err)
		return nil, fmt.Errorf("%w: open %s: %v", ErrExternalSourceUnavailable, s.path, err)
	}
	defer f.Close()

	records, err := ParseCompetitorCSV(f)
	if err != nil {
		s.log.Error("error parsing competitor csv", "path", s.path, "error", err)
		return nil, err
	}
	s.log.Info("read competitor prices", "path", s.path, "count", len(records))
	return records, nil
}

func (s *CSVCompetitorSource) Names(ctx context.Context) ([]string, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return distinctNames(records), nil
}

// ParseCompetitorCSV decodes competitor rows keyed by header name
// (case-insensitive, spaces and underscores ignored). Unparsable numbers and
// booleans are left zero.
func ParseCompetitorCSV(r io.Reader) ([]models.CompetitorPriceRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []models.CompetitorPriceRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrExternalSourceUnavailable, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[headerKey(h)] = i
	}

	records := make([]models.CompetitorPriceRecord, 0)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read row: %v", ErrExternalSourceUnavailable, err)
		}
		get := func(names ...string) string {
			for _, name := range names {
				if i, ok := cols[name]; ok && i < len(row) {
					return strings.TrimSpace(row[i])
				}
			}
			return ""
		}
		records = append(records, models.CompetitorPriceRecord{
			Title:               get("title"),
			Date:                get("date"),
			RoomType:            get("roomtype"),
			Season:              get("season"),
			OccupancyRate:       atoi(get("occupancyrate")),
			BasePrice:           atof(get("baseprice")),
			CompetitorName:      get("competitor", "competitorname"),
			ID:                  atoi(get("id")),
			HaveConnectingRooms: parseBool(get("haveconnectingrooms")),
			AvailableViews:      get("availableviews"),
		})
	}
	return records, nil
}

func headerKey(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int(f)
		}
		return 0
	}
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func distinctNames(records []models.CompetitorPriceRecord) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, r := range records {
		name := strings.TrimSpace(r.CompetitorName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
