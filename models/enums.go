package models

import (
	"encoding/json"
	"strings"
)

// RoomType identifies one of the hotel's room categories. Unknown values are
// carried as-is so the pricing engine can reject them explicitly.
type RoomType string

const (
	RoomTypeStandard RoomType = "Standard"
	RoomTypeDeluxe   RoomType = "Deluxe"
	RoomTypeSuite    RoomType = "Suite"
)

// RoomTypes lists the known room types in display order.
var RoomTypes = []RoomType{RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite}

// ParseRoomType matches a known room type case-insensitively. Unknown input
// is returned trimmed with ok=false.
func ParseRoomType(s string) (RoomType, bool) {
	s = strings.TrimSpace(s)
	for _, rt := range RoomTypes {
		if strings.EqualFold(s, string(rt)) {
			return rt, true
		}
	}
	return RoomType(s), false
}

// Valid reports whether rt is one of the three known room types.
func (rt RoomType) Valid() bool {
	switch rt {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite:
		return true
	}
	return false
}

func (rt *RoomType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*rt, _ = ParseRoomType(s)
	return nil
}

// Season is the pricing season. The JSON form is OffSeason / PeakSeason while
// the competitor CSV uses "Off-Season" / "Peak Season"; both parse.
type Season string

const (
	SeasonOff  Season = "OffSeason"
	SeasonPeak Season = "PeakSeason"
)

var seasonAliases = map[string]Season{
	"offseason":   SeasonOff,
	"off-season":  SeasonOff,
	"off season":  SeasonOff,
	"peakseason":  SeasonPeak,
	"peak season": SeasonPeak,
	"peak-season": SeasonPeak,
}

// ParseSeason canonicalizes either encoding. Unknown input is returned
// trimmed with ok=false.
func ParseSeason(s string) (Season, bool) {
	s = strings.TrimSpace(s)
	if season, ok := seasonAliases[strings.ToLower(s)]; ok {
		return season, true
	}
	return Season(s), false
}

// CSVName is the season's encoding in competitor price files.
func (s Season) CSVName() string {
	switch s {
	case SeasonOff:
		return "Off-Season"
	case SeasonPeak:
		return "Peak Season"
	}
	return string(s)
}

func (s *Season) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s, _ = ParseSeason(raw)
	return nil
}

// PreferredView is the view a guest asks for.
type PreferredView string

const (
	ViewSea    PreferredView = "sea"
	ViewGarden PreferredView = "garden"
	ViewCity   PreferredView = "city"
)

func (v *PreferredView) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*v = PreferredView(strings.ToLower(strings.TrimSpace(raw)))
	return nil
}
