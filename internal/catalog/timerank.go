package catalog

import (
	"sort"
	"strings"

	"terminal_plus/internal/domain"
)

// TimeBand is one of six fixed day segments.
type TimeBand string

const (
	BandEarlyMorning TimeBand = "early-morning" // 5-9
	BandMorning      TimeBand = "morning"       // 9-12
	BandLunch        TimeBand = "lunch"         // 12-15
	BandAfternoon    TimeBand = "afternoon"     // 15-18
	BandEvening      TimeBand = "evening"       // 18-21
	BandLateNight    TimeBand = "late-night"    // 21-5, wraps midnight
)

// BandForHour maps a 0..23 hour onto its band.
func BandForHour(hour int) TimeBand {
	switch {
	case hour >= 5 && hour < 9:
		return BandEarlyMorning
	case hour >= 9 && hour < 12:
		return BandMorning
	case hour >= 12 && hour < 15:
		return BandLunch
	case hour >= 15 && hour < 18:
		return BandAfternoon
	case hour >= 18 && hour < 21:
		return BandEvening
	default:
		return BandLateNight
	}
}

// bandKeywords holds the three priority tiers per band. The rule set is
// data, not code: keywords are matched case-insensitively as substrings
// of an amenity's name, category, and vibe tags, and an amenity takes
// the highest tier it hits (3/2/1, else 0).
type bandKeywords struct {
	high, medium, low []string
}

var timeBandKeywords = map[TimeBand]bandKeywords{
	BandEarlyMorning: {
		high:   []string{"coffee", "cafe", "breakfast", "bakery", "grab"},
		medium: []string{"quick", "snack", "juice", "tea"},
		low:    []string{"pharmacy", "convenience", "news"},
	},
	BandMorning: {
		high:   []string{"coffee", "breakfast", "brunch", "bakery"},
		medium: []string{"work", "lounge", "juice", "quick"},
		low:    []string{"shop", "retail", "duty-free"},
	},
	BandLunch: {
		high:   []string{"hawker", "noodle", "local", "food", "lunch"},
		medium: []string{"quick", "snack", "casual", "refuel"},
		low:    []string{"dessert", "coffee", "shop"},
	},
	BandAfternoon: {
		high:   []string{"shop", "retail", "explore", "attraction"},
		medium: []string{"coffee", "dessert", "snack", "chill"},
		low:    []string{"lounge", "spa", "work"},
	},
	BandEvening: {
		high:   []string{"dinner", "dining", "bar", "restaurant"},
		medium: []string{"lounge", "wine", "dessert", "local"},
		low:    []string{"shop", "coffee", "quick"},
	},
	BandLateNight: {
		high:   []string{"24", "late", "comfort", "rest", "sleep"},
		medium: []string{"lounge", "quiet", "shower", "quick"},
		low:    []string{"snack", "convenience", "pharmacy"},
	},
}

// timeScore returns the highest tier the amenity matches in the band.
func timeScore(a domain.Amenity, band TimeBand) int {
	kw := timeBandKeywords[band]
	hay := strings.ToLower(a.Name + " " + a.Category + " " + strings.Join(a.VibeTags, " "))
	if matchesAny(hay, kw.high) {
		return 3
	}
	if matchesAny(hay, kw.medium) {
		return 2
	}
	if matchesAny(hay, kw.low) {
		return 1
	}
	return 0
}

func matchesAny(hay string, words []string) bool {
	for _, w := range words {
		if strings.Contains(hay, w) {
			return true
		}
	}
	return false
}

// RankByTime reorders amenities by their keyword priority in the band
// covering currentHour, highest first. The sort is stable on purpose:
// equal-score amenities keep their relative input order, so upstream
// ordering (alphabetical, distance) decides ties.
func RankByTime(amenities []domain.Amenity, currentHour int) []domain.Amenity {
	band := BandForHour(currentHour)
	out := append([]domain.Amenity(nil), amenities...)
	sort.SliceStable(out, func(i, j int) bool {
		return timeScore(out[i], band) > timeScore(out[j], band)
	})
	return out
}
