package catalog

import (
	"strings"

	"terminal_plus/internal/domain"
)

// Vibe categories used by the scorer and the band tables. Lookup is
// case-insensitive so "Refuel" and "refuel" land in the same bucket.
const (
	categoryEnergy     = "energy"
	categoryRelaxation = "relaxation"
	categoryDiscovery  = "discovery"
	categoryPractical  = "practical"
)

var vibeCategories = map[string]string{
	"work":    categoryEnergy,
	"quick":   categoryEnergy,
	"relax":   categoryRelaxation,
	"comfort": categoryRelaxation,
	"chill":   categoryRelaxation,
	"explore": categoryDiscovery,
	"refuel":  categoryPractical,
}

func vibeCategory(vibe string) string {
	return vibeCategories[strings.ToLower(strings.TrimSpace(vibe))]
}

// ScoreVibe rates how well a vibe fits the caller's context. Scoring is
// a fixed additive rule table starting at base 50, clamped to [0,100]:
//
//   - morning hours (6-12) grant +25 to energy vibes; evening and night
//     (18-6) grant +25 to relaxation vibes; the neutral afternoon band
//     (12-18) grants a flat +15 to everything
//   - transit journeys grant +20 to practical vibes, departures +20 to
//     energy vibes
//   - a favorite vibe gains +30, an excluded one loses 20; contradictory
//     preference sets simply stack
//   - high stress grants +25 to relaxation, low stress +20 to energy
//
// Pure function: identical input always yields identical output.
func ScoreVibe(vibe string, ctx domain.VibeContext) domain.ScoredVibe {
	cat := vibeCategory(vibe)
	score := 50
	var f domain.VibeFactors

	switch hour := ctx.TimeOfDay; {
	case hour >= 6 && hour < 12:
		if cat == categoryEnergy {
			f.TimeOfDay = 25
		}
	case hour >= 12 && hour < 18:
		f.TimeOfDay = 15
	default:
		if cat == categoryRelaxation {
			f.TimeOfDay = 25
		}
	}
	score += f.TimeOfDay

	switch ctx.JourneyType {
	case domain.JourneyTransit:
		if cat == categoryPractical {
			f.JourneyType = 20
		}
	case domain.JourneyDeparture:
		if cat == categoryEnergy {
			f.JourneyType = 20
		}
	}
	score += f.JourneyType

	if containsFold(ctx.Preferences.Favorites, vibe) {
		f.UserPreference += 30
	}
	if containsFold(ctx.Preferences.Excluded, vibe) {
		f.UserPreference -= 20
	}
	score += f.UserPreference

	switch ctx.StressLevel {
	case domain.StressHigh:
		if cat == categoryRelaxation {
			f.Context = 25
		}
	case domain.StressLow:
		if cat == categoryEnergy {
			f.Context = 20
		}
	}
	score += f.Context

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return domain.ScoredVibe{Vibe: vibe, Score: score, Factors: f}
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
