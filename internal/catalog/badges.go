package catalog

import "terminal_plus/internal/domain"

// Size thresholds are inclusive upper bounds evaluated in ascending
// order, so a count of exactly 10 is Micro, not Curated.
var sizeTiers = []struct {
	max         int
	tier        domain.BadgeTier
	description string
}{
	{10, domain.TierMicro, "Hand-picked essentials"},
	{25, domain.TierCurated, "Expertly selected"},
	{50, domain.TierPopular, "Crowd favorites"},
	{100, domain.TierComprehensive, "Complete guide"},
}

// ClassifySize derives the display badge for a collection of the given
// member count.
func ClassifySize(memberCount int) domain.Badge {
	for _, t := range sizeTiers {
		if memberCount <= t.max {
			return domain.Badge{Tier: t.tier, Text: t.tier.String(), Description: t.description}
		}
	}
	return domain.Badge{Tier: domain.TierExploreAll, Text: domain.TierExploreAll.String(), Description: "Full collection"}
}

// HealthRatio labels how much of a collection is reachable from the
// requested terminal. The max(total,1) floor avoids dividing by zero,
// which also means an empty collection reports ratio 0 and Poor — a
// deliberate edge case, not an error.
func HealthRatio(inTerminalCount, totalCount int) domain.Health {
	den := totalCount
	if den < 1 {
		den = 1
	}
	ratio := float64(inTerminalCount) / float64(den)
	switch {
	case ratio == 1:
		return domain.Health{Label: domain.HealthPerfect, Ratio: ratio}
	case ratio > 0.7:
		return domain.Health{Label: domain.HealthGood, Ratio: ratio}
	case ratio > 0.3:
		return domain.Health{Label: domain.HealthMixed, Ratio: ratio}
	default:
		return domain.Health{Label: domain.HealthPoor, Ratio: ratio}
	}
}
