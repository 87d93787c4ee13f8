package domain

// Collection is a named, curated grouping of amenity slugs. It is static
// configuration: the core evaluates membership against the canonical set
// but never mutates it. Icon and gradient are presentation-only.
type Collection struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Gradient    string   `json:"gradient"`
	MemberSlugs []string `json:"member_slugs"`
	Universal   bool     `json:"universal"`
	Airports    []string `json:"airports,omitempty"`
}

// AppliesTo reports whether the collection is in scope for an airport.
func (c Collection) AppliesTo(airportCode string) bool {
	if c.Universal {
		return true
	}
	for _, a := range c.Airports {
		if a == airportCode {
			return true
		}
	}
	return false
}

// CollectionResult is the resolver output. Missing lists member slugs
// with no canonical record — a normal situation, not a fault.
// Applicable is false when the collection's airport scope excludes the
// request; the rest of the result is then empty.
type CollectionResult struct {
	Applicable      bool      `json:"applicable"`
	Members         []Amenity `json:"members"`
	Missing         []string  `json:"missing,omitempty"`
	TotalCount      int       `json:"total_count"`
	InTerminalCount int       `json:"in_terminal_count"`
}

// CollectionView is the full read model for one collection in one
// airport/terminal scope: resolved members (already time-ranked by the
// caller's hour), the skip-tolerant missing list, and the derived badge
// and health labels.
type CollectionView struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Icon            string    `json:"icon"`
	Gradient        string    `json:"gradient"`
	Applicable      bool      `json:"applicable"`
	Members         []Amenity `json:"members"`
	Missing         []string  `json:"missing,omitempty"`
	TotalCount      int       `json:"total_count"`
	InTerminalCount int       `json:"in_terminal_count"`
	Badge           Badge     `json:"badge"`
	Health          Health    `json:"health"`
}

// CollectionSummary is the list read model: identity, size badge, and
// per-terminal member counts.
type CollectionSummary struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Icon           string         `json:"icon"`
	Gradient       string         `json:"gradient"`
	TotalCount     int            `json:"total_count"`
	Badge          Badge          `json:"badge"`
	TerminalCounts map[string]int `json:"terminal_counts,omitempty"`
}

// Journey types for vibe scoring.
const (
	JourneyTransit   = "transit"
	JourneyDeparture = "departure"
	JourneyArrival   = "arrival"
)

// Stress levels for vibe scoring.
const (
	StressLow    = "low"
	StressMedium = "medium"
	StressHigh   = "high"
)

// VibePreferences are the caller-supplied favorite/excluded vibe sets.
// Contradictory sets are allowed; the score is simply additive.
type VibePreferences struct {
	Favorites []string `json:"favorites"`
	Excluded  []string `json:"excluded"`
}

// VibeContext is everything the scorer needs. The caller supplies the
// hour; the core never reads a clock.
type VibeContext struct {
	TimeOfDay   int             `json:"time_of_day"` // 0..23
	JourneyType string          `json:"journey_type"`
	Preferences VibePreferences `json:"preferences"`
	StressLevel string          `json:"stress_level"`
}

// VibeFactors break a score into its additive components.
type VibeFactors struct {
	TimeOfDay      int `json:"time_of_day"`
	JourneyType    int `json:"journey_type"`
	UserPreference int `json:"user_preference"`
	Context        int `json:"context"`
}

// ScoredVibe is the ephemeral scorer output; never persisted.
type ScoredVibe struct {
	Vibe    string      `json:"vibe"`
	Score   int         `json:"score"` // 0..100
	Factors VibeFactors `json:"factors"`
}

// Badge tiers in ascending size order.
type BadgeTier int

const (
	TierMicro BadgeTier = iota
	TierCurated
	TierPopular
	TierComprehensive
	TierExploreAll
)

func (t BadgeTier) String() string {
	switch t {
	case TierMicro:
		return "Micro"
	case TierCurated:
		return "Curated"
	case TierPopular:
		return "Popular"
	case TierComprehensive:
		return "Comprehensive"
	default:
		return "Explore All"
	}
}

// Badge is the size classification attached to a collection.
type Badge struct {
	Tier        BadgeTier `json:"-"`
	Text        string    `json:"text"`
	Description string    `json:"description"`
}

// Health labels for the near-you/total ratio.
const (
	HealthPerfect = "Perfect"
	HealthGood    = "Good"
	HealthMixed   = "Mixed"
	HealthPoor    = "Poor"
)

// Health is the in-terminal coverage of a collection.
type Health struct {
	Label string  `json:"label"`
	Ratio float64 `json:"ratio"`
}
