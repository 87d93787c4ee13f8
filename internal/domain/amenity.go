package domain

// Coordinates is a plain lat/lng pair. A nil *Coordinates means the
// location is unknown; brand-expanded records use {0,0} instead (see
// catalog.ExpandBrand).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Price tiers as they appear in the source feeds. "free" in any casing
// normalizes to PriceFree; everything else passes through verbatim.
const (
	PriceFree = "Free"
)

// Amenity statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Amenity is the canonical, deduplicated representation of one physical
// amenity. Slug is derived from (name, terminal) and immutable once
// assigned; Source is provenance only and never part of identity.
type Amenity struct {
	Slug               string       `json:"slug"`
	Name               string       `json:"name"`
	TerminalCode       string       `json:"terminal_code"` // "<AIRPORT>-<TERMINAL>", e.g. "SIN-T3"
	AirportCode        string       `json:"airport_code"`
	Category           string       `json:"category"`
	AmenityType        string       `json:"amenity_type"`
	PriceTier          string       `json:"price_tier"`
	VibeTags           []string     `json:"vibe_tags"`
	Status             string       `json:"status"`
	AvailableInTransit bool         `json:"available_in_transit"`
	Coordinates        *Coordinates `json:"coordinates"`
	Source             string       `json:"source"`
	Tags               []string     `json:"tags"`
}

// HasTag reports whether the amenity carries the given free-form tag.
func (a Amenity) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// BrandLocation is one physical outlet of a multi-location brand.
type BrandLocation struct {
	Terminal string   `json:"terminal"`
	Zone     string   `json:"zone"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

// BrandDefinition is one logical brand identity with N physical outlets.
// All expanded records share the brand ID as their slug.
type BrandDefinition struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	VibeTags     []string        `json:"vibe_tags"`
	TransitOnly  bool            `json:"transit_only"`
	IsChainBrand bool            `json:"is_chain_brand"`
	Locations    []BrandLocation `json:"locations"`
}

// Skip reasons recorded during adaptation and merging.
const (
	SkipMissingName = "missing name"
	SkipDuplicate   = "duplicate"
)

// SkippedRecord is a non-fatal, record-level problem surfaced as data in
// the merge result rather than as an error.
type SkippedRecord struct {
	Reason string `json:"reason"`
	Source string `json:"source"`
	Raw    any    `json:"raw"`
}

// MergeResult is the outcome of one canonicalization run.
type MergeResult struct {
	Canonical []Amenity       `json:"canonical"`
	Skipped   []SkippedRecord `json:"skipped"`
}
