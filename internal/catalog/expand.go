package catalog

import (
	"strings"

	"terminal_plus/internal/domain"
)

// Tags stamped on brand-expanded records.
const (
	TagMultiLocation = "multi-location"
	TagTransitOnly   = "transit-only"
	tagBrandPrefix   = "brand:"
)

// ExpandBrand emits one canonical Amenity per physical location of a
// brand. Every expanded record reuses the brand ID as its slug — outlets
// of one brand intentionally share identity across terminals, so their
// dedup key is (slug, terminalCode), not slug alone.
//
// Locations without lat/lng get {0,0}, not nil. The legacy
// single-location shape always carried coordinates, and map consumers
// special-case the origin; coercing to nil would change their behavior.
func ExpandBrand(brand domain.BrandDefinition, airportCode string) []domain.Amenity {
	out := make([]domain.Amenity, 0, len(brand.Locations))

	brandName := brand.Brand
	if brandName == "" {
		brandName = brand.Name
	}
	tags := []string{TagMultiLocation, tagBrandPrefix + brandName}
	if brand.TransitOnly {
		tags = append(tags, TagTransitOnly)
	}

	for _, loc := range brand.Locations {
		coords := &domain.Coordinates{}
		if loc.Lat != nil {
			coords.Lat = *loc.Lat
		}
		if loc.Lng != nil {
			coords.Lng = *loc.Lng
		}

		vibes := brand.VibeTags
		if vibes == nil {
			vibes = []string{}
		}

		out = append(out, domain.Amenity{
			Slug:               strings.ToLower(brand.ID),
			Name:               brand.Name,
			TerminalCode:       airportCode + "-" + loc.Terminal,
			AirportCode:        airportCode,
			Category:           "Shopping",
			AmenityType:        "Retail",
			PriceTier:          "$$",
			VibeTags:           append([]string(nil), vibes...),
			Status:             domain.StatusActive,
			AvailableInTransit: brand.TransitOnly,
			Coordinates:        coords,
			Source:             SourceBrand,
			Tags:               append([]string(nil), tags...),
		})
	}
	return out
}

// ExpandBrands expands a whole brand feed, skipping definitions without
// a usable identity.
func ExpandBrands(brands []domain.BrandDefinition, airportCode string) ([]domain.Amenity, []domain.SkippedRecord) {
	var out []domain.Amenity
	var skipped []domain.SkippedRecord
	for _, b := range brands {
		if b.Name == "" || b.ID == "" {
			skipped = append(skipped, domain.SkippedRecord{
				Reason: domain.SkipMissingName,
				Source: SourceBrand,
				Raw:    b,
			})
			continue
		}
		out = append(out, ExpandBrand(b, airportCode)...)
	}
	return out, skipped
}
