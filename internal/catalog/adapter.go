package catalog

import (
	"strconv"
	"strings"

	"terminal_plus/internal/domain"
)

// Source provenance tags stamped on adapted records.
const (
	SourceTerminalJSON = "terminal-json"
	SourceCSV          = "csv"
	SourceBrand        = "brand"
)

/********** alias registries (single source of truth) **********/

// The terminal exports went through several schema generations; these
// registries absorb the drift so the rest of the core only ever sees the
// canonical shape.
var terminalAliases = map[string][]string{
	"name":         {"name", "amenity_name", "title"},
	"slug":         {"slug", "amenity_slug", "id"},
	"terminal":     {"terminal_code", "terminal", "location.terminal"},
	"airport":      {"airport_code", "airport"},
	"category":     {"category", "type"},
	"amenity_type": {"amenity_type", "subtype", "amenityType"},
	"price_tier":   {"price_tier", "price_level", "price"},
	"status":       {"status", "state"},
	"access":       {"access"},
}

var csvAliases = map[string][]string{
	"name":         {"name", "amenity_name"},
	"slug":         {"amenity_slug", "slug"},
	"terminal":     {"terminal_code", "terminal"},
	"airport":      {"airport_code", "airport"},
	"category":     {"category"},
	"amenity_type": {"amenity_type"},
	"price_tier":   {"price_tier"},
	"status":       {"status"},
	"vibe_tags":    {"vibe_tags", "vibes"},
	"transit":      {"transit", "transit_only", "available_in_transit"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstAlias: first non-empty string for a named alias set.
func firstAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string).
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstSliceStrings: accept []any holding strings or {name} objects.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		if raw, ok := lookupAny(m, k).([]any); ok {
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if t != "" {
						out = append(out, t)
					}
				case map[string]any:
					if n, ok := t["name"].(string); ok && n != "" {
						out = append(out, n)
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

// splitBraceList parses a brace-delimited cell like "{Chill,Refuel}":
// strip braces, split on comma, trim, discard empty tokens. Plain
// comma- or semicolon-separated cells work too.
func splitBraceList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	sep := ","
	if !strings.Contains(s, ",") && strings.Contains(s, ";") {
		sep = ";"
	}
	var out []string
	for _, tok := range strings.Split(s, sep) {
		if t := strings.TrimSpace(tok); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizePriceTier passes tiers through verbatim except the literal
// case-insensitive token "free".
func normalizePriceTier(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "free") {
		return domain.PriceFree
	}
	return strings.TrimSpace(s)
}

func defaultStatus(s string) string {
	if s == "" {
		return domain.StatusActive
	}
	return s
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b
}

/********** terminal JSON adapter **********/

// AdaptTerminalJSON maps one batch of per-terminal export records into
// canonical Amenities. Records missing a name (or whose name strips to
// an empty slug) are skipped, not fatal to the batch.
func AdaptTerminalJSON(batch []map[string]any, airportCode string) ([]domain.Amenity, []domain.SkippedRecord) {
	out := make([]domain.Amenity, 0, len(batch))
	var skipped []domain.SkippedRecord
	for _, raw := range batch {
		a, err := adaptTerminalRecord(raw, airportCode)
		if err != nil {
			skipped = append(skipped, domain.SkippedRecord{
				Reason: domain.SkipMissingName,
				Source: SourceTerminalJSON,
				Raw:    raw,
			})
			continue
		}
		out = append(out, a)
	}
	return out, skipped
}

func adaptTerminalRecord(raw map[string]any, airportCode string) (domain.Amenity, error) {
	name := firstAlias(raw, terminalAliases, "name")
	if name == "" {
		return domain.Amenity{}, domain.ErrInvalidName
	}

	airport := firstAlias(raw, terminalAliases, "airport")
	if airport == "" {
		airport = airportCode
	}
	terminal := firstAlias(raw, terminalAliases, "terminal")
	if terminal == "" {
		terminal = airport
	}

	slug := firstAlias(raw, terminalAliases, "slug")
	if slug == "" {
		var err error
		if slug, err = NormalizeSlug(name, terminal); err != nil {
			return domain.Amenity{}, err
		}
	}

	var coords *domain.Coordinates
	lat := getFloatFlexible(raw, "coordinates.lat", "lat", "latitude")
	lng := getFloatFlexible(raw, "coordinates.lng", "lng", "longitude")
	if lat != nil && lng != nil {
		coords = &domain.Coordinates{Lat: *lat, Lng: *lng}
	}

	access := firstAlias(raw, terminalAliases, "access")
	tags := firstSliceStrings(raw, "tags")
	if tags == nil {
		tags = []string{}
	}
	vibes := firstSliceStrings(raw, "vibe_tags", "vibes")
	if vibes == nil {
		vibes = []string{}
	}

	return domain.Amenity{
		Slug:               strings.ToLower(slug),
		Name:               name,
		TerminalCode:       terminal,
		AirportCode:        airport,
		Category:           firstAlias(raw, terminalAliases, "category"),
		AmenityType:        firstAlias(raw, terminalAliases, "amenity_type"),
		PriceTier:          normalizePriceTier(firstAlias(raw, terminalAliases, "price_tier")),
		VibeTags:           vibes,
		Status:             defaultStatus(firstAlias(raw, terminalAliases, "status")),
		AvailableInTransit: access == "transit-only",
		Coordinates:        coords,
		Source:             SourceTerminalJSON,
		Tags:               tags,
	}, nil
}

/********** CSV row adapter **********/

// AdaptCSVRows maps parsed bulk-export rows into canonical Amenities.
// Vibe-tag cells arrive brace-delimited ("{Chill,Refuel}").
func AdaptCSVRows(rows []map[string]string, airportCode string) ([]domain.Amenity, []domain.SkippedRecord) {
	out := make([]domain.Amenity, 0, len(rows))
	var skipped []domain.SkippedRecord
	for _, row := range rows {
		a, err := adaptCSVRow(row, airportCode)
		if err != nil {
			skipped = append(skipped, domain.SkippedRecord{
				Reason: domain.SkipMissingName,
				Source: SourceCSV,
				Raw:    row,
			})
			continue
		}
		out = append(out, a)
	}
	return out, skipped
}

func csvField(row map[string]string, key string) string {
	for _, alias := range csvAliases[key] {
		if v := strings.TrimSpace(row[alias]); v != "" {
			return v
		}
	}
	return ""
}

func adaptCSVRow(row map[string]string, airportCode string) (domain.Amenity, error) {
	name := csvField(row, "name")
	if name == "" {
		return domain.Amenity{}, domain.ErrInvalidName
	}

	airport := csvField(row, "airport")
	if airport == "" {
		airport = airportCode
	}
	terminal := csvField(row, "terminal")
	if terminal == "" {
		terminal = airport
	}

	slug := csvField(row, "slug")
	if slug == "" {
		var err error
		if slug, err = NormalizeSlug(name, terminal); err != nil {
			return domain.Amenity{}, err
		}
	}

	vibes := splitBraceList(csvField(row, "vibe_tags"))
	if vibes == nil {
		vibes = []string{}
	}

	return domain.Amenity{
		Slug:               strings.ToLower(slug),
		Name:               name,
		TerminalCode:       terminal,
		AirportCode:        airport,
		Category:           csvField(row, "category"),
		AmenityType:        csvField(row, "amenity_type"),
		PriceTier:          normalizePriceTier(csvField(row, "price_tier")),
		VibeTags:           vibes,
		Status:             defaultStatus(csvField(row, "status")),
		AvailableInTransit: parseBool(csvField(row, "transit")),
		Coordinates:        nil, // bulk exports carry no coordinates
		Source:             SourceCSV,
		Tags:               []string{},
	}, nil
}
