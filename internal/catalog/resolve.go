package catalog

import (
	"terminal_plus/internal/domain"
)

// Resolve evaluates a collection's membership against the canonical set
// for one airport/terminal scope.
//
// Member slugs with no canonical record land in Missing — a collection
// referencing a since-removed amenity is expected, not a fault. A brand
// slug matches every terminal instance of that brand, so one member slug
// can contribute several members. TotalCount spans all terminals;
// InTerminalCount only the requested one.
//
// A collection whose airport scope excludes the request resolves to an
// empty, non-applicable result rather than an error.
func Resolve(col domain.Collection, airportCode, terminalCode string, canonical []domain.Amenity) domain.CollectionResult {
	if !col.AppliesTo(airportCode) {
		return domain.CollectionResult{Applicable: false}
	}

	bySlug := make(map[string][]domain.Amenity, len(canonical))
	for _, a := range canonical {
		bySlug[a.Slug] = append(bySlug[a.Slug], a)
	}

	res := domain.CollectionResult{Applicable: true, Members: []domain.Amenity{}}
	for _, slug := range col.MemberSlugs {
		matches := bySlug[slug]
		if len(matches) == 0 {
			res.Missing = append(res.Missing, slug)
			continue
		}
		for _, a := range matches {
			res.Members = append(res.Members, a)
			res.TotalCount++
			if a.TerminalCode == terminalCode {
				res.InTerminalCount++
			}
		}
	}
	return res
}
