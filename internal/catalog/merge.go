package catalog

import (
	"sort"

	"terminal_plus/internal/domain"
)

// isBrandRecord reports whether a record came from brand expansion.
// Brand outlets share one slug across terminals, so their identity is
// (slug, terminalCode) rather than slug alone.
func isBrandRecord(a domain.Amenity) bool {
	return a.Source == SourceBrand || a.HasTag(TagMultiLocation)
}

// Merge canonicalizes an ordered sequence of already-adapted batches.
// Batch order is the trust precedence: the first record to claim an
// identity wins, and every later collision is recorded as a skip, never
// an overwrite. Silently replacing a curated record with a bulk-export
// one is the failure mode this exists to prevent.
//
// Two indexes enforce the invariant that no two canonical records share
// a (slug, terminalCode) pair, regardless of source kind: every winner
// claims its pair, and an ordinary (non-brand) winner additionally
// claims its slug airport-wide. A brand outlet therefore collides with
// an ordinary record already holding its pair, and vice versa: a CSV
// row carrying a brand-style slug cannot coexist with the expanded
// outlet in the same terminal.
//
// The canonical sequence is sorted by terminalCode then name, both
// ascending — a stable, testable contract that downstream consumers
// iterate in.
func Merge(batches [][]domain.Amenity) domain.MergeResult {
	seenSlug := make(map[string]struct{}) // slugs claimed by non-brand records
	seenPair := make(map[string]struct{}) // (slug, terminal) pairs claimed by any record
	canonical := make([]domain.Amenity, 0)
	skipped := make([]domain.SkippedRecord, 0)

	for _, batch := range batches {
		for _, a := range batch {
			pair := a.Slug + "|" + a.TerminalCode
			brand := isBrandRecord(a)

			_, dup := seenPair[pair]
			if !dup && !brand {
				_, dup = seenSlug[a.Slug]
			}
			if dup {
				skipped = append(skipped, domain.SkippedRecord{
					Reason: domain.SkipDuplicate,
					Source: a.Source,
					Raw:    a,
				})
				continue
			}

			seenPair[pair] = struct{}{}
			if !brand {
				seenSlug[a.Slug] = struct{}{}
			}
			canonical = append(canonical, a)
		}
	}

	sort.Slice(canonical, func(i, j int) bool {
		if canonical[i].TerminalCode != canonical[j].TerminalCode {
			return canonical[i].TerminalCode < canonical[j].TerminalCode
		}
		return canonical[i].Name < canonical[j].Name
	})

	return domain.MergeResult{Canonical: canonical, Skipped: skipped}
}
