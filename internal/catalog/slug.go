// Package catalog is the pure core of the amenity catalog: slug
// normalization, source adaptation, canonicalization, collection
// resolution, and ranking. Nothing in this package does I/O or reads a
// clock; every function is deterministic for identical input.
package catalog

import (
	"strings"

	"terminal_plus/internal/domain"
)

// NormalizeSlug derives the canonical slug for a (name, terminal) pair:
// lowercase, strip everything outside [a-z0-9\s], collapse whitespace
// runs to single hyphens, then append the terminal code lowercased with
// its internal hyphens removed ("SIN-T3" -> "sint3", "T1" -> "t1").
//
// The slug is the dedup key, so the result must never incorporate
// source, timestamp, or any other volatile field.
func NormalizeSlug(name, terminal string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '\t', r == '\n':
			b.WriteRune(r)
		}
	}
	base := strings.Join(strings.Fields(b.String()), "-")
	if base == "" {
		return "", domain.ErrInvalidName
	}
	suffix := strings.ReplaceAll(strings.ToLower(terminal), "-", "")
	return base + "-" + suffix, nil
}
