package app

import (
	"context"
	"encoding/json"
	"fmt"

	"terminal_plus/internal/catalog"
	"terminal_plus/internal/domain"
)

// QueryService serves the read side: collection views, amenity lookups,
// and vibe scores. Collections are static configuration injected at
// construction; the canonical set is read through a cache-aside layer
// keyed per airport.
type QueryService struct {
	repo        domain.CatalogRepository
	cache       domain.Cache
	cacheTTLSec int
	collections map[string]domain.Collection
	order       []string
}

func NewQueryService(r domain.CatalogRepository, c domain.Cache, ttlSec int, collections []domain.Collection) *QueryService {
	s := &QueryService{
		repo:        r,
		cache:       c,
		cacheTTLSec: ttlSec,
		collections: make(map[string]domain.Collection, len(collections)),
	}
	for _, col := range collections {
		s.collections[col.ID] = col
		s.order = append(s.order, col.ID)
	}
	return s
}

// GetCollectionView resolves one collection against the canonical set,
// ranks the members for the caller-supplied hour, and attaches the size
// badge and terminal health. An unconfigured id is a caller fault and
// returns ErrUnknownCollection.
func (s *QueryService) GetCollectionView(ctx context.Context, id, airportCode, terminalCode string, hour int) (domain.CollectionView, error) {
	col, ok := s.collections[id]
	if !ok {
		return domain.CollectionView{}, fmt.Errorf("collection %q: %w", id, domain.ErrUnknownCollection)
	}

	canonical, err := s.canonicalSet(ctx, airportCode)
	if err != nil {
		return domain.CollectionView{}, err
	}

	res := catalog.Resolve(col, airportCode, terminalCode, canonical)
	view := domain.CollectionView{
		ID:              col.ID,
		Name:            col.Name,
		Icon:            col.Icon,
		Gradient:        col.Gradient,
		Applicable:      res.Applicable,
		Members:         catalog.RankByTime(res.Members, hour),
		Missing:         res.Missing,
		TotalCount:      res.TotalCount,
		InTerminalCount: res.InTerminalCount,
		Badge:           catalog.ClassifySize(res.TotalCount),
		Health:          catalog.HealthRatio(res.InTerminalCount, res.TotalCount),
	}
	return view, nil
}

// ListCollections returns summaries for every collection in scope for
// the airport, in configured order, with per-terminal member counts.
func (s *QueryService) ListCollections(ctx context.Context, airportCode string) ([]domain.CollectionSummary, error) {
	canonical, err := s.canonicalSet(ctx, airportCode)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string][]domain.Amenity, len(canonical))
	for _, a := range canonical {
		bySlug[a.Slug] = append(bySlug[a.Slug], a)
	}

	out := make([]domain.CollectionSummary, 0, len(s.order))
	for _, id := range s.order {
		col := s.collections[id]
		if !col.AppliesTo(airportCode) {
			continue
		}
		sum := domain.CollectionSummary{
			ID:       col.ID,
			Name:     col.Name,
			Icon:     col.Icon,
			Gradient: col.Gradient,
		}
		for _, slug := range col.MemberSlugs {
			for _, a := range bySlug[slug] {
				sum.TotalCount++
				if sum.TerminalCounts == nil {
					sum.TerminalCounts = map[string]int{}
				}
				sum.TerminalCounts[a.TerminalCode]++
			}
		}
		sum.Badge = catalog.ClassifySize(sum.TotalCount)
		out = append(out, sum)
	}
	return out, nil
}

// GetAmenity looks up one canonical record by slug and terminal.
func (s *QueryService) GetAmenity(ctx context.Context, slug, terminalCode string) (domain.Amenity, error) {
	key := fmt.Sprintf("amenity:%s:%s", slug, terminalCode)
	var a domain.Amenity
	if ok, _ := s.cache.Get(ctx, key, &a); ok {
		return a, nil
	}
	a, err := s.repo.GetAmenity(ctx, slug, terminalCode)
	if err != nil {
		return domain.Amenity{}, err
	}
	_ = s.cache.Set(ctx, key, a, s.cacheTTLSec)
	return a, nil
}

// ScoreVibe is a pure pass-through; nothing to cache or persist.
func (s *QueryService) ScoreVibe(vibe string, vctx domain.VibeContext) domain.ScoredVibe {
	return catalog.ScoreVibe(vibe, vctx)
}

// canonicalSet reads the airport's canonical amenity set through the
// cache. The ingestor evicts this key after every merge run, so a stale
// read window is bounded by one run, not by the TTL alone.
func (s *QueryService) canonicalSet(ctx context.Context, airportCode string) ([]domain.Amenity, error) {
	key := canonicalKey(airportCode)
	var cached []domain.Amenity
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	canonical, err := s.repo.ListCanonical(ctx, airportCode)
	if err != nil {
		return nil, fmt.Errorf("list canonical set for %s: %w", airportCode, err)
	}

	// deep copy so the cached value shares nothing with the repo's
	// records (prevents callers from mutating cached state)
	cp := deepCopyAmenities(canonical)

	// size guard: a pathological set should not wedge the cache
	if b, _ := json.Marshal(cp); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, cp, s.cacheTTLSec)
	}
	return canonical, nil
}

func deepCopyAmenities(in []domain.Amenity) []domain.Amenity {
	out := make([]domain.Amenity, len(in))
	copy(out, in)
	for i := range out {
		if len(out[i].VibeTags) > 0 {
			out[i].VibeTags = append([]string(nil), out[i].VibeTags...)
		}
		if len(out[i].Tags) > 0 {
			out[i].Tags = append([]string(nil), out[i].Tags...)
		}
		if out[i].Coordinates != nil {
			c := *out[i].Coordinates
			out[i].Coordinates = &c
		}
	}
	return out
}
