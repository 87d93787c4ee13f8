package app_test

import (
	"context"
	"errors"
	"testing"

	"terminal_plus/internal/app"
	"terminal_plus/internal/catalog"
	"terminal_plus/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	canonical    []domain.Amenity
	amenity      domain.Amenity
	listCalls    int
	replaceCalls int
	skips        []domain.SkippedRecord
}

func (f *fakeRepo) ReplaceCanonical(ctx context.Context, airportCode string, amenities []domain.Amenity) error {
	f.replaceCalls++
	f.canonical = amenities
	return nil
}
func (f *fakeRepo) LogSkips(ctx context.Context, runID string, skips []domain.SkippedRecord) error {
	f.skips = append(f.skips, skips...)
	return nil
}
func (f *fakeRepo) ListCanonical(ctx context.Context, airportCode string) ([]domain.Amenity, error) {
	f.listCalls++
	return f.canonical, nil
}
func (f *fakeRepo) GetAmenity(ctx context.Context, slug, terminalCode string) (domain.Amenity, error) {
	if f.amenity.Slug != slug {
		return domain.Amenity{}, domain.ErrNotFound
	}
	return f.amenity, nil
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.Amenity:
		*d = v.([]domain.Amenity)
	case *domain.Amenity:
		*d = v.(domain.Amenity)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

func amenity(name, terminal string, vibes ...string) domain.Amenity {
	slug, _ := catalog.NormalizeSlug(name, terminal)
	return domain.Amenity{
		Slug:         slug,
		Name:         name,
		TerminalCode: terminal,
		AirportCode:  "SIN",
		Category:     "Dining",
		Status:       domain.StatusActive,
		VibeTags:     vibes,
		Tags:         []string{},
	}
}

var testCollections = []domain.Collection{
	{
		ID:       "hawker-heaven",
		Name:     "Hawker Heaven",
		Icon:     "🍜",
		Gradient: "from-orange-400 to-red-500",
		MemberSlugs: []string{
			"killiney-kopitiam-sint3",
			"gucci-boutique-sint1",
			"missing-amenity-slug",
		},
		Universal: true,
	},
	{
		ID:          "syd-only",
		Name:        "Sydney Picks",
		MemberSlugs: []string{"whatever-sydt1"},
		Airports:    []string{"SYD"},
	},
}

// ---- tests ----

func TestGetCollectionView_UnknownID(t *testing.T) {
	q := app.NewQueryService(&fakeRepo{}, &fakeCache{}, 300, testCollections)
	_, err := q.GetCollectionView(context.Background(), "nope", "SIN", "SIN-T1", 9)
	if !errors.Is(err, domain.ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestGetCollectionView_ResolvesRanksAndLabels(t *testing.T) {
	repo := &fakeRepo{canonical: []domain.Amenity{
		amenity("Gucci Boutique", "SIN-T1", "Shop"),
		amenity("Killiney Kopitiam", "SIN-T3", "Coffee", "Refuel"),
	}}
	q := app.NewQueryService(repo, &fakeCache{}, 300, testCollections)

	view, err := q.GetCollectionView(context.Background(), "hawker-heaven", "SIN", "SIN-T3", 7)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !view.Applicable {
		t.Fatalf("universal collection must apply")
	}
	if view.TotalCount != 2 || view.InTerminalCount != 1 {
		t.Fatalf("counts: total=%d inTerminal=%d", view.TotalCount, view.InTerminalCount)
	}
	// 7am: the coffee shop outranks the boutique.
	if view.Members[0].Name != "Killiney Kopitiam" {
		t.Fatalf("expected coffee first at 7am, got %q", view.Members[0].Name)
	}
	if len(view.Missing) != 1 || view.Missing[0] != "missing-amenity-slug" {
		t.Fatalf("missing: %v", view.Missing)
	}
	if view.Badge.Tier != domain.TierMicro {
		t.Fatalf("badge: %+v", view.Badge)
	}
	if view.Health.Label != domain.HealthMixed || view.Health.Ratio != 0.5 {
		t.Fatalf("health: %+v", view.Health)
	}
}

func TestGetCollectionView_OutOfScopeAirport(t *testing.T) {
	q := app.NewQueryService(&fakeRepo{}, &fakeCache{}, 300, testCollections)
	view, err := q.GetCollectionView(context.Background(), "syd-only", "SIN", "SIN-T1", 12)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if view.Applicable || view.TotalCount != 0 || len(view.Members) != 0 {
		t.Fatalf("expected empty non-applicable view, got %+v", view)
	}
}

func TestGetCollectionView_CachesCanonicalSet(t *testing.T) {
	repo := &fakeRepo{canonical: []domain.Amenity{amenity("Killiney Kopitiam", "SIN-T3")}}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 300, testCollections)

	if _, err := q.GetCollectionView(context.Background(), "hawker-heaven", "SIN", "SIN-T3", 9); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := q.GetCollectionView(context.Background(), "hawker-heaven", "SIN", "SIN-T3", 9); err != nil {
		t.Fatalf("err: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected one repo read, got %d", repo.listCalls)
	}
}

func TestGetCollectionView_CachedSetSharesNothingWithRepo(t *testing.T) {
	repo := &fakeRepo{canonical: []domain.Amenity{amenity("Killiney Kopitiam", "SIN-T3", "Coffee")}}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 300, testCollections)

	if _, err := q.GetCollectionView(context.Background(), "hawker-heaven", "SIN", "SIN-T3", 9); err != nil {
		t.Fatalf("err: %v", err)
	}

	// Mutate the repo's nested slice; the cached copy must not see it
	// even with a cache that stores values by reference.
	repo.canonical[0].VibeTags[0] = "MUTATED"

	view, err := q.GetCollectionView(context.Background(), "hawker-heaven", "SIN", "SIN-T3", 9)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(view.Members) != 1 || view.Members[0].VibeTags[0] != "Coffee" {
		t.Fatalf("cached set aliases repo data: %+v", view.Members)
	}
}

func TestListCollections_ScopesAndCounts(t *testing.T) {
	repo := &fakeRepo{canonical: []domain.Amenity{
		amenity("Gucci Boutique", "SIN-T1"),
		amenity("Killiney Kopitiam", "SIN-T3"),
	}}
	q := app.NewQueryService(repo, &fakeCache{}, 300, testCollections)

	sums, err := q.ListCollections(context.Background(), "SIN")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(sums) != 1 || sums[0].ID != "hawker-heaven" {
		t.Fatalf("expected only the universal collection for SIN, got %+v", sums)
	}
	if sums[0].TotalCount != 2 {
		t.Fatalf("total: %d", sums[0].TotalCount)
	}
	if sums[0].TerminalCounts["SIN-T1"] != 1 || sums[0].TerminalCounts["SIN-T3"] != 1 {
		t.Fatalf("terminal counts: %v", sums[0].TerminalCounts)
	}
	if sums[0].Badge.Tier != domain.TierMicro {
		t.Fatalf("badge: %+v", sums[0].Badge)
	}
}

func TestGetAmenity_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{amenity: amenity("Killiney Kopitiam", "SIN-T3")}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 300, testCollections)

	a, err := q.GetAmenity(context.Background(), "killiney-kopitiam-sint3", "SIN-T3")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if a.Name != "Killiney Kopitiam" {
		t.Fatalf("unexpected amenity: %+v", a)
	}

	// Mutate repo to prove the second read is served from cache.
	repo.amenity.Name = "SHOULD NOT SEE THIS"
	a2, err := q.GetAmenity(context.Background(), "killiney-kopitiam-sint3", "SIN-T3")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if a2.Name != "Killiney Kopitiam" {
		t.Fatalf("expected cached name, got %q", a2.Name)
	}
}

func TestGetAmenity_NotFound(t *testing.T) {
	q := app.NewQueryService(&fakeRepo{}, &fakeCache{}, 300, testCollections)
	_, err := q.GetAmenity(context.Background(), "nope", "SIN-T1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScoreVibe_PassThrough(t *testing.T) {
	q := app.NewQueryService(&fakeRepo{}, &fakeCache{}, 300, testCollections)
	got := q.ScoreVibe("Refuel", domain.VibeContext{
		TimeOfDay:   8,
		JourneyType: domain.JourneyTransit,
		StressLevel: domain.StressLow,
	})
	if got.Score != 70 {
		t.Fatalf("score: %d", got.Score)
	}
}
