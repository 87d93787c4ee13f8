package catalog_test

import (
	"testing"

	"terminal_plus/internal/catalog"
	"terminal_plus/internal/domain"
)

func named(name, category string, vibes ...string) domain.Amenity {
	a := am(name, "SIN-T1")
	a.Category = category
	a.VibeTags = vibes
	return a
}

func TestBandForHour(t *testing.T) {
	cases := map[int]catalog.TimeBand{
		5:  catalog.BandEarlyMorning,
		8:  catalog.BandEarlyMorning,
		9:  catalog.BandMorning,
		12: catalog.BandLunch,
		15: catalog.BandAfternoon,
		18: catalog.BandEvening,
		20: catalog.BandEvening,
		21: catalog.BandLateNight,
		0:  catalog.BandLateNight,
		4:  catalog.BandLateNight,
	}
	for hour, want := range cases {
		if got := catalog.BandForHour(hour); got != want {
			t.Fatalf("BandForHour(%d) = %s, want %s", hour, got, want)
		}
	}
}

func TestRankByTime_EarlyMorningPrefersCoffee(t *testing.T) {
	in := []domain.Amenity{
		named("Gucci Boutique", "Shopping", "Shop"),
		named("Killiney Kopitiam", "Dining", "Coffee", "Refuel"),
		named("Snooze Lounge", "Relaxation", "Comfort"),
	}
	out := catalog.RankByTime(in, 7)
	if out[0].Name != "Killiney Kopitiam" {
		t.Fatalf("expected coffee first at 7am, got %q", out[0].Name)
	}
}

func TestRankByTime_StableOnTies(t *testing.T) {
	// None of these match any late-night keyword: all score 0 and must
	// keep their input order.
	in := []domain.Amenity{
		named("Alpha", "Misc"),
		named("Beta", "Misc"),
		named("Gamma", "Misc"),
	}
	out := catalog.RankByTime(in, 23)
	for i, a := range in {
		if out[i].Name != a.Name {
			t.Fatalf("tie order broken at %d: %q != %q", i, out[i].Name, a.Name)
		}
	}
}

func TestRankByTime_DoesNotMutateInput(t *testing.T) {
	in := []domain.Amenity{
		named("Zeta Bar", "Bar"),
		named("Alpha Cafe", "Dining", "Coffee"),
	}
	_ = catalog.RankByTime(in, 19)
	if in[0].Name != "Zeta Bar" {
		t.Fatalf("input slice was reordered")
	}
}

func TestRankByTime_MatchesVibeTagsAndCategory(t *testing.T) {
	in := []domain.Amenity{
		named("Plain Name", "Misc", "dinner"),  // high tier via vibe tag at evening
		named("Other Place", "Lounge"),         // medium tier via category
		named("No Match At All", "Misc"),       // zero
	}
	out := catalog.RankByTime(in, 19)
	if out[0].Name != "Plain Name" || out[1].Name != "Other Place" {
		t.Fatalf("order: %q, %q, %q", out[0].Name, out[1].Name, out[2].Name)
	}
}

func TestRankByTime_Deterministic(t *testing.T) {
	in := []domain.Amenity{
		named("Killiney Kopitiam", "Dining", "Coffee"),
		named("Gucci", "Shopping"),
		named("Sleep Pods", "Relaxation", "Rest"),
	}
	first := catalog.RankByTime(in, 22)
	for i := 0; i < 10; i++ {
		got := catalog.RankByTime(in, 22)
		for j := range got {
			if got[j].Slug != first[j].Slug {
				t.Fatalf("run %d position %d differs", i, j)
			}
		}
	}
}
