package catalog_test

import (
	"errors"
	"testing"

	"terminal_plus/internal/catalog"
	"terminal_plus/internal/domain"
)

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		name, terminal, want string
	}{
		{"Betty's Burgers", "T1", "bettys-burgers-t1"},
		{"Ya Kun Kaya Toast", "SIN-T3", "ya-kun-kaya-toast-sint3"},
		{"  Spaced   Out  ", "T2", "spaced-out-t2"},
		{"Café #1!", "SYD-T1", "caf-1-sydt1"},
	}
	for _, c := range cases {
		got, err := catalog.NormalizeSlug(c.name, c.terminal)
		if err != nil {
			t.Fatalf("NormalizeSlug(%q, %q): %v", c.name, c.terminal, err)
		}
		if got != c.want {
			t.Fatalf("NormalizeSlug(%q, %q) = %q, want %q", c.name, c.terminal, got, c.want)
		}
	}
}

func TestNormalizeSlug_EmptyAfterStripping(t *testing.T) {
	for _, name := range []string{"", "!!!", "---", "   "} {
		_, err := catalog.NormalizeSlug(name, "T1")
		if !errors.Is(err, domain.ErrInvalidName) {
			t.Fatalf("NormalizeSlug(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestNormalizeSlug_Deterministic(t *testing.T) {
	first, err := catalog.NormalizeSlug("Gucci", "SYD-T1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	for i := 0; i < 50; i++ {
		got, _ := catalog.NormalizeSlug("Gucci", "SYD-T1")
		if got != first {
			t.Fatalf("call %d produced %q, first call produced %q", i, got, first)
		}
	}
}
