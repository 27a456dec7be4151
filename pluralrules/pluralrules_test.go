package pluralrules

import "testing"

func TestSelect(t *testing.T) {
	tests := []struct {
		locale string
		n      int
		want   string
	}{
		{"en", 1, "one"},
		{"en", 0, "other"},
		{"en", 2, "other"},
		{"da", 1, "one"},
		{"da", 7, "other"},
		{"ja", 1, "other"},
		{"ja", 5, "other"},
		{"ru", 1, "one"},
		{"ru", 2, "few"},
		{"ru", 5, "many"},
		{"ru", 11, "many"},
		{"ru", 21, "one"},
		{"ar", 0, "zero"},
		{"ar", 1, "one"},
		{"ar", 2, "two"},
		{"ar", 3, "few"},
		{"ar", 11, "many"},
		{"pt_BR", 1, "one"},
		{"en", -1, "one"},
	}

	for _, tc := range tests {
		if got := Select(tc.locale, tc.n); got != tc.want {
			t.Fatalf("Select(%q, %d) = %q, want %q", tc.locale, tc.n, got, tc.want)
		}
	}
}

func TestSelect_UnknownLocaleFallsBack(t *testing.T) {
	if got := Select("not a locale", 1); got != "one" {
		t.Fatalf("Select fallback = %q, want %q", got, "one")
	}
}

func TestCategories(t *testing.T) {
	tests := []struct {
		locale string
		want   []string
	}{
		{"en", []string{"one", "other"}},
		{"da", []string{"one", "other"}},
		{"en_US", []string{"one", "other"}},
		{"ja", []string{"other"}},
		{"ru", []string{"one", "few", "many", "other"}},
		{"pt-BR", []string{"one", "many", "other"}},
		{"ar", []string{"zero", "one", "two", "few", "many", "other"}},
		{"xx", []string{"one", "other"}},
	}

	for _, tc := range tests {
		got := Categories(tc.locale)
		if len(got) != len(tc.want) {
			t.Fatalf("Categories(%q) = %v, want %v", tc.locale, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("Categories(%q) = %v, want %v", tc.locale, got, tc.want)
			}
		}
	}
}

func TestSupports(t *testing.T) {
	if !Supports("en", "one") {
		t.Fatal("en should support 'one'")
	}
	if Supports("ja", "one") {
		t.Fatal("ja should not support 'one'")
	}
	if !Supports("ja", "other") {
		t.Fatal("every locale supports 'other'")
	}
}
