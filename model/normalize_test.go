package model

import (
	"reflect"
	"testing"
)

func TestNormalizeNumeric(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"empty", "", 0},
		{"placeholder na", "N/A", 0},
		{"placeholder dash", "--", 0},
		{"plain", "1234", 1234},
		{"grouped", "1,234,567", 1234567},
		{"decimal", "12.5", 12.5},
		{"k suffix", "3.2K", 3200},
		{"m suffix", "1.5M", 1.5e6},
		{"b suffix", "2B", 2e9},
		{"negative", "-42", -42},
		{"with unit text", "1,234 bbl", 1234},
		{"unit starting with b", "128,970 Barrels", 128970},
		{"bcf unit is not a b suffix", "5 bcf", 5},
		{"suffix followed by unit", "3.2K bbl", 3200},
		{"spaced suffix", "3.2 K", 3200},
		{"garbage", "none", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeNumeric(tt.in); got != tt.want {
				t.Errorf("NormalizeNumeric(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProductionNumeric(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"members only banner", "Members Only", 0},
		{"township range", "152N 96W", 0},
		{"bare year", "2014", 0},
		{"year with unit", "2014 bbl", 2014},
		{"real production", "128,970 barrels", 128970},
		{"gas mcf", "1.2M MCF", 1.2e6},
		{"large plain number", "3456789", 3456789},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProductionNumeric(tt.in); got != tt.want {
				t.Errorf("ProductionNumeric(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeScraped(t *testing.T) {
	if got := SanitizeScraped("  Active   "); got != "Active" {
		t.Errorf("got %q, want Active", got)
	}
	if got := SanitizeScraped("152N 96W"); got != "N/A" {
		t.Errorf("township string should sanitize to N/A, got %q", got)
	}
	if got := SanitizeScraped(""); got != "N/A" {
		t.Errorf("empty should sanitize to N/A, got %q", got)
	}
}

func TestCanonicalAPI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ten digits", "3305301234", "33-053-01234"},
		{"already formatted", "33-053-01234", "33-053-01234"},
		{"eleven digits drops middle", "33053012345", "33-053-12345"},
		{"fourteen digits truncated", "33053012340000", "33-053-01234"},
		{"too short passes through", "33-053", "33-053"},
		{"whitespace normalized", "  33 053 ", "33 053"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalAPI(tt.in); got != tt.want {
				t.Errorf("CanonicalAPI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugs(t *testing.T) {
	if got := Slugify("Smith & Jones #4-12H"); got != "smith-and-jones-4-12h" {
		t.Errorf("Slugify = %q", got)
	}
	if got := StateSlug("ND"); got != "north-dakota" {
		t.Errorf("StateSlug(ND) = %q", got)
	}
	if got := StateSlug("Montana"); got != "montana" {
		t.Errorf("StateSlug(Montana) = %q", got)
	}
	if got := CountySlug("McKenzie County"); got != "mckenzie" {
		t.Errorf("CountySlug = %q", got)
	}
}

func TestNameTokens(t *testing.T) {
	got := NameTokens("Bear Den 4-12H No 3")
	want := []string{"bear", "den", "12h"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NameTokens = %v, want %v", got, want)
	}
}
