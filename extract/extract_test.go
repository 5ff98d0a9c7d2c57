package extract

import (
	"math"
	"testing"
)

func TestDMSToDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
		ok   bool
	}{
		{"north", `47° 30' 36 N`, 47.51, true},
		{"west", `102° 15' 0 W`, -102.25, true},
		{"fractional seconds", `47° 0' 7.2 N`, 47.002, true},
		{"plain decimal rejected", "47.5", 0, false},
		{"garbage", "not a coordinate", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DMSToDecimal(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeAPI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ten digits", "3305301234", "33-053-01234"},
		{"fourteen digits", "33053012340000", "33-053-01234-00-00"},
		{"spaced digits", "33 053 01234", "33-053-01234"},
		{"too short", "330530", ""},
		{"letters rejected", "33A5301234", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAPI(tt.in); got != tt.want {
				t.Errorf("NormalizeAPI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractWell(t *testing.T) {
	doc := Document{
		WellName:    "BEAR DEN 4-12H  API: 33-053-01234",
		PDFFilename: "W12345.pdf",
		Pages: []Page{
			{
				Text: "API #: 33-053-01234\nNDIC File Number: 12345\nCounty: McKenzie\n" +
					"Latitude: 47.512345\nLongitude: 102.654321\nDatum: North American Datum 1983",
				Fields: map[string]string{
					"Well Operator": "Continental Resources Inc",
				},
			},
		},
	}
	well := ExtractWell(doc)

	if well.APINumber != "33-053-01234" {
		t.Errorf("api = %q", well.APINumber)
	}
	if well.WellName != "BEAR DEN 4-12H" {
		t.Errorf("well name = %q (API suffix should be stripped)", well.WellName)
	}
	if well.WellNumber != "12345" {
		t.Errorf("well number = %q", well.WellNumber)
	}
	if well.Operator != "Continental Resources Inc" {
		t.Errorf("operator = %q", well.Operator)
	}
	if well.County != "Mckenzie" {
		t.Errorf("county = %q", well.County)
	}
	if well.State != "ND" {
		t.Errorf("state = %q", well.State)
	}
	if well.Latitude == nil || math.Abs(*well.Latitude-47.512345) > 1e-9 {
		t.Errorf("latitude = %v", well.Latitude)
	}
	// Longitude published without a sign must flip west.
	if well.Longitude == nil || math.Abs(*well.Longitude+102.654321) > 1e-9 {
		t.Errorf("longitude = %v", well.Longitude)
	}
	if well.Datum != "NAD83" {
		t.Errorf("datum = %q", well.Datum)
	}
}

func TestExtractWellFallsBackToFileNumber(t *testing.T) {
	doc := Document{
		PDFFilename: "W99001.pdf",
		Pages:       []Page{{Text: "no identifiers on this page"}},
	}
	well := ExtractWell(doc)
	if well.APINumber != "NDIC-99001" {
		t.Errorf("api = %q, want NDIC-99001", well.APINumber)
	}
}

func TestExtractWellRejectsOutOfBandCoordinates(t *testing.T) {
	doc := Document{
		PDFFilename: "W12346.pdf",
		Pages: []Page{{
			Text: "API #: 3305301235\nLatitude: 12.345678\nLongitude: 45.0",
		}},
	}
	well := ExtractWell(doc)
	if well.Latitude != nil {
		t.Errorf("latitude %v should be rejected", *well.Latitude)
	}
	if well.Longitude != nil {
		t.Errorf("longitude %v should be rejected", *well.Longitude)
	}
}

func TestExtractOperatorFiltersJunk(t *testing.T) {
	doc := Document{
		PDFFilename: "W12347.pdf",
		Pages: []Page{
			{Fields: map[string]string{"Operator": "Rig #14"}},
			{Fields: map[string]string{"Well Operator": "Hess Corporation   Kick-off #: 3"}},
		},
	}
	well := ExtractWell(doc)
	if well.Operator != "Hess Corporation" {
		t.Errorf("operator = %q, want Hess Corporation", well.Operator)
	}
}
