package render

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wellmap/model"
)

func f(v float64) *float64 { return &v }

func TestPlottable(t *testing.T) {
	tests := []struct {
		name string
		lat  *float64
		lon  *float64
		want bool
	}{
		{"inside region", f(47.5), f(-102.0), true},
		{"on south edge", f(45.0), f(-100.0), true},
		{"on east edge", f(48.0), f(-96.0), true},
		{"north of region", f(51.0), f(-100.0), false},
		{"south of region", f(44.9), f(-100.0), false},
		{"east of region", f(47.0), f(-95.0), false},
		{"west of region", f(47.0), f(-107.0), false},
		{"positive longitude", f(47.0), f(102.0), false},
		{"missing latitude", nil, f(-100.0), false},
		{"missing longitude", f(47.0), nil, false},
		{"nan latitude", f(math.NaN()), f(-100.0), false},
		{"inf longitude", f(47.0), f(math.Inf(1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Plottable(tt.lat, tt.lon); got != tt.want {
				t.Errorf("Plottable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpreadOffset(t *testing.T) {
	const lat, lon = 47.123456, -102.654321

	// The first well at a coordinate stays put.
	if la, lo := SpreadOffset(lat, lon, 0); la != lat || lo != lon {
		t.Fatalf("k=0 moved: got (%v, %v)", la, lo)
	}

	// The k-th duplicate sits at radius 0.0025*sqrt(k), angle 0.85*k.
	for _, k := range []int{1, 2, 3, 7} {
		la, lo := SpreadOffset(lat, lon, k)
		angle := 0.85 * float64(k)
		radius := 0.0025 * math.Sqrt(float64(k))
		wantLa := lat + radius*math.Sin(angle)
		wantLo := lon + radius*math.Cos(angle)
		if math.Abs(la-wantLa) > 1e-12 || math.Abs(lo-wantLo) > 1e-12 {
			t.Errorf("k=%d: got (%v, %v), want (%v, %v)", k, la, lo, wantLa, wantLo)
		}
		dist := math.Hypot(la-lat, lo-lon)
		if math.Abs(dist-radius) > 1e-12 {
			t.Errorf("k=%d: displacement %v, want radius %v", k, dist, radius)
		}
	}
}

func TestBuildSpreadsDuplicatesAndCounts(t *testing.T) {
	resp := &model.WellsResponse{
		Count: 3,
		Wells: []model.WellJSON{
			{APINumber: "33-053-00001", WellName: "A", Latitude: f(47.1), Longitude: f(-102.5)},
			{APINumber: "33-053-00002", WellName: "B", Latitude: f(47.1), Longitude: f(-102.5)},
			{APINumber: "33-053-00003", WellName: "C", Latitude: f(47.2), Longitude: f(-102.6)},
		},
	}
	res := Build(resp)

	if len(res.Markers) != 3 {
		t.Fatalf("plotted %d markers, want 3", len(res.Markers))
	}
	if res.Stats != "Total wells: 3 | Plotted: 3" {
		t.Errorf("stats = %q", res.Stats)
	}

	// First occurrence unmoved, duplicate displaced.
	if res.Markers[0].Lat != 47.1 || res.Markers[0].Lon != -102.5 {
		t.Errorf("first marker moved: %+v", res.Markers[0])
	}
	if res.Markers[1].Lat == 47.1 && res.Markers[1].Lon == -102.5 {
		t.Error("duplicate marker was not displaced")
	}
	wantLat := 47.1 + 0.0025*math.Sin(0.85)
	wantLon := -102.5 + 0.0025*math.Cos(0.85)
	if math.Abs(res.Markers[1].Lat-wantLat) > 1e-12 || math.Abs(res.Markers[1].Lon-wantLon) > 1e-12 {
		t.Errorf("duplicate at (%v, %v), want (%v, %v)",
			res.Markers[1].Lat, res.Markers[1].Lon, wantLat, wantLon)
	}

	if res.Bounds == nil {
		t.Fatal("bounds missing")
	}
	if res.Bounds.MaxLat < 47.2 || res.Bounds.MinLon > -102.6 {
		t.Errorf("bounds do not cover all markers: %+v", res.Bounds)
	}
}

func TestBuildSkipsBadCoordinates(t *testing.T) {
	resp := &model.WellsResponse{
		Count: 4,
		Wells: []model.WellJSON{
			{APINumber: "1", Latitude: f(47.0), Longitude: f(-101.0)},
			{APINumber: "2", Latitude: f(12.0), Longitude: f(-101.0)}, // out of region
			{APINumber: "3", Latitude: nil, Longitude: f(-101.0)},    // missing
			{APINumber: "4", Latitude: f(47.0), Longitude: f(30.0)},  // wrong hemisphere
		},
	}
	res := Build(resp)

	if len(res.Markers) != 1 {
		t.Fatalf("plotted %d markers, want 1", len(res.Markers))
	}
	if res.Stats != "Total wells: 4 | Plotted: 1" {
		t.Errorf("stats = %q", res.Stats)
	}
	// Bounds only cover the plotted point.
	if res.Bounds.MinLat != 47.0 || res.Bounds.MaxLat != 47.0 ||
		res.Bounds.MinLon != -101.0 || res.Bounds.MaxLon != -101.0 {
		t.Errorf("bounds include skipped points: %+v", res.Bounds)
	}
}

func TestBuildEmptyUsesDefaultView(t *testing.T) {
	res := Build(&model.WellsResponse{Count: 0})
	if len(res.Markers) != 0 || res.Bounds != nil {
		t.Fatalf("expected empty result, got %+v", res)
	}
	if res.Center != model.DefaultCenter || res.Zoom != DefaultZoom {
		t.Errorf("default view not applied: center=%+v zoom=%d", res.Center, res.Zoom)
	}
	if res.Stats != "Total wells: 0 | Plotted: 0" {
		t.Errorf("stats = %q", res.Stats)
	}
}

func TestClientRunFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL + "/api/wells").Run(context.Background())
	if err != nil {
		t.Fatalf("fetch failure should not be an error: %v", err)
	}
	if res.Stats != "Failed to load /api/wells" {
		t.Errorf("stats = %q", res.Stats)
	}
	if len(res.Markers) != 0 {
		t.Errorf("markers plotted on failure: %d", len(res.Markers))
	}
	if res.Center != model.DefaultCenter || res.Zoom != DefaultZoom {
		t.Errorf("default view not applied: %+v", res)
	}
}

func TestClientRunDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Run(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClientRunSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 2,
			"center": {"lat": 47.5, "lon": -100.5},
			"wells": [
				{"api_number": "33-053-00001", "well_name": "A", "latitude": 47.3, "longitude": -102.1},
				{"api_number": "33-053-00002", "well_name": "B", "latitude": 60.0, "longitude": -102.1}
			]
		}`))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Markers) != 1 {
		t.Fatalf("plotted %d markers, want 1", len(res.Markers))
	}
	if res.Stats != "Total wells: 2 | Plotted: 1" {
		t.Errorf("stats = %q", res.Stats)
	}
}

func TestWritePage(t *testing.T) {
	res := Build(&model.WellsResponse{
		Count: 1,
		Wells: []model.WellJSON{
			{APINumber: "33-053-00001", WellName: "Bear Den 4-12H", Latitude: f(47.3), Longitude: f(-102.1)},
		},
	})

	var b strings.Builder
	if err := WritePage(&b, res); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	page := b.String()

	for _, want := range []string{
		`id="map"`,
		`id="stats"`,
		"Total wells: 1 | Plotted: 1",
		"openstreetmap.org/copyright",
		"tile.openstreetmap.org",
		"fitBounds",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
