// Package render turns a wells API response into the marker set, viewport
// and status line of the Leaflet map page.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"wellmap/model"
)

// Operating region. Coordinates outside this box are bad extractions
// (swapped digits, missing signs) and are skipped rather than plotted in the
// wrong hemisphere.
const (
	MinLat = 45.0
	MaxLat = 50.0
	MinLon = -106.0
	MaxLon = -96.0
)

// Spread constants for wells sharing an identical surface location.
const (
	spreadAngleStep = 0.85   // radians between consecutive duplicates
	spreadRadius    = 0.0025 // degrees, scaled by sqrt of the duplicate index
)

const (
	// DefaultZoom is used when there is nothing to fit the viewport to.
	DefaultZoom = 7
	// MaxFitZoom caps fitBounds so a single marker does not zoom to rooftop level.
	MaxFitZoom = 12

	// FetchFailedStatus is shown verbatim when the wells endpoint cannot be loaded.
	FetchFailedStatus = "Failed to load /api/wells"
)

// Marker is one plotted well: its (possibly spread) position and popup HTML.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Popup string  `json:"popup"`
}

// Bounds is the box enclosing every plotted marker.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Result is one finished render pass.
type Result struct {
	Markers []Marker
	Bounds  *Bounds
	Center  model.Point
	Zoom    int
	Stats   string

	Total   int
	Plotted int
}

// Plottable reports whether a coordinate pair is finite and inside the
// operating region.
func Plottable(lat, lon *float64) bool {
	if lat == nil || lon == nil {
		return false
	}
	la, lo := *lat, *lon
	if math.IsNaN(la) || math.IsInf(la, 0) || math.IsNaN(lo) || math.IsInf(lo, 0) {
		return false
	}
	return la >= MinLat && la <= MaxLat && lo >= MinLon && lo <= MaxLon
}

// SpreadOffset returns the displaced position of the k-th well (0-indexed)
// at an identical coordinate. The spiral keeps every duplicate clickable;
// k=0 stays put.
func SpreadOffset(lat, lon float64, k int) (float64, float64) {
	if k == 0 {
		return lat, lon
	}
	angle := float64(k) * spreadAngleStep
	radius := spreadRadius * math.Sqrt(float64(k))
	return lat + radius*math.Sin(angle), lon + radius*math.Cos(angle)
}

// coordKey groups wells sharing a surface location at 6-decimal precision
// (about 0.1 m, far below extraction accuracy).
func coordKey(lat, lon float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lon)
}

// Build runs the render pass over an API response: filter coordinates,
// spread duplicates, build popups, fit the viewport and write the stats line.
func Build(resp *model.WellsResponse) *Result {
	res := &Result{
		Center: model.DefaultCenter,
		Zoom:   DefaultZoom,
		Total:  resp.Count,
	}
	if resp.Center != nil {
		res.Center = *resp.Center
	}

	seen := make(map[string]int)
	var b *Bounds
	for _, w := range resp.Wells {
		if !Plottable(w.Latitude, w.Longitude) {
			continue
		}
		lat, lon := *w.Latitude, *w.Longitude
		key := coordKey(lat, lon)
		k := seen[key]
		seen[key] = k + 1
		lat, lon = SpreadOffset(lat, lon, k)

		res.Markers = append(res.Markers, Marker{
			Lat:   lat,
			Lon:   lon,
			Popup: PopupHTML(w),
		})
		if b == nil {
			b = &Bounds{MinLat: lat, MinLon: lon, MaxLat: lat, MaxLon: lon}
		} else {
			b.MinLat = math.Min(b.MinLat, lat)
			b.MinLon = math.Min(b.MinLon, lon)
			b.MaxLat = math.Max(b.MaxLat, lat)
			b.MaxLon = math.Max(b.MaxLon, lon)
		}
	}

	res.Bounds = b
	res.Plotted = len(res.Markers)
	res.Stats = fmt.Sprintf("Total wells: %d | Plotted: %d", res.Total, res.Plotted)
	return res
}

// FailureResult is the render pass outcome for an unrecoverable error:
// default view, no markers, the error in the status line.
func FailureResult(status string) *Result {
	return &Result{
		Center: model.DefaultCenter,
		Zoom:   DefaultZoom,
		Stats:  status,
	}
}

// Client fetches a wells endpoint and renders it. It performs exactly one
// request per Run; there are no retries.
type Client struct {
	HTTPClient *http.Client
	Endpoint   string
}

// NewClient builds a render client for the given wells endpoint.
func NewClient(endpoint string) *Client {
	return &Client{HTTPClient: http.DefaultClient, Endpoint: endpoint}
}

// Run fetches the endpoint and builds the render result. A non-2xx response
// is not an error: it yields the fixed failure status and the default view.
// Transport and decode errors are returned to the caller.
func (c *Client) Run(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch wells: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return FailureResult(FetchFailedStatus), nil
	}

	var wells model.WellsResponse
	if err := json.NewDecoder(resp.Body).Decode(&wells); err != nil {
		return nil, fmt.Errorf("decode wells response: %w", err)
	}
	return Build(&wells), nil
}
