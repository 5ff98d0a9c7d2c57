package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

// pageTemplate is the standalone Leaflet document. The render result is
// embedded directly so the page works without a live API behind it.
var pageTemplate = template.Must(template.New("wellmap").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>North Dakota Oil Wells</title>
  <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
  <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
  <style>
    html, body { height: 100%; margin: 0; font-family: system-ui, sans-serif; }
    #map { height: calc(100% - 2.5rem); }
    #stats { height: 2.5rem; line-height: 2.5rem; padding: 0 1rem; background: #1b262c; color: #eee; font-size: 0.9rem; }
    .well-popup { min-width: 220px; }
    .well-popup b { display: block; margin-bottom: 0.4em; }
    .popup-row { display: flex; justify-content: space-between; gap: 1em; }
    .popup-label { color: #666; }
  </style>
</head>
<body>
  <div id="stats">{{.Stats}}</div>
  <div id="map"></div>
  <script>
    const markers = {{.MarkersJSON}};
    const bounds = {{.BoundsJSON}};

    const map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
    L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
      maxZoom: 19,
      attribution: '&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors'
    }).addTo(map);

    for (const m of markers) {
      L.marker([m.lat, m.lon]).addTo(map).bindPopup(m.popup);
    }
    if (bounds) {
      map.fitBounds([[bounds.min_lat, bounds.min_lon], [bounds.max_lat, bounds.max_lon]],
        { padding: [40, 40], maxZoom: {{.MaxZoom}} });
    }
  </script>
</body>
</html>
`))

type pageData struct {
	Stats       string
	MarkersJSON template.JS
	BoundsJSON  template.JS
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	MaxZoom     int
}

// WritePage renders the Leaflet document for a finished render pass.
func WritePage(w io.Writer, res *Result) error {
	markers := res.Markers
	if markers == nil {
		markers = []Marker{}
	}
	mj, err := json.Marshal(markers)
	if err != nil {
		return fmt.Errorf("encode markers: %w", err)
	}
	bj := []byte("null")
	if res.Bounds != nil {
		if bj, err = json.Marshal(res.Bounds); err != nil {
			return fmt.Errorf("encode bounds: %w", err)
		}
	}
	return pageTemplate.Execute(w, pageData{
		Stats:       res.Stats,
		MarkersJSON: template.JS(mj),
		BoundsJSON:  template.JS(bj),
		CenterLat:   res.Center.Lat,
		CenterLon:   res.Center.Lon,
		Zoom:        res.Zoom,
		MaxZoom:     MaxFitZoom,
	})
}
