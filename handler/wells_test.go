package handler

import (
	"math"
	"testing"

	"wellmap/model"
)

func f(v float64) *float64 { return &v }

func TestBuildWellsResponse(t *testing.T) {
	wells := []model.Well{
		{APINumber: "33-053-00001", WellName: "A", Latitude: f(47.0), Longitude: f(-102.0)},
		{APINumber: "33-053-00002", WellName: "B", Latitude: f(48.0), Longitude: f(-103.0)},
		{APINumber: "33-053-00003", WellName: "C"}, // no coordinates
	}
	stim := map[string]model.StimulationSummary{
		"33-053-00001": {Count: 2, MostRecentDate: "7/14/2014"},
	}

	resp := BuildWellsResponse(wells, stim)

	if resp.Count != 3 {
		t.Errorf("count = %d", resp.Count)
	}
	if resp.PlottableCount != 2 {
		t.Errorf("plottable = %d", resp.PlottableCount)
	}
	if resp.Center == nil || math.Abs(resp.Center.Lat-47.5) > 1e-9 || math.Abs(resp.Center.Lon+102.5) > 1e-9 {
		t.Errorf("center = %+v, want mean of valid coordinates", resp.Center)
	}

	// Missing optional fields come back as "N/A".
	c := resp.Wells[2]
	if c.Operator != "N/A" || c.WellStatus != "N/A" || c.ClosestCity != "N/A" || c.DrillingEdgeURL != "N/A" {
		t.Errorf("missing fields not defaulted: %+v", c)
	}

	// Stimulation summaries: real aggregate for the first well, zero default
	// for the rest.
	if s := resp.Wells[0].StimulationSummary; s == nil || s.Count != 2 || s.MostRecentDate != "7/14/2014" {
		t.Errorf("stimulation summary = %+v", resp.Wells[0].StimulationSummary)
	}
	if s := resp.Wells[1].StimulationSummary; s == nil || s.Count != 0 || s.MostRecentDate != "N/A" {
		t.Errorf("default stimulation summary = %+v", resp.Wells[1].StimulationSummary)
	}
}

func TestBuildWellsResponseNoCoordinates(t *testing.T) {
	resp := BuildWellsResponse([]model.Well{{APINumber: "33-053-00001"}}, nil)
	if resp.PlottableCount != 0 {
		t.Errorf("plottable = %d", resp.PlottableCount)
	}
	if resp.Center == nil || *resp.Center != model.DefaultCenter {
		t.Errorf("center = %+v, want default", resp.Center)
	}
}

func TestBuildWellsResponseEmpty(t *testing.T) {
	resp := BuildWellsResponse(nil, nil)
	if resp.Count != 0 || len(resp.Wells) != 0 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Center == nil || *resp.Center != model.DefaultCenter {
		t.Errorf("center = %+v, want default", resp.Center)
	}
}
