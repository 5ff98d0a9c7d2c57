package render

import (
	"strings"
	"testing"

	"wellmap/model"
)

func TestFmtNum(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"nil", nil, "0"},
		{"zero", f(0), "0"},
		{"small", f(42), "42"},
		{"grouped", f(1234567), "1,234,567"},
		{"grouped larger", f(128970456), "128,970,456"},
		{"fractional", f(1234.5), "1,234.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FmtNum(tt.in); got != tt.want {
				t.Errorf("FmtNum = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPopupHTMLMissingFields(t *testing.T) {
	// Only identity set; every optional field should render as N/A and the
	// external link must be absent.
	w := model.WellJSON{
		APINumber:       "33-053-00001",
		WellName:        "Bear Den 4-12H",
		DrillingEdgeURL: "N/A",
	}
	html := PopupHTML(w)

	if !strings.Contains(html, "Bear Den 4-12H") {
		t.Error("well name missing")
	}
	if got := strings.Count(html, "N/A"); got < 6 {
		t.Errorf("expected N/A substitutions for missing fields, found %d", got)
	}
	if strings.Contains(html, "<a ") {
		t.Error("external link rendered for N/A url")
	}
	// Zero production renders as "0", not N/A.
	if !strings.Contains(html, "Oil Produced (bbl)") {
		t.Error("production row missing")
	}
}

func TestPopupHTMLLink(t *testing.T) {
	w := model.WellJSON{
		APINumber:       "33-053-00001",
		WellName:        "Bear Den 4-12H",
		DrillingEdgeURL: "https://www.drillingedge.com/north-dakota/wells/bear-den-4-12h/33-053-00001",
	}
	html := PopupHTML(w)
	if !strings.Contains(html, `<a href="https://www.drillingedge.com/`) {
		t.Error("external link missing for valid url")
	}
	if !strings.Contains(html, "View on DrillingEdge") {
		t.Error("link text missing")
	}
}

func TestPopupHTMLEscapes(t *testing.T) {
	w := model.WellJSON{
		APINumber: "33-053-00001",
		WellName:  `<script>alert("x")</script>`,
		Operator:  "Smith & Jones",
	}
	html := PopupHTML(w)
	if strings.Contains(html, "<script>") {
		t.Error("well name not escaped")
	}
	if !strings.Contains(html, "Smith &amp; Jones") {
		t.Error("operator not escaped")
	}
}

func TestPopupHTMLStimulationSummary(t *testing.T) {
	w := model.WellJSON{
		APINumber: "33-053-00001",
		WellName:  "Bear Den 4-12H",
		StimulationSummary: &model.StimulationSummary{
			Count:          3,
			MostRecentDate: "7/14/2014",
		},
	}
	html := PopupHTML(w)
	if !strings.Contains(html, "3 (last: 7/14/2014)") {
		t.Errorf("stimulation summary not rendered: %s", html)
	}
}
