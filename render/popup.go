package render

import (
	"fmt"
	"html"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"wellmap/model"
)

var numPrinter = message.NewPrinter(language.AmericanEnglish)

// FmtNum formats a production figure with thousands separators. A missing
// value renders as "0".
func FmtNum(v *float64) string {
	if v == nil {
		return "0"
	}
	f := *v
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	if f == math.Trunc(f) {
		return numPrinter.Sprintf("%d", int64(f))
	}
	return numPrinter.Sprintf("%.1f", f)
}

// orNA substitutes "N/A" for empty values.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// validURL reports whether a drillingedge URL is worth linking.
func validURL(u string) bool {
	return u != "" && u != "N/A" &&
		(strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://"))
}

func popupRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<div class="popup-row"><span class="popup-label">%s</span><span>%s</span></div>`,
		html.EscapeString(label), html.EscapeString(orNA(value)))
}

// PopupHTML builds the label/value grid shown when a marker is clicked.
// Every value is escaped; the external link is only emitted for a usable URL.
func PopupHTML(w model.WellJSON) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="well-popup"><b>%s</b>`, html.EscapeString(orNA(w.WellName)))

	popupRow(&b, "API #", w.APINumber)
	popupRow(&b, "Operator", w.Operator)
	popupRow(&b, "County", w.County)
	popupRow(&b, "State", w.State)
	popupRow(&b, "Status", w.WellStatus)
	popupRow(&b, "Type", w.WellType)
	popupRow(&b, "Closest City", w.ClosestCity)
	popupRow(&b, "Oil Produced (bbl)", FmtNum(&w.BarrelsOilProduced))
	popupRow(&b, "Gas Produced (MCF)", FmtNum(&w.GasProduced))

	if s := w.StimulationSummary; s != nil {
		popupRow(&b, "Stimulations", fmt.Sprintf("%d (last: %s)", s.Count, orNA(s.MostRecentDate)))
	} else {
		popupRow(&b, "Stimulations", "N/A")
	}
	popupRow(&b, "Well File", w.PDFFilename)

	if validURL(w.DrillingEdgeURL) {
		fmt.Fprintf(&b, `<a href="%s" target="_blank" rel="noopener">View on DrillingEdge</a>`,
			html.EscapeString(w.DrillingEdgeURL))
	}
	b.WriteString(`</div>`)
	return b.String()
}
