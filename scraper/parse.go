package scraper

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"wellmap/model"
)

// fieldLabels maps each scraped column to the label spellings seen across
// drillingedge page layouts.
var fieldLabels = map[string][]string{
	"well_status":  {`well\s*status`},
	"well_type":    {`well\s*type`, `well\s*purpose`},
	"closest_city": {`closest\s*city`, `nearest\s*city`},
	"barrels_oil_produced": {
		`barrels?\s+of\s+oil\s+produced`, `oil\s+produced`, `cumulative\s+oil`,
		`oil\s+production`, `total\s+oil\s+prod`, `oil\s+prod`,
	},
	"gas_produced": {
		`gas\s+produced`, `cumulative\s+gas`, `gas\s+production`,
		`total\s+gas\s+prod`, `gas\s+prod`,
	},
}

// nodeText flattens an element's text content, space-separated.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return model.NormalizeText(b.String())
}

// nextSiblingElement finds the next element sibling with the given tag.
func nextSiblingElement(n *html.Node, tag string) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			if s.Data == tag {
				return s
			}
			return nil
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// labelValuePairs harvests label/value pairs from a well page: th/td and
// dt/dd siblings first, then any "Label: value" text node as a fallback.
func labelValuePairs(doc *html.Node) map[string]string {
	pairs := make(map[string]string)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			var valueTag string
			switch n.Data {
			case "th":
				valueTag = "td"
			case "dt":
				valueTag = "dd"
			}
			if valueTag != "" {
				if v := nextSiblingElement(n, valueTag); v != nil {
					label := strings.ToLower(nodeText(n))
					value := nodeText(v)
					if label != "" && value != "" {
						pairs[label] = value
					}
				}
			}
		}
		if n.Type == html.TextNode && strings.Contains(n.Data, ":") {
			text := model.NormalizeText(n.Data)
			if left, right, ok := strings.Cut(text, ":"); ok {
				label := strings.ToLower(model.NormalizeText(left))
				value := model.NormalizeText(right)
				if label != "" && value != "" && len(label) < 80 {
					if _, exists := pairs[label]; !exists {
						pairs[label] = value
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return pairs
}

// extractField picks a value by label pattern, falling back to a flat-text
// "label: value" scan over the whole page.
func extractField(fullText string, pairs map[string]string, labels []string) string {
	for label, value := range pairs {
		for _, pattern := range labels {
			if regexp.MustCompile(`(?i)\b` + pattern + `\b`).MatchString(label) {
				return value
			}
		}
	}
	for _, pattern := range labels {
		re := regexp.MustCompile(`(?i)` + pattern + `\s*:?\s*([^\n|]+)`)
		if m := re.FindStringSubmatch(fullText); m != nil {
			if value := model.NormalizeText(m[1]); value != "" {
				return value
			}
		}
	}
	return ""
}

// ParseWellPage extracts the scraped columns from one well detail page.
func ParseWellPage(pageHTML, url string) (Record, error) {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return Record{}, err
	}
	pairs := labelValuePairs(doc)
	fullText := nodeText(doc)

	rec := Record{
		WellStatus:         model.SanitizeScraped(extractField(fullText, pairs, fieldLabels["well_status"])),
		WellType:           model.NormalizeText(extractField(fullText, pairs, fieldLabels["well_type"])),
		ClosestCity:        model.SanitizeScraped(extractField(fullText, pairs, fieldLabels["closest_city"])),
		BarrelsOilProduced: model.ProductionNumeric(extractField(fullText, pairs, fieldLabels["barrels_oil_produced"])),
		GasProduced:        model.ProductionNumeric(extractField(fullText, pairs, fieldLabels["gas_produced"])),
		DrillingEdgeURL:    url,
	}
	if rec.WellType == "" {
		rec.WellType = "N/A"
	}
	if rec.DrillingEdgeURL == "" {
		rec.DrillingEdgeURL = "N/A"
	}
	return rec, nil
}

var nonDigitRe = regexp.MustCompile(`\D`)

// ScoreResult ranks a search hit: an API-digit match dominates, then the
// whole query, then individual well name tokens.
func ScoreResult(href, title, apiNumber, wellName, query string) int {
	score := 0
	blob := strings.ToLower(href + " " + title)
	digits := model.APIDigits(apiNumber)
	if digits != "" && strings.Contains(nonDigitRe.ReplaceAllString(blob, ""), digits) {
		score += 100
	}
	if q := strings.ToLower(model.NormalizeText(query)); q != "" && strings.Contains(blob, q) {
		score += 15
	}
	for _, tok := range model.NameTokens(wellName) {
		if strings.Contains(blob, tok) {
			score += 2
		}
	}
	return score
}

// BestSearchResult picks the best-scoring well link out of a search results
// page, or "" when nothing plausible matched.
func BestSearchResult(pageHTML, baseURL, apiNumber, wellName, query string) string {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return ""
	}

	type candidate struct {
		score int
		url   string
	}
	var candidates []candidate

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attr(n, "href")
			if href != "" && (strings.Contains(href, "/well") || strings.Contains(href, "/wells")) {
				full := href
				if strings.HasPrefix(href, "/") {
					full = strings.TrimSuffix(baseURL, "/") + href
				}
				title := nodeText(n)
				candidates = append(candidates, candidate{
					score: ScoreResult(full, title, apiNumber, wellName, query),
					url:   full,
				})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if candidates[0].score <= 0 {
		return ""
	}
	return candidates[0].url
}
