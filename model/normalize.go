package model

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	wsRe       = regexp.MustCompile(`\s+`)
	numRe      = regexp.MustCompile(`(?i)(-?\d+(?:,\d{3})*(?:\.\d+)?)\s*(?:([kmb])\b)?`)
	townshipRe = regexp.MustCompile(`(?i)\b\d+\s*N\s+\d+\s*W\b`)
	prodUnitRe = regexp.MustCompile(`(?i)\b(bbl|barrel|mcf|mmcf|bcf|mmbtu|gas|oil)\b`)
	nonDigitRe = regexp.MustCompile(`\D`)
	slugRe     = regexp.MustCompile(`[^a-z0-9]+`)
	tokenRe    = regexp.MustCompile(`[a-z0-9]+`)
	countyRe   = regexp.MustCompile(`\bcounty\b`)
)

// NormalizeText collapses runs of whitespace and trims.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

// NormalizeNumeric parses a human-formatted number such as "1,234.5" or
// "3.2M", expanding K/M/B suffixes. The suffix only counts as a standalone
// token, so the leading letter of a unit word ("bbl", "barrels", "bcf")
// never multiplies the value. Placeholder strings parse as 0.
func NormalizeNumeric(raw string) float64 {
	s := NormalizeText(raw)
	if s == "" {
		return 0
	}
	switch strings.ToLower(s) {
	case "n/a", "na", "none", "-", "--":
		return 0
	}
	m := numRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	num := parseFloat(strings.ReplaceAll(m[1], ",", ""))
	switch strings.ToUpper(m[2]) {
	case "K":
		num *= 1e3
	case "M":
		num *= 1e6
	case "B":
		num *= 1e9
	}
	return num
}

// ProductionNumeric parses a scraped production cell. drillingedge pages
// sometimes put location strings, years or "members only" banners where a
// production figure should be; those all come back as 0.
func ProductionNumeric(raw string) float64 {
	s := NormalizeText(raw)
	if s == "" {
		return 0
	}
	if strings.Contains(strings.ToLower(s), "members only") {
		return 0
	}
	if townshipRe.MatchString(s) {
		return 0
	}
	val := NormalizeNumeric(s)
	if val == 0 {
		return 0
	}
	// A bare 4-digit value with no production unit is almost always a year.
	if !prodUnitRe.MatchString(s) && val >= 1900 && val <= 2100 {
		return 0
	}
	return val
}

// SanitizeScraped filters township-range location strings ("152N 96W") that
// show up in status and city cells on some well pages.
func SanitizeScraped(raw string) string {
	s := NormalizeText(raw)
	if s == "" || townshipRe.MatchString(s) {
		return "N/A"
	}
	return s
}

// APIDigits strips everything but digits from an API number.
func APIDigits(apiNumber string) string {
	return nonDigitRe.ReplaceAllString(apiNumber, "")
}

// CanonicalAPI formats an API number as NN-NNN-NNNNN. 11-digit inputs drop
// the extra middle digit, longer inputs are truncated to the first ten.
// Inputs with fewer than ten digits pass through with whitespace normalized.
func CanonicalAPI(apiNumber string) string {
	d := APIDigits(apiNumber)
	if len(d) < 10 {
		return NormalizeText(apiNumber)
	}
	switch {
	case len(d) == 11:
		d = d[:5] + d[len(d)-5:]
	case len(d) > 11:
		d = d[:10]
	}
	return d[:2] + "-" + d[2:5] + "-" + d[5:10]
}

// NameTokens splits a well name into lowercase search tokens, dropping
// anything three characters or shorter.
func NameTokens(wellName string) []string {
	var out []string
	for _, t := range tokenRe.FindAllString(strings.ToLower(wellName), -1) {
		if len(t) > 2 {
			out = append(out, t)
		}
	}
	return out
}

// Slugify builds a drillingedge URL slug.
func Slugify(value string) string {
	s := strings.ToLower(NormalizeText(value))
	s = strings.ReplaceAll(s, "&", " and ")
	return strings.Trim(slugRe.ReplaceAllString(s, "-"), "-")
}

// StateSlug maps state names/abbreviations to their URL slug.
func StateSlug(state string) string {
	s := strings.ToLower(NormalizeText(state))
	if s == "nd" || s == "north dakota" {
		return "north-dakota"
	}
	return Slugify(s)
}

// CountySlug drops a trailing "County" before slugifying.
func CountySlug(county string) string {
	c := strings.ToLower(NormalizeText(county))
	c = strings.TrimSpace(countyRe.ReplaceAllString(c, ""))
	return Slugify(c)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
