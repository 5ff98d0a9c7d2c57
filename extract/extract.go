// Package extract ingests the per-PDF JSON produced by the well file
// extraction step: each document carries per-page text and label/value
// fields, from which well identity, surface location and stimulation
// history are recovered.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"wellmap/model"
)

// Page is one PDF page: raw text plus whatever labeled fields the upstream
// extraction recognized.
type Page struct {
	Text   string            `json:"text"`
	Fields map[string]string `json:"fields"`
}

// Document is one extracted well file.
type Document struct {
	WellName    string `json:"well_name"`
	PDFFilename string `json:"pdf_filename"`
	Pages       []Page `json:"pages"`
}

var (
	apiPats = []*regexp.Regexp{
		regexp.MustCompile(`(?i)API\s*[#Nn][Oo.]*\s*[:\s]+([0-9][\d\s\-]{8,19})`),
		regexp.MustCompile(`(?i)API\s*:\s*([0-9][\d\s\-]{8,19})`),
		regexp.MustCompile(`(?i)\bAPI\b\s*([0-9][\d\-]{8,18})`),
	}
	wellNumPats = []*regexp.Regexp{
		regexp.MustCompile(`(?i)NDIC\s+File\s+Number\s*:\s*(\d+)`),
		regexp.MustCompile(`(?i)ND\s+Well\s+File\s*#\s*[:\s]+(\d+)`),
		regexp.MustCompile(`(?i)Well\s+File\s+No\.?\s*[:\s]+(\d+)`),
		regexp.MustCompile(`(?i)Well\s+or\s+Facility\s+No\.?\s*[:\s]+(\d+)`),
	}
	operatorPats = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Well\s+Operator\s*:\s*([^\n]+)`),
		regexp.MustCompile(`(?im)^Operator\s*:\s*([^\n]+)`),
	}
	countyPats = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^County\s*:\s*([A-Za-z ]+?)$`),
		regexp.MustCompile(`(?i)County,\s*State\s*:\s*([A-Za-z ]+?)\s+County`),
	}
	shlPats = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Well\s+Surface\s+Hole\s+Location\s*\(SHL\)\s*:\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Surface\s+(?:Hole\s+)?Location\s*:\s*([^\n]+)`),
		regexp.MustCompile(`(?i)\bSHL\s*:\s*([^\n]+)`),
	}
	latPats = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Lat(?:itude)?\s*[:\s]+(\d{1,2}°\s*\d{1,2}'\s*[\d.]+\s*[Nn])`),
		regexp.MustCompile(`(?i)Lat(?:itude)?\s*[:\s]+(\d{1,3}\.\d+)`),
	}
	lonPats = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Lon(?:gitude)?\s*[:\s]+(\d{1,3}°\s*\d{1,2}'\s*[\d.]+\s*[Ww])`),
		regexp.MustCompile(`(?i)Lon(?:gitude)?\s*[:\s]+(\d{1,3}\.\d+)`),
	}
	datumPats = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Datum\s*:\s*([^\n:]{2,30})`),
		regexp.MustCompile(`(?i)(NAD\s*\d+|WGS\s*\d+)`),
	}

	dmsRe = regexp.MustCompile(`^(\d{1,3})\s*°\s*(\d{1,2})'\s*([\d.]+)\s*([NSEWnsew])`)

	opStopRe      = regexp.MustCompile(`(?i)\s+(?:Kick-off|Rig|API|Telephone|Well\s+Name|Job\s+Type|Enseco)\s*[#:]`)
	opJunkStartRe = regexp.MustCompile(`(?i)^(?:Kick-off|Rig\b|Job\s+Type|Enseco|Well\s+Name|Telephone)\s*[#:\d]`)
	opGapRe       = regexp.MustCompile(`\s{3,}`)
	opStrayRe     = regexp.MustCompile(`^[a-z]\s+`)
	opReservedRe  = regexp.MustCompile(`(?i)^(?:Well|Lease|Field|County|State|None)$`)

	countyCutRe  = regexp.MustCompile(`\s*(?:State|Section|Township|Directional|:)`)
	countyFormRe = regexp.MustCompile(`^[A-Za-z ]{2,30}$`)

	nameAPICutRe  = regexp.MustCompile(`(?i)\s+API\s*:.*$`)
	nameFileCutRe = regexp.MustCompile(`(?i)\s+Well\s+File\s+No\.?:?.*$`)
	nameTailCutRe = regexp.MustCompile(`(?i)\s+(?:Directional\s+Drillers|Field|Pad\s+OD|Company\s+Man)(?:\s*:|)\s*\S.*$`)
	nameJunkRe    = regexp.MustCompile(`(?i)(?:^|^.{0,5})(Location|Field\s*/\s*Prospect|Directional\s+Drillers|Mud\s+Record)\s*:?$`)

	datumNAD83Re = regexp.MustCompile(`(?i)North\s+American\s+Datum\s+1983`)
	datumNAD27Re = regexp.MustCompile(`(?i)North\s+American\s+Datum\s+1927`)
	datumNoiseRe = regexp.MustCompile(`(?i)\d.*(?:ft|usft|RKB|WELL|@)`)
	datumCodeRe  = regexp.MustCompile(`(?i)^((?:NAD|WGS|NAO)\s*\d{2,4})`)
	datumWordRe  = regexp.MustCompile(`(?i)NAD|WGS|North\s+American|GRS|NAVD`)
	datumBadChRe = regexp.MustCompile(`[()@\\]`)
	naoRe        = regexp.MustCompile(`(?i)NAO`)

	nonDigitRe = regexp.MustCompile(`\D`)
	letterRe   = regexp.MustCompile(`[A-Za-z]`)
)

// searchFirst returns the first submatch of the first pattern that hits any
// of the texts, whitespace-collapsed.
func searchFirst(pats []*regexp.Regexp, texts []string) string {
	for _, text := range texts {
		for _, pat := range pats {
			if m := pat.FindStringSubmatch(text); m != nil {
				if val := model.NormalizeText(m[1]); val != "" {
					return val
				}
			}
		}
	}
	return ""
}

// DMSToDecimal converts a degrees-minutes-seconds string such as
// `47° 31' 12.6 N` to decimal degrees, negative for S and W.
func DMSToDecimal(dms string) (float64, bool) {
	m := dmsRe.FindStringSubmatch(strings.TrimSpace(dms))
	if m == nil {
		return 0, false
	}
	deg, _ := strconv.ParseFloat(m[1], 64)
	mins, _ := strconv.ParseFloat(m[2], 64)
	secs, _ := strconv.ParseFloat(m[3], 64)
	dd := deg + mins/60 + secs/3600
	switch strings.ToUpper(m[4]) {
	case "S", "W":
		dd = -dd
	}
	// Round to 7 decimals, the precision the well files carry.
	return float64(int64(dd*1e7+sign(dd)*0.5)) / 1e7, true
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// NormalizeAPI formats extracted API numbers: 14 digits become the full
// NN-NNN-NNNNN-NN-NN form, 10 digits the usual NN-NNN-NNNNN. Anything with
// letters or fewer than 8 digits is rejected.
func NormalizeAPI(raw string) string {
	candidate := strings.TrimSpace(nonSpace(raw))
	if letterRe.MatchString(candidate) {
		return ""
	}
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if len(digits) < 8 {
		return ""
	}
	switch len(digits) {
	case 14:
		return digits[:2] + "-" + digits[2:5] + "-" + digits[5:10] + "-" + digits[10:12] + "-" + digits[12:]
	case 10:
		return digits[:2] + "-" + digits[2:5] + "-" + digits[5:10]
	}
	return candidate
}

func nonSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// mergedFields folds every page's fields into one map (later pages win) and
// collects the non-blank page texts.
func mergedFields(pages []Page) (map[string]string, []string) {
	fields := make(map[string]string)
	var texts []string
	for _, p := range pages {
		if strings.TrimSpace(p.Text) != "" {
			texts = append(texts, p.Text)
		}
		for k, v := range p.Fields {
			fields[k] = v
		}
	}
	return fields, texts
}

// extractOperator walks pages for a plausible operator name, filtering the
// header junk that leaks into the Operator field on scanned well files.
func extractOperator(pages []Page, texts []string) string {
	clean := func(val string) string {
		cleaned := opStopRe.Split(val, 2)[0]
		cleaned = opGapRe.Split(cleaned, 2)[0]
		cleaned = model.NormalizeText(cleaned)
		cleaned = opStrayRe.ReplaceAllString(cleaned, "")
		return cleaned
	}
	for _, page := range pages {
		for _, key := range []string{"Well Operator", "Operator"} {
			val := page.Fields[key]
			if val == "" || opJunkStartRe.MatchString(strings.TrimSpace(val)) {
				continue
			}
			cleaned := clean(val)
			if cleaned != "" && !strings.HasSuffix(cleaned, ":") && len(cleaned) >= 5 &&
				!opReservedRe.MatchString(cleaned) {
				return cleaned
			}
		}
	}
	if val := searchFirst(operatorPats, texts); val != "" &&
		!strings.HasSuffix(val, ":") && !opJunkStartRe.MatchString(val) {
		val = opStrayRe.ReplaceAllString(val, "")
		if len(val) >= 5 && !opReservedRe.MatchString(val) {
			return val
		}
	}
	return ""
}

func cleanCounty(raw string) string {
	if raw == "" {
		return ""
	}
	county := countyCutRe.Split(raw, 2)[0]
	county = titleCase(model.NormalizeText(county))
	if !countyFormRe.MatchString(county) {
		return ""
	}
	return county
}

func cleanDatum(raw string) string {
	d := model.NormalizeText(raw)
	if d == "" {
		return ""
	}
	if datumNAD83Re.MatchString(d) {
		return "NAD83"
	}
	if datumNAD27Re.MatchString(d) {
		return "NAD27"
	}
	if datumNoiseRe.MatchString(d) {
		return ""
	}
	if m := datumCodeRe.FindStringSubmatch(d); m != nil {
		return naoRe.ReplaceAllString(strings.TrimSpace(m[1]), "NAD")
	}
	if datumWordRe.MatchString(d) && len(d) <= 25 && !datumBadChRe.MatchString(d) {
		return d
	}
	return ""
}

func cleanWellName(raw string) string {
	name := model.NormalizeText(raw)
	name = nameAPICutRe.ReplaceAllString(name, "")
	name = nameFileCutRe.ReplaceAllString(name, "")
	name = nameTailCutRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if strings.HasSuffix(name, ":") || nameJunkRe.MatchString(name) {
		return ""
	}
	return name
}

// toCoord parses either a DMS string or a plain decimal.
func toCoord(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, "°") {
		return DMSToDecimal(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractWell recovers a Well row from one extracted document. Latitude is
// only accepted inside the operating band; a positive longitude in the
// 96..105 range is a dropped sign and gets flipped west.
func ExtractWell(doc Document) model.Well {
	fields, texts := mergedFields(doc.Pages)

	rawAPI := firstNonEmpty(fields["API #"], fields["API Number"], fields["API"])
	if rawAPI == "" {
		rawAPI = searchFirst(apiPats, texts)
	}
	api := NormalizeAPI(rawAPI)

	wellNumber := firstValidWellNum(
		fields["NDIC File Number"], fields["ND Well File #"], fields["Well or Facility No"],
		searchFirst(wellNumPats, texts),
	)
	if wellNumber == "" {
		wellNumber = nonDigitRe.ReplaceAllString(stem(doc.PDFFilename), "")
	}

	apiKey := api
	if apiKey == "" {
		if wellNumber != "" {
			apiKey = "NDIC-" + wellNumber
		} else {
			apiKey = "UNKNOWN"
		}
	}

	county := cleanCounty(firstNonEmpty(fields["County"], searchFirst(countyPats, texts)))
	shl := firstNonEmpty(
		fields["Well Surface Hole Location (SHL)"], fields["Surface Location"], fields["SHL"],
		searchFirst(shlPats, texts),
	)

	latTexts := append([]string{fields["Latitude"]}, texts...)
	var latitude, longitude *float64
	if v, ok := toCoord(searchFirst(latPats, latTexts)); ok && v >= 45.0 && v <= 50.0 {
		latitude = &v
	}
	if v, ok := toCoord(searchFirst(lonPats, latTexts)); ok {
		switch {
		case v >= 96.0 && v <= 105.0:
			v = -v
			longitude = &v
		case v >= -105.0 && v <= -96.0:
			longitude = &v
		}
	}

	return model.Well{
		APINumber:   apiKey,
		WellName:    cleanWellName(doc.WellName),
		WellNumber:  wellNumber,
		Operator:    extractOperator(doc.Pages, texts),
		County:      county,
		State:       "ND",
		SHLDesc:     model.NormalizeText(shl),
		Latitude:    latitude,
		Longitude:   longitude,
		Datum:       cleanDatum(firstNonEmpty(fields["Datum"], searchFirst(datumPats, latTexts))),
		PDFFilename: doc.PDFFilename,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// firstValidWellNum accepts NDIC file numbers in the plausible range.
func firstValidWellNum(vals ...string) string {
	for _, v := range vals {
		digits := nonDigitRe.ReplaceAllString(v, "")
		if digits == "" {
			continue
		}
		if n, err := strconv.Atoi(digits); err == nil && n >= 1000 && n <= 199999 {
			return digits
		}
	}
	return ""
}

// titleCase capitalizes each space-separated word ("mckenzie" -> "Mckenzie",
// matching how the county names appear upstream).
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func stem(filename string) string {
	base := filename
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}
