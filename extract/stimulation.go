package extract

import (
	"regexp"
	"strconv"
	"strings"

	"wellmap/model"
)

var (
	stimHdrRe  = regexp.MustCompile(`(?i)Date\s+Stimulat`)
	treatHdrRe = regexp.MustCompile(`(?i)Type\s+Treatment`)
	detailsRe  = regexp.MustCompile(`(?im)^Details\s*$`)
	stimRowRe  = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})\s+([A-Za-z][A-Za-z ]{1,30}?)\s+(\d+)\s+(\d+)\s+(\d+)\s+([\d,]+)\s+([A-Za-z]+)`)
	treatRowRe = regexp.MustCompile(`^([A-Za-z][A-Za-z ]{1,30}?)\s+([\d,]+)\s+([\d,]+)(?:\s+([\d.]+))?(?:\s+([\d.]+))?`)
)

func toFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseStimulation walks one page's text for stimulation tables. Each table
// starts at a "Date Stimulated" header row; the treatment row and free-text
// details section that follow belong to the record above them.
func ParseStimulation(pageText string) []model.Stimulation {
	var records []model.Stimulation
	lines := strings.Split(pageText, "\n")
	n := len(lines)
	i := 0
	for i < n {
		if !stimHdrRe.MatchString(lines[i]) {
			i++
			continue
		}
		i++
		for i < n && (strings.TrimSpace(lines[i]) == "" || stimHdrRe.MatchString(lines[i])) {
			i++
		}
		if i >= n {
			break
		}
		sm := stimRowRe.FindStringSubmatch(lines[i])
		if sm == nil {
			i++
			continue
		}
		stages, _ := strconv.Atoi(sm[5])
		rec := model.Stimulation{
			DateStimulated: sm[1],
			Formation:      strings.TrimSpace(sm[2]),
			TopFt:          toFloat(sm[3]),
			BottomFt:       toFloat(sm[4]),
			Stages:         stages,
			Volume:         toFloat(sm[6]),
			VolumeUnits:    sm[7],
		}
		i++

		var detailParts []string
		inDetails := false
		for i < n {
			ln := lines[i]
			if stimHdrRe.MatchString(ln) {
				break
			}
			if treatHdrRe.MatchString(ln) {
				i++
				for i < n && strings.TrimSpace(lines[i]) == "" {
					i++
				}
				if i < n {
					if tm := treatRowRe.FindStringSubmatch(strings.TrimSpace(lines[i])); tm != nil {
						rec.TreatmentType = strings.TrimSpace(tm[1])
						var nums []float64
						for _, g := range tm[2:6] {
							if g != "" {
								nums = append(nums, toFloat(g))
							}
						}
						// Column meaning depends on how many numbers the row
						// carries: acid % is only present in the 4-wide form.
						switch len(nums) {
						case 4:
							rec.AcidPercent = nums[0]
							rec.LbsProppant = nums[1]
							rec.MaxPressure = nums[2]
							rec.MaxRate = nums[3]
						case 3:
							rec.LbsProppant = nums[0]
							rec.MaxPressure = nums[1]
							rec.MaxRate = nums[2]
						default:
							if len(nums) >= 1 {
								rec.LbsProppant = nums[0]
							}
						}
					}
					i++
				}
				continue
			}
			if detailsRe.MatchString(ln) {
				inDetails = true
				i++
				continue
			}
			if inDetails && strings.TrimSpace(ln) != "" {
				detailParts = append(detailParts, strings.TrimSpace(ln))
			}
			i++
		}
		if len(detailParts) > 0 {
			rec.Details = strings.Join(detailParts, "\n")
		}
		records = append(records, rec)
	}
	return records
}
