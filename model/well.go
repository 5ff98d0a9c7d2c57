package model

import "github.com/lib/pq"

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Well is one oil/gas well as stored in the wells table. API numbers are
// canonicalized to NN-NNN-NNNNN before insert; everything scraped from
// drillingedge defaults to "N/A" / 0 so the API layer never emits NULLs.
type Well struct {
	APINumber  string   `json:"api_number" gorm:"column:api_number;primaryKey"`
	WellName   string   `json:"well_name" gorm:"index"`
	WellNumber string   `json:"well_number"`
	Operator   string   `json:"operator"`
	County     string   `json:"county" gorm:"index"`
	State      string   `json:"state"`
	SHLDesc    string   `json:"shl_desc" gorm:"column:shl_desc"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Datum      string   `json:"datum"`

	WellStatus  string `json:"well_status" gorm:"default:N/A"`
	WellType    string `json:"well_type" gorm:"default:N/A"`
	ClosestCity string `json:"closest_city" gorm:"default:N/A"`

	BarrelsOilProduced float64 `json:"barrels_oil_produced" gorm:"default:0"`
	GasProduced        float64 `json:"gas_produced" gorm:"default:0"`

	DrillingEdgeURL string `json:"drillingedge_url" gorm:"column:drillingedge_url;default:N/A"`
	PDFFilename     string `json:"pdf_filename" gorm:"column:pdf_filename"`

	// Distinct formations seen across this well's stimulation rows,
	// denormalized at import time for cheap filtering.
	Formations pq.StringArray `json:"formations,omitempty" gorm:"type:text[]"`
}

func (Well) TableName() string { return "wells" }

// Stimulation is one stimulation (fracturing) event parsed from a well file.
type Stimulation struct {
	StimulationID  uint    `json:"stimulation_id" gorm:"column:stimulation_id;primaryKey;autoIncrement"`
	APINumber      string  `json:"api_number" gorm:"column:api_number;index"`
	DateStimulated string  `json:"date_stimulated"`
	Formation      string  `json:"formation"`
	TopFt          float64 `json:"top_ft" gorm:"column:top_ft"`
	BottomFt       float64 `json:"bottom_ft" gorm:"column:bottom_ft"`
	Stages         int     `json:"stages"`
	Volume         float64 `json:"volume"`
	VolumeUnits    string  `json:"volume_units"`
	TreatmentType  string  `json:"treatment_type"`
	AcidPercent    float64 `json:"acid_percent"`
	LbsProppant    float64 `json:"lbs_proppant" gorm:"column:lbs_proppant"`
	MaxPressure    float64 `json:"max_pressure"`
	MaxRate        float64 `json:"max_rate"`
	Details        string  `json:"details"`
}

func (Stimulation) TableName() string { return "stimulation" }

// StimulationSummary is the per-well aggregate embedded in API responses.
type StimulationSummary struct {
	Count          int    `json:"count"`
	MostRecentDate string `json:"most_recent_date"`
}

// WellJSON is the wire shape of one well in /api/wells responses. Optional
// text fields carry "N/A" and production numbers default to 0, matching
// what the map popup expects.
type WellJSON struct {
	APINumber          string              `json:"api_number"`
	WellName           string              `json:"well_name"`
	Operator           string              `json:"operator"`
	County             string              `json:"county"`
	State              string              `json:"state"`
	Latitude           *float64            `json:"latitude"`
	Longitude          *float64            `json:"longitude"`
	WellStatus         string              `json:"well_status"`
	WellType           string              `json:"well_type"`
	ClosestCity        string              `json:"closest_city"`
	BarrelsOilProduced float64             `json:"barrels_oil_produced"`
	GasProduced        float64             `json:"gas_produced"`
	DrillingEdgeURL    string              `json:"drillingedge_url"`
	PDFFilename        string              `json:"pdf_filename"`
	StimulationSummary *StimulationSummary `json:"stimulation_summary,omitempty"`
}

// WellsResponse is the /api/wells envelope.
type WellsResponse struct {
	Count          int        `json:"count"`
	PlottableCount int        `json:"plottable_count"`
	Center         *Point     `json:"center,omitempty"`
	Wells          []WellJSON `json:"wells"`
}

// DefaultCenter is the fallback view center when no well has usable
// coordinates (middle of the North Dakota operating region).
var DefaultCenter = Point{Lat: 47.5, Lon: -100.5}

// orDefault maps empty strings to "N/A" for response building.
func orDefault(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// ToJSON converts a stored well into its wire shape.
func (w Well) ToJSON() WellJSON {
	return WellJSON{
		APINumber:          w.APINumber,
		WellName:           orDefault(w.WellName),
		Operator:           orDefault(w.Operator),
		County:             orDefault(w.County),
		State:              orDefault(w.State),
		Latitude:           w.Latitude,
		Longitude:          w.Longitude,
		WellStatus:         orDefault(w.WellStatus),
		WellType:           orDefault(w.WellType),
		ClosestCity:        orDefault(w.ClosestCity),
		BarrelsOilProduced: w.BarrelsOilProduced,
		GasProduced:        w.GasProduced,
		DrillingEdgeURL:    orDefault(w.DrillingEdgeURL),
		PDFFilename:        orDefault(w.PDFFilename),
	}
}
