package handler

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"wellmap/db"
	"wellmap/model"
	"wellmap/render"
	"wellmap/utils"
)

// stimAgg is one row of the per-well stimulation aggregate.
type stimAgg struct {
	APINumber  string `gorm:"column:api_number"`
	Count      int    `gorm:"column:count"`
	MostRecent string `gorm:"column:most_recent"`
}

// loadStimSummaries aggregates stimulation rows by well.
func loadStimSummaries() (map[string]model.StimulationSummary, error) {
	var aggs []stimAgg
	err := db.DB.Model(&model.Stimulation{}).
		Select("api_number, count(*) as count, max(date_stimulated) as most_recent").
		Group("api_number").
		Scan(&aggs).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.StimulationSummary, len(aggs))
	for _, a := range aggs {
		out[a.APINumber] = model.StimulationSummary{Count: a.Count, MostRecentDate: a.MostRecent}
	}
	return out, nil
}

// BuildWellsResponse assembles the /api/wells envelope: every well in wire
// shape, the count of wells with coordinates, and the mean coordinate as the
// map center (falling back to the middle of the operating region).
func BuildWellsResponse(wells []model.Well, stim map[string]model.StimulationSummary) model.WellsResponse {
	resp := model.WellsResponse{
		Count: len(wells),
		Wells: make([]model.WellJSON, 0, len(wells)),
	}

	var latSum, lonSum float64
	for _, w := range wells {
		wj := w.ToJSON()
		if s, ok := stim[w.APINumber]; ok {
			sum := s
			if sum.MostRecentDate == "" {
				sum.MostRecentDate = "N/A"
			}
			wj.StimulationSummary = &sum
		} else {
			wj.StimulationSummary = &model.StimulationSummary{Count: 0, MostRecentDate: "N/A"}
		}
		if w.Latitude != nil && w.Longitude != nil {
			latSum += *w.Latitude
			lonSum += *w.Longitude
			resp.PlottableCount++
		}
		resp.Wells = append(resp.Wells, wj)
	}

	center := model.DefaultCenter
	if resp.PlottableCount > 0 {
		center = model.Point{
			Lat: latSum / float64(resp.PlottableCount),
			Lon: lonSum / float64(resp.PlottableCount),
		}
	}
	resp.Center = &center
	return resp
}

// loadWellsResponse reads all wells plus aggregates and builds the envelope.
func loadWellsResponse() (*model.WellsResponse, error) {
	var wells []model.Well
	if err := db.DB.Order("well_name").Find(&wells).Error; err != nil {
		return nil, err
	}
	stim, err := loadStimSummaries()
	if err != nil {
		return nil, err
	}
	resp := BuildWellsResponse(wells, stim)
	return &resp, nil
}

// GetWells serves GET /api/wells.
func GetWells(c *gin.Context) {
	resp, err := loadWellsResponse()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wells"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetWellByAPI serves GET /api/wells/:api.
func GetWellByAPI(c *gin.Context) {
	api := model.CanonicalAPI(c.Param("api"))

	var well model.Well
	if err := db.DB.First(&well, "api_number = ?", api).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "well not found: " + api})
		return
	}
	var stims []model.Stimulation
	db.DB.Where("api_number = ?", api).Order("date_stimulated").Find(&stims)

	c.JSON(http.StatusOK, gin.H{
		"well":        well.ToJSON(),
		"stimulation": stims,
	})
}

// SearchWells serves GET /api/wells/search?q= with a case-insensitive
// substring match over name, operator and API number.
func SearchWells(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing search query"})
		return
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var wells []model.Well
	err := db.DB.
		Where("lower(well_name) LIKE ? OR lower(operator) LIKE ? OR api_number LIKE ?",
			pattern, pattern, "%"+query+"%").
		Order("well_name").
		Find(&wells).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	results := make([]model.WellJSON, 0, len(wells))
	for _, w := range wells {
		results = append(results, w.ToJSON())
	}
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// NearWells serves GET /api/wells/near?lat=&lon=&limit=, ranking wells with
// coordinates by great-circle distance.
func NearWells(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required"})
		return
	}
	limit := 10
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	var wells []model.Well
	if err := db.DB.Where("latitude IS NOT NULL AND longitude IS NOT NULL").Find(&wells).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wells"})
		return
	}

	origin := model.Point{Lat: lat, Lon: lon}
	type ranked struct {
		Well     model.WellJSON `json:"well"`
		Distance float64        `json:"distance_m"`
	}
	out := make([]ranked, 0, len(wells))
	for _, w := range wells {
		d := utils.HaversineDistance(origin, model.Point{Lat: *w.Latitude, Lon: *w.Longitude})
		out = append(out, ranked{Well: w.ToJSON(), Distance: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	if len(out) > limit {
		out = out[:limit]
	}

	c.JSON(http.StatusOK, gin.H{"count": len(out), "results": out})
}

// MapPage serves GET /: the rendered Leaflet page built straight from the
// database-backed response.
func MapPage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")

	resp, err := loadWellsResponse()
	var res *render.Result
	if err != nil {
		res = render.FailureResult("Error loading wells: " + err.Error())
	} else {
		res = render.Build(resp)
	}
	if err := render.WritePage(c.Writer, res); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
