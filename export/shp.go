// Package export writes the plottable wells out as a point shapefile for
// use in desktop GIS tools.
package export

import (
	"fmt"

	shp "github.com/jonas-p/go-shp"
	"gorm.io/gorm"

	"wellmap/model"
	"wellmap/render"
)

// Shapefile writes every well with a plottable coordinate to path and
// returns how many points it wrote.
func Shapefile(db *gorm.DB, path string) (int, error) {
	var wells []model.Well
	if err := db.Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("api_number").Find(&wells).Error; err != nil {
		return 0, fmt.Errorf("load wells: %w", err)
	}

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return 0, fmt.Errorf("create shapefile: %w", err)
	}
	defer w.Close()

	fields := []shp.Field{
		shp.StringField("API", 16),
		shp.StringField("NAME", 64),
		shp.StringField("OPERATOR", 64),
		shp.StringField("COUNTY", 32),
		shp.StringField("STATUS", 32),
		shp.FloatField("OIL_BBL", 16, 2),
		shp.FloatField("GAS_MCF", 16, 2),
	}
	w.SetFields(fields)

	row := 0
	for _, well := range wells {
		if !render.Plottable(well.Latitude, well.Longitude) {
			continue
		}
		w.Write(&shp.Point{X: *well.Longitude, Y: *well.Latitude})
		w.WriteAttribute(row, 0, well.APINumber)
		w.WriteAttribute(row, 1, well.WellName)
		w.WriteAttribute(row, 2, well.Operator)
		w.WriteAttribute(row, 3, well.County)
		w.WriteAttribute(row, 4, well.WellStatus)
		w.WriteAttribute(row, 5, well.BarrelsOilProduced)
		w.WriteAttribute(row, 6, well.GasProduced)
		row++
	}
	return row, nil
}
