package extract

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"wellmap/model"
)

// ImportStats summarizes one import run.
type ImportStats struct {
	Files        int
	Wells        int
	Stimulations int
}

// ImportDir ingests every *.json document under dir. Re-running is safe:
// well rows merge field-by-field and a well's stimulation history is
// replaced wholesale.
func ImportDir(db *gorm.DB, dir string) (*ImportStats, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no extraction documents in %s", dir)
	}
	sort.Strings(paths)

	stats := &ImportStats{}
	for _, path := range paths {
		if err := importFile(db, path, stats); err != nil {
			log.Printf("skipping %s: %v", filepath.Base(path), err)
			continue
		}
		stats.Files++
	}
	return stats, nil
}

func importFile(db *gorm.DB, path string, stats *ImportStats) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	well := ExtractWell(doc)

	var stims []model.Stimulation
	for _, page := range doc.Pages {
		for _, rec := range ParseStimulation(page.Text) {
			rec.APINumber = well.APINumber
			stims = append(stims, rec)
		}
	}
	well.Formations = formations(stims)

	return db.Transaction(func(tx *gorm.DB) error {
		if err := upsertWell(tx, well); err != nil {
			return err
		}
		stats.Wells++

		// Replace this well's stimulation history so re-imports do not
		// accumulate duplicate rows.
		if err := tx.Where("api_number = ?", well.APINumber).
			Delete(&model.Stimulation{}).Error; err != nil {
			return fmt.Errorf("clear stimulation rows: %w", err)
		}
		if len(stims) > 0 {
			if err := tx.CreateInBatches(stims, 100).Error; err != nil {
				return fmt.Errorf("insert stimulation rows: %w", err)
			}
			stats.Stimulations += len(stims)
		}
		return nil
	})
}

// upsertWell merges a newly extracted well into an existing row: the longer
// well name wins, every other field only fills gaps.
func upsertWell(tx *gorm.DB, well model.Well) error {
	var existing model.Well
	err := tx.First(&existing, "api_number = ?", well.APINumber).Error
	if err == gorm.ErrRecordNotFound {
		if err := tx.Create(&well).Error; err != nil {
			return fmt.Errorf("insert well: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load well: %w", err)
	}

	if len(well.WellName) > len(existing.WellName) {
		existing.WellName = well.WellName
	}
	existing.WellNumber = coalesce(existing.WellNumber, well.WellNumber)
	existing.Operator = coalesce(existing.Operator, well.Operator)
	existing.County = coalesce(existing.County, well.County)
	existing.SHLDesc = coalesce(existing.SHLDesc, well.SHLDesc)
	existing.Datum = coalesce(existing.Datum, well.Datum)
	if existing.Latitude == nil {
		existing.Latitude = well.Latitude
	}
	if existing.Longitude == nil {
		existing.Longitude = well.Longitude
	}
	if len(well.Formations) > 0 {
		existing.Formations = well.Formations
	}
	if err := tx.Save(&existing).Error; err != nil {
		return fmt.Errorf("update well: %w", err)
	}
	return nil
}

func coalesce(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

// formations collects the distinct formation names across a well's
// stimulation rows, in first-seen order.
func formations(stims []model.Stimulation) pq.StringArray {
	var out pq.StringArray
	seen := make(map[string]bool)
	for _, s := range stims {
		f := strings.TrimSpace(s.Formation)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
