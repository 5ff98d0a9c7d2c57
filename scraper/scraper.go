// Package scraper enriches stored wells from their drillingedge.com detail
// pages: status, type, closest city, cumulative production and the page URL.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"wellmap/model"
)

const (
	DefaultBaseURL = "https://www.drillingedge.com"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
)

// Record is one well's scraped columns.
type Record struct {
	APINumber          string  `json:"api_number"`
	WellStatus         string  `json:"well_status"`
	WellType           string  `json:"well_type"`
	ClosestCity        string  `json:"closest_city"`
	BarrelsOilProduced float64 `json:"barrels_oil_produced"`
	GasProduced        float64 `json:"gas_produced"`
	DrillingEdgeURL    string  `json:"drillingedge_url"`
}

// Scraper fetches and parses well pages with a polite fixed delay between
// requests.
type Scraper struct {
	Client    *http.Client
	BaseURL   string
	Delay     time.Duration
	Publisher *Publisher // optional; scraped records are mirrored to Kafka when set
}

// New builds a scraper against the production site.
func New() *Scraper {
	return &Scraper{
		Client:  &http.Client{Timeout: 25 * time.Second},
		BaseURL: DefaultBaseURL,
		Delay:   2 * time.Second,
	}
}

// DirectWellURLs builds the candidate detail-page URLs for a well, most
// specific first. Empty when we lack an API number or a name slug.
func (s *Scraper) DirectWellURLs(apiNumber, wellName, county, state string) []string {
	api := model.CanonicalAPI(apiNumber)
	nameSlug := model.Slugify(wellName)
	if api == "" || nameSlug == "" {
		return nil
	}
	st := model.StateSlug(state)
	if st == "" {
		st = "north-dakota"
	}

	var urls []string
	if co := model.CountySlug(county); co != "" {
		urls = append(urls, fmt.Sprintf("%s/%s/%s/wells/%s/%s", s.BaseURL, st, co, nameSlug, api))
	}
	urls = append(urls,
		fmt.Sprintf("%s/%s/wells/%s/%s", s.BaseURL, st, nameSlug, api),
		fmt.Sprintf("%s/wells/%s/%s", s.BaseURL, nameSlug, api),
	)
	return urls
}

// BuildQueries lists the search queries to try for a well, deduplicated and
// in decreasing specificity.
func BuildQueries(apiNumber, wellName string) []string {
	var queries []string
	digits := model.APIDigits(apiNumber)
	if len(digits) >= 8 {
		queries = append(queries, apiNumber)
		if len(digits) >= 10 {
			queries = append(queries, digits[:10])
		}
		queries = append(queries, digits)
	}
	if name := model.NormalizeText(wellName); name != "" {
		queries = append(queries, name)
	}

	var out []string
	seen := make(map[string]bool)
	for _, q := range queries {
		key := strings.ToLower(q)
		if q != "" && !seen[key] {
			out = append(out, q)
			seen[key] = true
		}
	}
	return out
}

// get fetches one URL with the scraper's User-Agent.
func (s *Scraper) get(ctx context.Context, rawURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(body), resp.StatusCode, nil
}

// fetchDirect tries the constructed detail-page URLs and keeps the first one
// that actually looks like a well page.
func (s *Scraper) fetchDirect(ctx context.Context, apiNumber, wellName, county, state string) *Record {
	api := model.CanonicalAPI(apiNumber)
	for _, u := range s.DirectWellURLs(api, wellName, county, state) {
		body, status, err := s.get(ctx, u)
		if err != nil || status != http.StatusOK {
			continue
		}
		lower := strings.ToLower(body)
		if !strings.Contains(lower, "well summary") && !strings.Contains(lower, "well details") &&
			!(api != "" && strings.Contains(lower, strings.ToLower(api))) {
			continue
		}
		rec, err := ParseWellPage(body, u)
		if err != nil {
			continue
		}
		return &rec
	}
	return nil
}

// FetchWell resolves one well's detail page, first via constructed URLs and
// then via site search, and parses it.
func (s *Scraper) FetchWell(ctx context.Context, apiNumber, wellName, county, state string) (*Record, error) {
	if rec := s.fetchDirect(ctx, apiNumber, wellName, county, state); rec != nil {
		return rec, nil
	}

	for _, q := range BuildQueries(apiNumber, wellName) {
		for _, paramKey := range []string{"q", "query"} {
			searchURL := fmt.Sprintf("%s/search?%s=%s", s.BaseURL, paramKey, url.QueryEscape(q))
			body, status, err := s.get(ctx, searchURL)
			if err != nil || status != http.StatusOK {
				continue
			}
			wellURL := BestSearchResult(body, s.BaseURL, apiNumber, wellName, q)
			if wellURL == "" {
				continue
			}
			pageBody, status, err := s.get(ctx, wellURL)
			if err != nil || status != http.StatusOK {
				continue
			}
			rec, err := ParseWellPage(pageBody, wellURL)
			if err != nil {
				continue
			}
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("no drillingedge page found for %s", apiNumber)
}

// Run scrapes the stored wells that still lack drillingedge data (all of
// them when onlyMissing is false), up to limit (0 = no limit). Stops early
// on context cancellation.
func (s *Scraper) Run(ctx context.Context, db *gorm.DB, limit int, onlyMissing bool) error {
	q := db.Order("api_number")
	if onlyMissing {
		q = q.Where("drillingedge_url IS NULL OR drillingedge_url IN ('', 'N/A')")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var wells []model.Well
	if err := q.Find(&wells).Error; err != nil {
		return fmt.Errorf("load wells: %w", err)
	}
	log.Printf("scraping %d wells", len(wells))

	scraped := 0
	for _, w := range wells {
		if err := ctx.Err(); err != nil {
			log.Printf("scrape interrupted after %d wells", scraped)
			return err
		}

		rec, err := s.FetchWell(ctx, w.APINumber, w.WellName, w.County, w.State)
		if err != nil {
			log.Printf("%s: %v", w.APINumber, err)
		} else {
			rec.APINumber = w.APINumber
			if err := s.store(db, *rec); err != nil {
				log.Printf("%s: store failed: %v", w.APINumber, err)
			} else {
				scraped++
			}
			if s.Publisher != nil {
				if err := s.Publisher.Publish(ctx, *rec); err != nil {
					log.Printf("%s: publish failed: %v", w.APINumber, err)
				}
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.Delay):
		}
	}

	log.Printf("scrape finished: %d/%d wells updated", scraped, len(wells))
	return nil
}

// store writes the scraped columns back to the well row.
func (s *Scraper) store(db *gorm.DB, rec Record) error {
	return db.Model(&model.Well{}).
		Where("api_number = ?", rec.APINumber).
		Updates(map[string]interface{}{
			"well_status":          rec.WellStatus,
			"well_type":            rec.WellType,
			"closest_city":         rec.ClosestCity,
			"barrels_oil_produced": rec.BarrelsOilProduced,
			"gas_produced":         rec.GasProduced,
			"drillingedge_url":     rec.DrillingEdgeURL,
		}).Error
}
