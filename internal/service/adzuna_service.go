package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const adzunaPageSize = 50

// AdzunaService fetches listings from the Adzuna search API and normalizes
// them into jobs. A fetch either returns every requested page or fails.
type AdzunaService struct {
	AppID    string
	AppKey   string
	Country  string
	BaseURL  string
	MaxPages int
	client   *resty.Client
}

func NewAdzunaService() *AdzunaService {
	cfg := config.LoadAdzunaConfig()
	return &AdzunaService{
		AppID:    cfg.AppID,
		AppKey:   cfg.AppKey,
		Country:  cfg.Country,
		BaseURL:  cfg.BaseURL,
		MaxPages: cfg.MaxPages,
		client:   resty.New().SetTimeout(15 * time.Second),
	}
}

func (s *AdzunaService) Fetch(ctx context.Context, query string) ([]model.Job, error) {
	if s.AppID == "" || s.AppKey == "" {
		return nil, fmt.Errorf("%w: ADZUNA_APP_ID / ADZUNA_APP_KEY not set", matcher.ErrJobSourceUnavailable)
	}
	maxPages := s.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	var jobs []model.Job
	for page := 1; page <= maxPages; page++ {
		batch, err := s.fetchPage(ctx, query, page)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", matcher.ErrJobSourceUnavailable, page, err)
		}
		jobs = append(jobs, batch...)
		if len(batch) < adzunaPageSize {
			break
		}
	}
	log.Printf("[adzuna] fetched %d listings for %q", len(jobs), query)
	return jobs, nil
}

func (s *AdzunaService) fetchPage(ctx context.Context, query string, page int) ([]model.Job, error) {
	endpoint := fmt.Sprintf("%s/%s/search/%d", strings.TrimRight(s.BaseURL, "/"), s.Country, page)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"app_id":           s.AppID,
			"app_key":          s.AppKey,
			"results_per_page": strconv.Itoa(adzunaPageSize),
			"what":             query,
			"content-type":     "application/json",
		}).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("adzuna returned %d: %s", resp.StatusCode(), resp.String())
	}

	body := resp.String()
	if !gjson.Valid(body) {
		return nil, fmt.Errorf("adzuna returned invalid JSON")
	}

	results := gjson.Get(body, "results").Array()
	jobs := make([]model.Job, 0, len(results))
	for _, r := range results {
		jobs = append(jobs, model.Job{
			Title:       strings.TrimSpace(r.Get("title").String()),
			Company:     strings.TrimSpace(r.Get("company.display_name").String()),
			Location:    strings.TrimSpace(r.Get("location.display_name").String()),
			Description: strings.TrimSpace(r.Get("description").String()),
			ExternalID:  externalRef(r),
		})
	}
	return jobs, nil
}

// externalRef prefers the listing URL and falls back to the Adzuna id.
func externalRef(r gjson.Result) string {
	if u := r.Get("redirect_url").String(); u != "" {
		return u
	}
	return r.Get("id").String()
}
