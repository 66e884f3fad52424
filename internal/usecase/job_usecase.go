package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/response"
	"github.com/google/uuid"
)

type JobSource interface {
	Fetch(ctx context.Context, query string) ([]model.Job, error)
}

type JobStore interface {
	ReplaceAll(ctx context.Context, jobs []model.Job) (uuid.UUID, error)
	FindAll(ctx context.Context) ([]model.Job, error)
	List(ctx context.Context, limit, offset int) ([]model.Job, int64, error)
}

type RefreshResult struct {
	BatchID uuid.UUID `json:"batch_id"`
	Count   int       `json:"count"`
	Query   string    `json:"query"`
}

type JobUsecase struct {
	jobs         JobStore
	source       JobSource
	defaultQuery string

	// one refresh at a time; readers are never blocked
	refreshMu sync.Mutex
}

func NewJobUsecase(jobs JobStore, source JobSource, defaultQuery string) *JobUsecase {
	return &JobUsecase{jobs: jobs, source: source, defaultQuery: defaultQuery}
}

// Refresh fetches listings for query and replaces the corpus with them. On
// any fetch failure, or when the source returns nothing, the current corpus
// is kept.
func (uc *JobUsecase) Refresh(ctx context.Context, query string) (RefreshResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = uc.defaultQuery
	}
	if query == "" {
		return RefreshResult{}, fmt.Errorf("%w: query is required", matcher.ErrEmptyInput)
	}

	uc.refreshMu.Lock()
	defer uc.refreshMu.Unlock()

	listings, err := uc.source.Fetch(ctx, query)
	if err != nil {
		if !errors.Is(err, matcher.ErrJobSourceUnavailable) {
			err = fmt.Errorf("%w: %v", matcher.ErrJobSourceUnavailable, err)
		}
		return RefreshResult{}, err
	}

	jobs := make([]model.Job, 0, len(listings))
	for _, j := range listings {
		if strings.TrimSpace(j.MatchText()) == "" {
			continue
		}
		jobs = append(jobs, j)
	}
	if len(jobs) == 0 {
		return RefreshResult{}, fmt.Errorf("%w: source returned no usable listings for %q", matcher.ErrJobSourceUnavailable, query)
	}

	batchID, err := uc.jobs.ReplaceAll(ctx, jobs)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("replace corpus: %w", err)
	}
	log.Printf("Job corpus replaced: batch %s with %d listings for %q", batchID, len(jobs), query)
	return RefreshResult{BatchID: batchID, Count: len(jobs), Query: query}, nil
}

func (uc *JobUsecase) List(ctx context.Context, page, pageSize int) ([]model.Job, *response.Pagination, error) {
	page, pageSize, err := normalizePage(page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	jobs, total, err := uc.jobs.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, err
	}
	return jobs, response.NewPagination(page, pageSize, len(jobs), total), nil
}
