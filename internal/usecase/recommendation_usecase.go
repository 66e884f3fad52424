package usecase

import (
	"context"
	"fmt"

	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/google/uuid"
)

type Scorer interface {
	Score(ctx context.Context, resumeText string, jobDescriptions []string) ([]float64, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
}

type RecommendationUsecase struct {
	resumes *ResumeUsecase
	jobs    JobStore
	scorer  Scorer
	cache   Cache
	topK    int
}

// NewRecommendationUsecase wires the ranking pipeline. cache may be nil.
func NewRecommendationUsecase(resumes *ResumeUsecase, jobs JobStore, scorer Scorer, cache Cache) *RecommendationUsecase {
	return &RecommendationUsecase{resumes: resumes, jobs: jobs, scorer: scorer, cache: cache, topK: matcher.DefaultTopK}
}

// Recommend ranks the current corpus against a resume of actor. A nil
// resumeID selects the actor's latest upload.
func (uc *RecommendationUsecase) Recommend(ctx context.Context, actor Actor, resumeID *uuid.UUID) ([]matcher.Ranked[model.Job], error) {
	var (
		resume *model.Resume
		err    error
	)
	if resumeID != nil {
		resume, err = uc.resumes.Get(ctx, actor, *resumeID)
	} else {
		resume, err = uc.resumes.Latest(ctx, actor)
	}
	if err != nil {
		return nil, err
	}

	jobs, err := uc.jobs.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load job corpus: %w", err)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: refresh the job corpus first", matcher.ErrNoJobsAvailable)
	}

	key := fmt.Sprintf("recommendations:%s:%s:%d", resume.ID, jobs[0].BatchID, uc.topK)
	var cached []matcher.Ranked[model.Job]
	if uc.cache != nil && uc.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	descriptions := make([]string, len(jobs))
	for i := range jobs {
		descriptions[i] = jobs[i].MatchText()
	}

	scores, err := uc.scorer.Score(ctx, resume.RawText, descriptions)
	if err != nil {
		return nil, err
	}

	ranked := matcher.Rank(jobs, scores, uc.topK)
	if uc.cache != nil {
		uc.cache.Set(ctx, key, ranked)
	}
	return ranked, nil
}
