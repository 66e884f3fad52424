package matcher

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// EmbeddingBackend encodes texts into fixed-length vectors, one per input, in
// input order. Implementations must be deterministic and safe for concurrent use.
type EmbeddingBackend interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Scorer struct {
	backend EmbeddingBackend
}

func NewScorer(backend EmbeddingBackend) *Scorer {
	return &Scorer{backend: backend}
}

// Score returns the cosine similarity between resumeText and each job
// description, in the order of jobDescriptions.
func (s *Scorer) Score(ctx context.Context, resumeText string, jobDescriptions []string) ([]float64, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("%w: resume text is blank", ErrEmptyInput)
	}
	if len(jobDescriptions) == 0 {
		return nil, fmt.Errorf("%w: no job descriptions to score", ErrEmptyInput)
	}
	if s.backend == nil {
		return nil, fmt.Errorf("%w: no embedding backend configured", ErrScoringUnavailable)
	}

	texts := make([]string, 0, len(jobDescriptions)+1)
	texts = append(texts, resumeText)
	texts = append(texts, jobDescriptions...)

	vectors, err := s.backend.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringUnavailable, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: backend returned %d vectors for %d texts", ErrScoringUnavailable, len(vectors), len(texts))
	}

	resumeVec, err := normalize(vectors[0])
	if err != nil {
		return nil, fmt.Errorf("%w: resume embedding: %v", ErrScoringUnavailable, err)
	}

	scores := make([]float64, len(jobDescriptions))
	for i, v := range vectors[1:] {
		if len(v) != len(resumeVec) {
			return nil, fmt.Errorf("%w: job %d embedding has %d dimensions, want %d", ErrScoringUnavailable, i, len(v), len(resumeVec))
		}
		jobVec, err := normalize(v)
		if err != nil {
			return nil, fmt.Errorf("%w: job %d embedding: %v", ErrScoringUnavailable, i, err)
		}
		scores[i] = dot(resumeVec, jobVec)
	}
	return scores, nil
}

func normalize(v []float32) ([]float64, error) {
	if len(v) == 0 {
		return nil, fmt.Errorf("empty vector")
	}
	var sum float64
	out := make([]float64, len(v))
	for i, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("invalid value at index %d", i)
		}
		out[i] = f
		sum += f * f
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return nil, fmt.Errorf("zero vector")
	}
	for i := range out {
		out[i] /= norm
	}
	return out, nil
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
