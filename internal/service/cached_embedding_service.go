package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/fadilmartias/resume-matcher/internal/matcher"
)

type ModelEmbedder interface {
	matcher.EmbeddingBackend
	EmbeddingModel() string
}

type EmbeddingStore interface {
	FindByHashes(ctx context.Context, hashes []string) (map[string][]float32, error)
	Save(ctx context.Context, embeddingModel string, vectors map[string][]float32) error
}

// CachedEmbeddingService serves vectors from the store and only sends
// uncached texts to the backend. Store failures are logged and bypassed.
type CachedEmbeddingService struct {
	backend ModelEmbedder
	store   EmbeddingStore
}

func NewCachedEmbeddingService(backend ModelEmbedder, store EmbeddingStore) *CachedEmbeddingService {
	return &CachedEmbeddingService{backend: backend, store: store}
}

func (s *CachedEmbeddingService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	embeddingModel := s.backend.EmbeddingModel()
	hashes := make([]string, len(texts))
	for i, t := range texts {
		hashes[i] = embeddingKey(embeddingModel, t)
	}

	cached, err := s.store.FindByHashes(ctx, hashes)
	if err != nil {
		log.Printf("[embedding-cache] lookup failed, bypassing cache: %v", err)
		cached = map[string][]float32{}
	}

	var (
		missTexts []string
		missIdx   []int
	)
	seen := map[string]struct{}{}
	for i, h := range hashes {
		if _, ok := cached[h]; ok {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		missTexts = append(missTexts, texts[i])
		missIdx = append(missIdx, i)
	}

	if len(missTexts) > 0 {
		vectors, err := s.backend.Embed(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(missTexts) {
			return nil, fmt.Errorf("backend returned %d vectors for %d texts", len(vectors), len(missTexts))
		}
		fresh := make(map[string][]float32, len(vectors))
		for j, v := range vectors {
			h := hashes[missIdx[j]]
			cached[h] = v
			fresh[h] = v
		}
		if err := s.store.Save(ctx, embeddingModel, fresh); err != nil {
			log.Printf("[embedding-cache] save failed: %v", err)
		}
	}

	out := make([][]float32, len(texts))
	for i, h := range hashes {
		out[i] = cached[h]
	}
	return out, nil
}

func embeddingKey(embeddingModel, text string) string {
	sum := sha256.Sum256([]byte(embeddingModel + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
