package matcher_test

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/resume-matcher/internal/matcher"
)

// bagOfWords embeds each text as word counts over the words seen in the batch.
type bagOfWords struct {
	calls int
}

func (b *bagOfWords) Embed(_ context.Context, texts []string) ([][]float32, error) {
	b.calls++
	index := map[string]int{}
	split := make([][]string, len(texts))
	for i, t := range texts {
		split[i] = strings.Fields(strings.ToLower(t))
		for _, w := range split[i] {
			if _, ok := index[w]; !ok {
				index[w] = len(index)
			}
		}
	}
	out := make([][]float32, len(texts))
	for i, words := range split {
		v := make([]float32, len(index)+1)
		v[len(index)] = 0.01 // keeps empty texts away from the zero vector
		for _, w := range words {
			v[index[w]]++
		}
		out[i] = v
	}
	return out, nil
}

type failingBackend struct{}

func (failingBackend) Embed(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("connection refused")
}

type staticBackend struct {
	vectors [][]float32
}

func (s staticBackend) Embed(context.Context, []string) ([][]float32, error) {
	return s.vectors, nil
}

type fakeTagger struct {
	entities []matcher.Entity
	err      error
	calls    int
}

func (f *fakeTagger) Tag(context.Context, string) ([]matcher.Entity, error) {
	f.calls++
	return f.entities, f.err
}
