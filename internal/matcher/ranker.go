package matcher

import (
	"fmt"
	"math"
	"sort"
)

const DefaultTopK = 5

// Ranked pairs an item with its raw similarity and the display percentage.
type Ranked[T any] struct {
	Item         T
	Score        float64
	DisplayScore float64
}

// Rank orders items by their positional score, highest first, keeping input
// order on ties, and returns at most topK entries. topK <= 0 means DefaultTopK.
// DisplayScore is score*100 rounded to two decimals and is not clamped.
func Rank[T any](items []T, scores []float64, topK int) []Ranked[T] {
	if len(items) != len(scores) {
		panic(fmt.Sprintf("matcher: Rank got %d items and %d scores", len(items), len(scores)))
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	ranked := make([]Ranked[T], len(items))
	for i := range items {
		ranked[i] = Ranked[T]{Item: items[i], Score: scores[i], DisplayScore: DisplayScore(scores[i])}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

func DisplayScore(score float64) float64 {
	return math.Round(score*100*100) / 100
}
