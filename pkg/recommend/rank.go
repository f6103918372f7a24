package recommend

import (
	"sort"

	"github.com/kittclouds/moodreel/pkg/tfidf"
)

// Scored is a corpus position with its similarity to the candidate centroid.
type Scored struct {
	Index int
	Score float64
}

// Rank orders subset by cosine similarity to the subset's own centroid,
// highest first. Equal scores keep ascending corpus order. At most topN
// entries are returned.
func Rank(subset []int, m *tfidf.Matrix, topN int) []Scored {
	if len(subset) == 0 || topN <= 0 {
		return nil
	}
	return rankAgainst(subset, m, m.Centroid(subset), topN)
}

// RankAll ranks the whole matrix against its global centroid.
func RankAll(m *tfidf.Matrix, topN int) []Scored {
	if m.Len() == 0 || topN <= 0 {
		return nil
	}
	all := make([]int, m.Len())
	for i := range all {
		all[i] = i
	}
	return rankAgainst(all, m, m.CentroidAll(), topN)
}

func rankAgainst(subset []int, m *tfidf.Matrix, centroid []float32, topN int) []Scored {
	scored := make([]Scored, len(subset))
	for k, i := range subset {
		scored[k] = Scored{Index: i, Score: tfidf.CosineSimilarity(centroid, m.Row(i))}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].Score != scored[b].Score {
			return scored[a].Score > scored[b].Score
		}
		return scored[a].Index < scored[b].Index
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}
