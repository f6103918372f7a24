package recommend

import (
	"fmt"
	"strings"

	"github.com/kittclouds/moodreel/pkg/catalog"
	"github.com/kittclouds/moodreel/pkg/tfidf"
)

// DefaultTopN is used when a caller asks for zero or fewer results.
const DefaultTopN = 5

// Tier identifies which fallback stage produced a result.
type Tier int

const (
	TierNone Tier = iota
	TierPrimary
	TierNeutral
	TierGlobal
)

func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierNeutral:
		return "neutral"
	case TierGlobal:
		return "global"
	default:
		return "none"
	}
}

// MarshalText lets a Tier appear as a string in JSON.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses the names produced by MarshalText.
func (t *Tier) UnmarshalText(b []byte) error {
	switch string(b) {
	case "primary":
		*t = TierPrimary
	case "neutral":
		*t = TierNeutral
	case "global":
		*t = TierGlobal
	case "none", "":
		*t = TierNone
	default:
		return fmt.Errorf("unknown tier %q", b)
	}
	return nil
}

// Item is one recommended movie.
type Item struct {
	Index int           `json:"index"`
	Score float64       `json:"score"`
	Movie catalog.Movie `json:"movie"`
}

// Result is the ranked output of Recommend.
type Result struct {
	Emotion string `json:"emotion"`
	Tier    Tier   `json:"tier"`
	Items   []Item `json:"items"`
}

// Titles lists the recommended titles in rank order.
func (r Result) Titles() []string {
	out := make([]string, len(r.Items))
	for i, it := range r.Items {
		out[i] = it.Movie.Title
	}
	return out
}

// Empty reports whether nothing was recommended.
func (r Result) Empty() bool { return len(r.Items) == 0 }

// Index is the immutable corpus and TF-IDF matrix pair. It is safe for
// concurrent use.
type Index struct {
	corpus *catalog.Corpus
	matrix *tfidf.Matrix
}

// NewIndex vectorizes every description in c.
func NewIndex(c *catalog.Corpus) *Index {
	if c == nil {
		c = catalog.NewCorpus(nil)
	}
	return &Index{corpus: c, matrix: tfidf.Build(c.Descriptions())}
}

// Corpus returns the indexed corpus.
func (x *Index) Corpus() *catalog.Corpus { return x.corpus }

// Matrix returns the TF-IDF matrix.
func (x *Index) Matrix() *tfidf.Matrix { return x.matrix }

// Recommend returns up to topN movies for emotion.
//
// Tier 1 filters by the emotion's genres. Tier 2 retries with the neutral
// genres when tier 1 is empty and the emotion is not neutral. Tier 3 ranks
// the entire corpus against its global centroid. Unknown emotions have no
// genres of their own and start at tier 2. The result is empty only when the
// corpus is empty.
func (x *Index) Recommend(emotion string, topN int) Result {
	emotion = strings.ToLower(strings.TrimSpace(emotion))
	if topN <= 0 {
		topN = DefaultTopN
	}
	res := Result{Emotion: emotion, Items: []Item{}}

	tier := TierPrimary
	subset := FilterByGenre(x.corpus, TargetGenres(emotion))

	if len(subset) == 0 && emotion != Neutral {
		tier = TierNeutral
		subset = FilterByGenre(x.corpus, TargetGenres(Neutral))
	}

	var ranked []Scored
	if len(subset) > 0 {
		ranked = Rank(subset, x.matrix, topN)
	} else {
		tier = TierGlobal
		ranked = RankAll(x.matrix, topN)
	}

	if len(ranked) == 0 {
		return res
	}
	res.Tier = tier
	for _, s := range ranked {
		res.Items = append(res.Items, Item{Index: s.Index, Score: s.Score, Movie: x.corpus.Movie(s.Index)})
	}
	return res
}
