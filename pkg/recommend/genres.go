// Package recommend maps an emotion label to a ranked list of movies.
//
// An Index pairs a catalog.Corpus with its TF-IDF matrix. Recommend filters
// the corpus by the genres associated with the emotion and ranks the
// candidates by cosine similarity to their own centroid, falling back to the
// neutral genres and finally to the whole corpus when a tier finds nothing.
package recommend

import (
	"strings"

	"github.com/kittclouds/moodreel/pkg/catalog"
)

// Neutral is the label whose genres serve as the second fallback tier.
const Neutral = "neutral"

// EmotionGenres maps each known emotion to its target genres.
var EmotionGenres = map[string][]string{
	"happy":    {"comedy", "romance"},
	"sad":      {"drama", "biography"},
	"angry":    {"action", "thriller"},
	"surprise": {"mystery", "sci-fi"},
	"fear":     {"horror", "thriller"},
	Neutral:    {"adventure", "drama", "action"},
}

// TargetGenres returns the genres for emotion. Unknown labels return nil.
func TargetGenres(emotion string) []string {
	g := EmotionGenres[strings.ToLower(strings.TrimSpace(emotion))]
	if g == nil {
		return nil
	}
	return append([]string(nil), g...)
}

// FilterByGenre returns, in corpus order, the indices of movies sharing at
// least one genre with targets. No match is an empty result, not an error.
func FilterByGenre(c *catalog.Corpus, targets []string) []int {
	if len(targets) == 0 || c.Len() == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(targets))
	for _, g := range targets {
		set[strings.ToLower(strings.TrimSpace(g))] = struct{}{}
	}

	var out []int
	c.Each(func(i int, m *catalog.Movie) bool {
		if m.HasGenre(set) {
			out = append(out, i)
		}
		return true
	})
	return out
}
