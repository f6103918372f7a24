// Package catalog loads the static movie catalog into an immutable corpus.
package catalog

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Rating is a numeric score that may be unavailable in the source.
type Rating struct {
	Value float64
	Valid bool
}

// ParseRating reads a rating cell. Blank or non-numeric cells are unavailable.
func ParseRating(raw string) Rating {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Rating{}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Rating{}
	}
	return Rating{Value: v, Valid: true}
}

// String renders the rating for display.
func (r Rating) String() string {
	if !r.Valid {
		return "unavailable"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// MarshalJSON encodes an unavailable rating as null.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts a number or null.
func (r *Rating) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Rating{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Rating{Value: v, Valid: true}
	return nil
}

// Movie is one catalog record. Its identity is its position in the Corpus.
type Movie struct {
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	Description string   `json:"description"`
	PosterURL   string   `json:"posterUrl"`
	TrailerURL  string   `json:"trailerUrl"`
	Rating      Rating   `json:"rating"`
}

// HasGenre reports whether any of the movie's genre tokens is in targets.
func (m *Movie) HasGenre(targets map[string]struct{}) bool {
	for _, g := range m.Genres {
		if _, ok := targets[g]; ok {
			return true
		}
	}
	return false
}

// ParseGenres splits a comma separated genre cell into trimmed, lowercased,
// de-duplicated tokens in first-seen order.
func ParseGenres(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		g := strings.ToLower(strings.TrimSpace(p))
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

// TrailerSearchURL builds a YouTube search link for a title.
func TrailerSearchURL(title string) string {
	q := strings.Join(strings.Fields(title), "+")
	return "https://www.youtube.com/results?search_query=" + q + "+trailer"
}
