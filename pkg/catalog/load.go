package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hack-pad/hackpadfs"
)

// DataLoadError reports an unreadable or malformed catalog source.
type DataLoadError struct {
	Source string
	Line   int // 0 when the failure is not tied to a row
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("catalog %s: line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

var (
	// ErrMissingColumn is wrapped when a required header is absent.
	ErrMissingColumn = errors.New("required column missing")
	// ErrEmptyTitle is wrapped when a row has a blank title.
	ErrEmptyTitle = errors.New("empty title")
)

// column names and the header spellings accepted for each.
const (
	colTitle       = "title"
	colGenre       = "genre"
	colDescription = "description"
	colPoster      = "poster_url"
	colTrailer     = "trailer_url"
	colRating      = "rating"
)

var headerAliases = map[string]string{
	"title":       colTitle,
	"movie_title": colTitle,
	"genre":       colGenre,
	"genres":      colGenre,
	"description": colDescription,
	"poster_url":  colPoster,
	"trailer_url": colTrailer,
	"youtube_url": colTrailer,
	"rating":      colRating,
}

// requiredColumns must all be present in the header; their cells may be empty
// except for the title.
var requiredColumns = []string{colTitle, colGenre, colDescription, colPoster, colTrailer, colRating}

// Options tunes how rows are normalized.
type Options struct {
	// DeriveTrailers fills an empty trailer URL with a YouTube search link.
	DeriveTrailers bool
	// Source names the input in errors.
	Source string
}

// LoadFile reads a catalog CSV from fsys.
func LoadFile(fsys hackpadfs.FS, name string, opts Options) (*Corpus, error) {
	if opts.Source == "" {
		opts.Source = name
	}
	f, err := fsys.Open(name)
	if err != nil {
		return nil, &DataLoadError{Source: opts.Source, Err: err}
	}
	defer f.Close()
	return Load(f, opts)
}

// Load parses a catalog CSV with a header row.
func Load(r io.Reader, opts Options) (*Corpus, error) {
	if opts.Source == "" {
		opts.Source = "<reader>"
	}
	fail := func(line int, err error) (*Corpus, error) {
		return nil, &DataLoadError{Source: opts.Source, Line: line, Err: err}
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return fail(0, fmt.Errorf("%w: no header row", ErrMissingColumn))
	}
	if err != nil {
		return fail(1, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if name, ok := headerAliases[key]; ok {
			if _, dup := cols[name]; !dup {
				cols[name] = i
			}
		}
	}
	for _, req := range requiredColumns {
		if _, ok := cols[req]; !ok {
			return fail(1, fmt.Errorf("%w: %s", ErrMissingColumn, req))
		}
	}

	cell := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var movies []Movie
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return fail(perr.StartLine, err)
			}
			return fail(0, err)
		}
		line, _ := cr.FieldPos(0)

		m := Movie{
			Title:       cell(rec, colTitle),
			Genres:      ParseGenres(cell(rec, colGenre)),
			Description: cell(rec, colDescription),
			PosterURL:   cell(rec, colPoster),
			TrailerURL:  cell(rec, colTrailer),
			Rating:      ParseRating(cell(rec, colRating)),
		}
		if m.Title == "" {
			return fail(line, ErrEmptyTitle)
		}
		if m.TrailerURL == "" && opts.DeriveTrailers {
			m.TrailerURL = TrailerSearchURL(m.Title)
		}
		movies = append(movies, m)
	}

	return &Corpus{movies: movies}, nil
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
