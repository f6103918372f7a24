package catalog

// Corpus is the ordered, fixed-size movie table. It is never mutated after
// Load returns; accessors hand out copies.
type Corpus struct {
	movies []Movie
}

// NewCorpus wraps already-normalized movies. The slice is copied.
func NewCorpus(movies []Movie) *Corpus {
	c := &Corpus{movies: make([]Movie, len(movies))}
	copy(c.movies, movies)
	return c
}

// Len returns the number of records.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.movies)
}

// Movie returns the record at position i.
func (c *Corpus) Movie(i int) Movie {
	m := c.movies[i]
	m.Genres = append([]string(nil), m.Genres...)
	return m
}

// Descriptions returns every description in corpus order.
func (c *Corpus) Descriptions() []string {
	docs := make([]string, c.Len())
	for i := range docs {
		docs[i] = c.movies[i].Description
	}
	return docs
}

// FindTitle returns the index of the first record whose title equals title,
// ignoring case, or -1.
func (c *Corpus) FindTitle(title string) int {
	for i := 0; i < c.Len(); i++ {
		if equalFold(c.movies[i].Title, title) {
			return i
		}
	}
	return -1
}

// Each calls fn for every record in order until fn returns false.
func (c *Corpus) Each(fn func(i int, m *Movie) bool) {
	for i := 0; i < c.Len(); i++ {
		if !fn(i, &c.movies[i]) {
			return
		}
	}
}
