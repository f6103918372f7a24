package recommend

import (
	"sync"

	"github.com/kittclouds/moodreel/pkg/catalog"
)

// LoadFunc produces the corpus to index.
type LoadFunc func() (*catalog.Corpus, error)

// Loader builds an Index at most once. Concurrent Get calls wait for the
// in-flight build and then share its result. A failed build is not cached;
// the error goes back to the caller and the next Get loads again.
type Loader struct {
	mu    sync.Mutex
	load  LoadFunc
	index *Index
}

// NewLoader creates a loader around load.
func NewLoader(load LoadFunc) *Loader {
	return &Loader{load: load}
}

// Get returns the cached Index, building it on first use.
func (l *Loader) Get() (*Index, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.index != nil {
		return l.index, nil
	}
	c, err := l.load()
	if err != nil {
		return nil, err
	}
	l.index = NewIndex(c)
	return l.index, nil
}

// Ready reports whether the index has been built.
func (l *Loader) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index != nil
}
