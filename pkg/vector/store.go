// Package vector keeps an HNSW index over TF-IDF rows for "more like this"
// lookups and persists it through a hackpadfs filesystem.
package vector

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/fogfish/hnsw"
	"github.com/fogfish/hnsw/vector" // fogfish/hnsw/vector alias, imports kshard/vector
	"github.com/hack-pad/hackpadfs"
	kvector "github.com/kshard/vector"

	"github.com/kittclouds/moodreel/pkg/tfidf"
)

// Store manages the HNSW index and its persistence.
type Store struct {
	index *hnsw.HNSW[vector.VF32]
	fs    hackpadfs.FS
	path  string
	mu    sync.RWMutex
}

func newIndex() *hnsw.HNSW[vector.VF32] {
	return hnsw.New[vector.VF32](vector.SurfaceVF32(kvector.Cosine()))
}

// NewStore opens the snapshot at path, or starts an empty index when no
// snapshot exists yet.
func NewStore(fsys hackpadfs.FS, path string) (*Store, error) {
	s := &Store{fs: fsys, path: path}

	err := s.Load()
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		s.index = newIndex()
	default:
		return nil, err
	}
	return s, nil
}

// FromMatrix indexes every non-zero row of m, keyed by corpus position.
// Zero rows have no direction and are left out.
func FromMatrix(fsys hackpadfs.FS, path string, m *tfidf.Matrix) (*Store, error) {
	s := &Store{fs: fsys, path: path, index: newIndex()}
	for i := 0; i < m.Len(); i++ {
		row := m.Row(i)
		if tfidf.IsZero(row) {
			continue
		}
		if err := s.Add(uint32(i), row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return s, nil
}

// Size returns the number of indexed vectors.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Size()
}

// Add inserts a vector with an ID.
// Returns error if vector dimension doesn't match existing index.
func (s *Store) Add(id uint32, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkDim(vec); err != nil {
		return err
	}
	s.index.Insert(vector.VF32{Key: id, Vec: pad(vec)})
	return nil
}

// checkDim compares padded lengths; snapshots only keep the padded form.
func (s *Store) checkDim(vec []float32) error {
	if s.index.Size() > 0 {
		dim := len(s.index.Head().Vec)
		if n := paddedLen(len(vec)); n != dim {
			return fmt.Errorf("vector dimension mismatch: expected %d, got %d", dim, n)
		}
	}
	return nil
}

// The cosine surface works on blocks of 4 lanes. Trailing zeros leave dot
// products and norms unchanged.
func paddedLen(n int) int {
	return (n + 3) &^ 3
}

func pad(vec []float32) []float32 {
	n := paddedLen(len(vec))
	if n == len(vec) {
		return vec
	}
	out := make([]float32, n)
	copy(out, vec)
	return out
}

// Search returns up to k nearest IDs, closest first.
func (s *Store) Search(vec []float32, k int) ([]uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// a zero vector has no direction, every distance would be NaN
	if k <= 0 || s.index.Size() == 0 || tfidf.IsZero(vec) {
		return nil, nil
	}
	if err := s.checkDim(vec); err != nil {
		return nil, err
	}

	ef := k * 2
	if ef < 100 {
		ef = 100
	}

	results := s.index.Search(vector.VF32{Vec: pad(vec)}, k, ef)
	ids := make([]uint32, len(results))
	for i, r := range results {
		ids[i] = r.Key
	}
	return ids, nil
}

// Similar returns up to k IDs closest to the vector of id, excluding id.
// A zero vector has no neighbours.
func (s *Store) Similar(id uint32, vec []float32, k int) ([]uint32, error) {
	ids, err := s.Search(vec, k+1)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, 0, k)
	for _, other := range ids {
		if other == id {
			continue
		}
		if len(out) == k {
			break
		}
		out = append(out, other)
	}
	return out, nil
}

// Save persists the index to FS.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s.index.Nodes()); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := hackpadfs.WriteFullFile(s.fs, s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	return nil
}

// Load reads the index from FS.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := hackpadfs.ReadFile(s.fs, s.path)
	if err != nil {
		return err
	}

	var nodes hnsw.Nodes[vector.VF32]
	if err := gob.NewDecoder(bytes.NewReader(content)).Decode(&nodes); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}

	s.index = hnsw.FromNodes[vector.VF32](
		vector.SurfaceVF32(kvector.Cosine()),
		nodes,
	)
	return nil
}
