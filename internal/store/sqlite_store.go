package store

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SQLiteStore is the SQLite-backed history store, using the
// ncruces/go-sqlite3 database/sql driver.
// Thread-safe for concurrent HTTP handlers.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS history (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    emotion TEXT NOT NULL,
    source TEXT,
    tier TEXT,
    movies TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_created ON history(created_at);
`

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// each ":memory:" connection is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) AppendHistory(entry *HistoryEntry) error {
	prepareEntry(entry)

	movies, err := json.Marshal(entry.Movies)
	if err != nil {
		return fmt.Errorf("failed to encode movies: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO history (id, emotion, source, tier, movies, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Emotion, entry.Source, entry.Tier, string(movies), entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert history: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetHistory(id string) (*HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, emotion, source, tier, movies, created_at
		FROM history WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *SQLiteStore) ListHistory(limit int) ([]*HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(`
		SELECT id, emotion, source, tier, movies, created_at
		FROM history ORDER BY created_at DESC, seq DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*HistoryEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) CountHistory() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count)
	return count, err
}

func (s *SQLiteStore) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM history")
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*HistoryEntry, error) {
	var entry HistoryEntry
	var source, tier sql.NullString
	var movies string

	if err := row.Scan(&entry.ID, &entry.Emotion, &source, &tier, &movies, &entry.CreatedAt); err != nil {
		return nil, err
	}
	entry.Source = source.String
	entry.Tier = tier.String

	if movies != "" {
		if err := json.Unmarshal([]byte(movies), &entry.Movies); err != nil {
			entry.Movies = []MovieRef{}
		}
	}
	if entry.Movies == nil {
		entry.Movies = []MovieRef{}
	}
	return &entry, nil
}
