// Package store persists the emotion history: which mood was detected and
// which movies were recommended for it.
package store

// MovieRef points at a recommended movie by corpus position.
type MovieRef struct {
	Index int     `json:"index"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// HistoryEntry records one recommendation request.
type HistoryEntry struct {
	ID        string     `json:"id"`
	Emotion   string     `json:"emotion"`
	Source    string     `json:"source"` // "webcam" | "text" | "cli" | "api"
	Tier      string     `json:"tier"`
	Movies    []MovieRef `json:"movies"`
	CreatedAt int64      `json:"createdAt"` // unix millis
}

// Storer defines the interface for history persistence.
// MemStore backs tests and ephemeral runs; SQLiteStore keeps history on disk.
type Storer interface {
	// AppendHistory stores entry, assigning ID and CreatedAt when unset.
	AppendHistory(entry *HistoryEntry) error
	// GetHistory returns nil, nil when id is unknown.
	GetHistory(id string) (*HistoryEntry, error)
	// ListHistory returns the newest entries first. limit <= 0 means all.
	ListHistory(limit int) ([]*HistoryEntry, error)
	CountHistory() (int, error)
	ClearHistory() error

	// Lifecycle
	Close() error
}
