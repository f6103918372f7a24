package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Store Factory for Testing Both Implementations
// =============================================================================

// storeFactory creates a store for testing.
// We test both MemStore and SQLiteStore with the same test suite.
type storeFactory func() (Storer, error)

func memStoreFactory() (Storer, error) {
	return NewMemStore(), nil
}

func sqliteStoreFactory() (Storer, error) {
	return NewSQLiteStore()
}

// runTestsForAllStores runs a test function against both store implementations.
func runTestsForAllStores(t *testing.T, testName string, testFn func(t *testing.T, store Storer)) {
	factories := map[string]storeFactory{
		"MemStore":    memStoreFactory,
		"SQLiteStore": sqliteStoreFactory,
	}

	for name, factory := range factories {
		t.Run(name+"/"+testName, func(t *testing.T) {
			store, err := factory()
			require.NoError(t, err, "Failed to create store")
			defer store.Close()
			testFn(t, store)
		})
	}
}

func sampleEntry(emotion string, createdAt int64) *HistoryEntry {
	return &HistoryEntry{
		Emotion: emotion,
		Source:  "webcam",
		Tier:    "primary",
		Movies: []MovieRef{
			{Index: 0, Title: "Laugh Riot", Score: 0.91},
			{Index: 7, Title: "Prank Wars", Score: 0.84},
		},
		CreatedAt: createdAt,
	}
}

// =============================================================================
// History Tests
// =============================================================================

func TestHistoryAppendAndGet(t *testing.T) {
	runTestsForAllStores(t, "AppendAndGet", func(t *testing.T, store Storer) {
		entry := sampleEntry("happy", 1000)
		require.NoError(t, store.AppendHistory(entry))
		require.NotEmpty(t, entry.ID, "ID should be assigned")

		got, err := store.GetHistory(entry.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, entry.ID, got.ID)
		assert.Equal(t, "happy", got.Emotion)
		assert.Equal(t, "webcam", got.Source)
		assert.Equal(t, "primary", got.Tier)
		assert.Equal(t, int64(1000), got.CreatedAt)
		assert.Equal(t, entry.Movies, got.Movies)
	})
}

func TestHistoryGetNotFound(t *testing.T) {
	runTestsForAllStores(t, "GetNotFound", func(t *testing.T, store Storer) {
		got, err := store.GetHistory("nonexistent")
		require.NoError(t, err, "GetHistory for nonexistent should not error")
		assert.Nil(t, got)
	})
}

func TestHistoryDefaults(t *testing.T) {
	runTestsForAllStores(t, "Defaults", func(t *testing.T, store Storer) {
		entry := &HistoryEntry{Emotion: "neutral"}
		require.NoError(t, store.AppendHistory(entry))
		assert.NotZero(t, entry.CreatedAt)

		got, err := store.GetHistory(entry.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.NotNil(t, got.Movies)
		assert.Empty(t, got.Movies)
	})
}

func TestHistoryListNewestFirst(t *testing.T) {
	runTestsForAllStores(t, "ListNewestFirst", func(t *testing.T, store Storer) {
		require.NoError(t, store.AppendHistory(sampleEntry("happy", 100)))
		require.NoError(t, store.AppendHistory(sampleEntry("sad", 200)))
		require.NoError(t, store.AppendHistory(sampleEntry("fear", 300)))

		all, err := store.ListHistory(0)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "fear", all[0].Emotion)
		assert.Equal(t, "sad", all[1].Emotion)
		assert.Equal(t, "happy", all[2].Emotion)

		limited, err := store.ListHistory(2)
		require.NoError(t, err)
		require.Len(t, limited, 2)
		assert.Equal(t, "fear", limited[0].Emotion)
	})
}

func TestHistoryCountAndClear(t *testing.T) {
	runTestsForAllStores(t, "CountAndClear", func(t *testing.T, store Storer) {
		count, err := store.CountHistory()
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		for i := 0; i < 4; i++ {
			require.NoError(t, store.AppendHistory(sampleEntry("angry", int64(i+1))))
		}
		count, err = store.CountHistory()
		require.NoError(t, err)
		assert.Equal(t, 4, count)

		require.NoError(t, store.ClearHistory())
		count, err = store.CountHistory()
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		list, err := store.ListHistory(10)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestHistoryReturnsCopies(t *testing.T) {
	runTestsForAllStores(t, "ReturnsCopies", func(t *testing.T, store Storer) {
		entry := sampleEntry("happy", 10)
		require.NoError(t, store.AppendHistory(entry))
		entry.Movies[0].Title = "mutated"

		got, err := store.GetHistory(entry.ID)
		require.NoError(t, err)
		assert.Equal(t, "Laugh Riot", got.Movies[0].Title)
	})
}

func TestSQLiteStoreOpensWithEmbeddedBinary(t *testing.T) {
	s, err := NewSQLiteStoreWithDSN(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.AppendHistory(sampleEntry("happy", 1)))
	n, err := s.CountHistory()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLiteStorePersists(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")

	s, err := NewSQLiteStoreWithDSN(dsn)
	require.NoError(t, err)
	entry := sampleEntry("surprise", 42)
	require.NoError(t, s.AppendHistory(entry))
	require.NoError(t, s.Close())

	s2, err := NewSQLiteStoreWithDSN(dsn)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.GetHistory(entry.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "surprise", got.Emotion)
}
