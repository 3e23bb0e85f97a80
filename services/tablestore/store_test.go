package tablestore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	rows := []Row{
		{"id": "1", "name": "Ana"},
		{"id": " ", "name": ""},
		nil,
		{"id": "2"},
	}

	got := Normalize(rows, []string{"id", "name", "email"})

	require.Len(t, got, 2)
	assert.Equal(t, Row{"id": "1", "name": "Ana", "email": ""}, got[0])
	assert.Equal(t, Row{"id": "2", "name": "", "email": ""}, got[1])
	// input untouched
	assert.NotContains(t, rows[0], "email")
}

func TestNormalize_EmptyTable(t *testing.T) {
	got := Normalize(nil, []string{"id"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestColumns(t *testing.T) {
	rows := []Row{{"id": "1", "zeta": "z", "alpha": "a"}}
	assert.Equal(t, []string{"id", "name", "alpha", "zeta"}, Columns([]string{"id", "name"}, rows))
	assert.Equal(t, []string{"alpha", "id", "zeta"}, Columns(nil, rows))
}

func TestRowMerge(t *testing.T) {
	base := Row{"id": "7", "paid": "FALSE", "legacy": "x"}
	merged := base.Merge(Row{"paid": "TRUE"})

	assert.Equal(t, Row{"id": "7", "paid": "TRUE", "legacy": "x"}, merged)
	assert.Equal(t, "FALSE", base["paid"])
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rows, err := store.ReadAll(ctx, TableClients)
	require.NoError(t, err)
	assert.Empty(t, rows)

	input := []Row{{"id": "1"}, {"id": ""}}
	require.NoError(t, store.ReplaceAll(ctx, TableClients, input))

	// caller mutations must not leak into the store
	input[0]["id"] = "99"

	rows, err = store.ReadAll(ctx, TableClients)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["id"])
}

type countingStore struct {
	*MemoryStore
	mu          sync.Mutex
	reads       int
	invalidated int
	failWrites  bool
}

func (c *countingStore) ReadAll(ctx context.Context, table string) ([]Row, error) {
	c.mu.Lock()
	c.reads++
	c.mu.Unlock()
	return c.MemoryStore.ReadAll(ctx, table)
}

func (c *countingStore) ReplaceAll(ctx context.Context, table string, rows []Row) error {
	if c.failWrites {
		return ErrUnavailable
	}
	return c.MemoryStore.ReplaceAll(ctx, table, rows)
}

func (c *countingStore) InvalidateCache() {
	c.mu.Lock()
	c.invalidated++
	c.mu.Unlock()
}

func TestCachedStore(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	store := NewCachedStore(inner, time.Minute)

	require.NoError(t, store.ReplaceAll(ctx, TableCases, []Row{{"id": "1"}}))

	t.Run("Reads are served from cache", func(t *testing.T) {
		_, err := store.ReadAll(ctx, TableCases)
		require.NoError(t, err)
		rows, err := store.ReadAll(ctx, TableCases)
		require.NoError(t, err)

		assert.Len(t, rows, 1)
		assert.Equal(t, 1, inner.reads)
		stats := store.Stats()
		assert.Equal(t, int64(1), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
	})

	t.Run("Cached rows are copies", func(t *testing.T) {
		rows, _ := store.ReadAll(ctx, TableCases)
		rows[0]["id"] = "mutated"

		again, _ := store.ReadAll(ctx, TableCases)
		assert.Equal(t, "1", again[0]["id"])
	})

	t.Run("Writes invalidate before returning", func(t *testing.T) {
		require.NoError(t, store.ReplaceAll(ctx, TableCases, []Row{{"id": "1"}, {"id": "2"}}))

		rows, err := store.ReadAll(ctx, TableCases)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.GreaterOrEqual(t, inner.invalidated, 2)
	})

	t.Run("Failed write still invalidates", func(t *testing.T) {
		before := inner.invalidated
		inner.failWrites = true
		defer func() { inner.failWrites = false }()

		err := store.ReplaceAll(ctx, TableCases, nil)
		assert.True(t, errors.Is(err, ErrUnavailable))
		assert.Greater(t, inner.invalidated, before)
	})
}

func TestCachedStore_Disabled(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	store := NewCachedStore(inner, 0)

	store.ReadAll(ctx, TableCases)
	store.ReadAll(ctx, TableCases)

	assert.Equal(t, 2, inner.reads)
	assert.Equal(t, 0, store.Stats().Size)
}

// gatedStore blocks ReadAll until release is closed, after signalling entered.
type gatedStore struct {
	*MemoryStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedStore) ReadAll(ctx context.Context, table string) ([]Row, error) {
	rows, err := g.MemoryStore.ReadAll(ctx, table)
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return rows, err
}

func TestCachedStore_WriteDuringReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := &gatedStore{
		MemoryStore: NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	require.NoError(t, inner.MemoryStore.ReplaceAll(ctx, TableCases, []Row{{"id": "1", "v": "old"}}))
	store := NewCachedStore(inner, time.Minute)

	done := make(chan []Row)
	go func() {
		rows, _ := store.ReadAll(ctx, TableCases)
		done <- rows
	}()

	<-inner.entered
	require.NoError(t, store.ReplaceAll(ctx, TableCases, []Row{{"id": "1", "v": "new"}}))
	close(inner.release)

	stale := <-done
	assert.Equal(t, "old", stale[0]["v"])

	rows, err := store.ReadAll(ctx, TableCases)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "new", rows[0]["v"])
}
