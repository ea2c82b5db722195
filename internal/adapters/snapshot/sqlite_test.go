package snapshot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

func openTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "local.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestSQLiteStore_LoadMissing(t *testing.T) {
	s, _ := openTestStore(t)

	var p payload
	found, err := s.Load(context.Background(), "inventory", &p)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSQLiteStore_SaveThenLoad(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "inventory", payload{Items: []string{"a", "b"}, Count: 2}))

	var p payload
	found, err := s.Load(ctx, "inventory", &p)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"a", "b"}, p.Items)
	assert.Equal(t, 2, p.Count)
}

func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "users", payload{Count: 1}))
	require.NoError(t, s.Save(ctx, "users", payload{Count: 5}))

	var p payload
	_, err := s.Load(ctx, "users", &p)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Count)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "settings", payload{Count: 7}))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	var p payload
	found, err := reopened.Load(ctx, "settings", &p)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 7, p.Count)
}

func TestMemoryStore_RoundTripAndCount(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, "k", payload{Count: 3}))
	require.NoError(t, m.Save(ctx, "k", payload{Count: 4}))

	var p payload
	found, err := m.Load(ctx, "k", &p)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4, p.Count)
	assert.Equal(t, 2, m.Saves("k"))
}
