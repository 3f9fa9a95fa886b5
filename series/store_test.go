package series

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seriesorg/libseries-go/token"
)

// storeFactories runs each test against both Store implementations.
func storeFactories(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"mem": func(t *testing.T) Store { return NewMemStore() },
		"bolt": func(t *testing.T) Store {
			store, err := OpenBoltStore(filepath.Join(t.TempDir(), "series.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })
			return store
		},
	}
}

func TestStoreCreateGet(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)

			s := newTestSeries("1", 10, 100)
			require.NoError(t, store.Create(s))

			got, err := store.Get("1")
			require.NoError(t, err)
			assert.Equal(t, s.ID, got.ID)
			assert.Equal(t, s.CreatorID, got.CreatorID)
			assert.Equal(t, s.Royalty, got.Royalty)
			assert.Equal(t, *s.Price, *got.Price)
			assert.Equal(t, uint32(500), got.FeeBps)

			has, err := store.Has("1")
			require.NoError(t, err)
			assert.True(t, has)

			has, err = store.Has("2")
			require.NoError(t, err)
			assert.False(t, has)

			_, err = store.Get("2")
			assert.ErrorIs(t, err, ErrSeriesNotFound)
		})
	}
}

func TestStoreCreate_Duplicate(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			require.NoError(t, store.Create(newTestSeries("1", 10, 0)))
			assert.ErrorIs(t, store.Create(newTestSeries("1", 5, 0)), ErrDuplicateSeries)
		})
	}
}

func TestStorePut(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)

			assert.ErrorIs(t, store.Put(newTestSeries("1", 10, 0)), ErrSeriesNotFound)

			s := newTestSeries("1", 10, 0)
			require.NoError(t, store.Create(s))

			_, err := s.Mint()
			require.NoError(t, err)
			require.NoError(t, store.Put(s))

			got, err := store.Get("1")
			require.NoError(t, err)
			assert.Equal(t, []token.ID{"1:1"}, got.Tokens)
		})
	}
}

func TestStoreCountList(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)

			for _, id := range []string{"a", "b", "c", "d"} {
				require.NoError(t, store.Create(newTestSeries(id, 10, 0)))
			}

			count, err := store.Count()
			require.NoError(t, err)
			assert.Equal(t, uint64(4), count)

			page, err := store.List(1, 2)
			require.NoError(t, err)
			require.Len(t, page, 2)
			assert.Equal(t, "b", page[0].ID)
			assert.Equal(t, "c", page[1].ID)

			// Limit past the end is truncated.
			page, err = store.List(3, 10)
			require.NoError(t, err)
			require.Len(t, page, 1)
			assert.Equal(t, "d", page[0].ID)
		})
	}
}

func TestStoreList_Bounds(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			require.NoError(t, store.Create(newTestSeries("a", 10, 0)))

			_, err := store.List(1, 10)
			assert.ErrorIs(t, err, token.ErrOutOfBounds)

			_, err = store.List(0, 0)
			assert.ErrorIs(t, err, token.ErrZeroLimit)
		})
	}
}

func TestMemStore_CopiesIsolated(t *testing.T) {
	store := NewMemStore()
	s := newTestSeries("1", 10, 0)
	require.NoError(t, store.Create(s))

	// Mutating the caller's record after Create must not leak into the store.
	_, err := s.Mint()
	require.NoError(t, err)

	got, err := store.Get("1")
	require.NoError(t, err)
	assert.Empty(t, got.Tokens)

	// Mutating a fetched record must not leak either.
	got.Royalty["x.near"] = 1
	again, err := store.Get("1")
	require.NoError(t, err)
	assert.NotContains(t, again.Royalty, token.AccountID("x.near"))
}
