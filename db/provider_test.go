package db_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"raicore/db"
)

// every provider must satisfy the same contract; run the suite over all three
func withProviders(t *testing.T, run func(t *testing.T, p db.IterableProvider)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		p := db.NewMemoryProvider()
		defer p.Close()
		run(t, p)
	})
	t.Run("leveldb", func(t *testing.T) {
		p, err := db.NewLevelDBProvider(filepath.Join(t.TempDir(), "ldb"))
		require.NoError(t, err)
		defer p.Close()
		run(t, p)
	})
	t.Run("bolt", func(t *testing.T) {
		p, err := db.NewBoltProvider(filepath.Join(t.TempDir(), "bolt.db"))
		require.NoError(t, err)
		defer p.Close()
		run(t, p)
	})
}

func TestProviderPutGetDelete(t *testing.T) {
	withProviders(t, func(t *testing.T, p db.IterableProvider) {
		key := []byte("b:alpha")
		value := []byte("payload")

		// a miss is (nil, nil), not an error
		got, err := p.Get(key)
		require.NoError(t, err)
		require.Nil(t, got)

		has, err := p.Has(key)
		require.NoError(t, err)
		require.False(t, has)

		require.NoError(t, p.Put(key, value))

		got, err = p.Get(key)
		require.NoError(t, err)
		require.Equal(t, value, got)

		has, err = p.Has(key)
		require.NoError(t, err)
		require.True(t, has)

		require.NoError(t, p.Delete(key))
		got, err = p.Get(key)
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

func TestProviderOverwrite(t *testing.T) {
	withProviders(t, func(t *testing.T, p db.IterableProvider) {
		key := []byte("h:account")
		require.NoError(t, p.Put(key, []byte("one")))
		require.NoError(t, p.Put(key, []byte("two")))

		got, err := p.Get(key)
		require.NoError(t, err)
		require.Equal(t, []byte("two"), got)
	})
}

func TestProviderBatchAtomicWrite(t *testing.T) {
	withProviders(t, func(t *testing.T, p db.IterableProvider) {
		require.NoError(t, p.Put([]byte("u:stale"), []byte{1}))

		batch := p.Batch()
		batch.Put([]byte("b:one"), []byte("1"))
		batch.Put([]byte("b:two"), []byte("2"))
		batch.Delete([]byte("u:stale"))

		// nothing lands before Write
		got, err := p.Get([]byte("b:one"))
		require.NoError(t, err)
		require.Nil(t, got)

		require.NoError(t, batch.Write())

		got, err = p.Get([]byte("b:two"))
		require.NoError(t, err)
		require.Equal(t, []byte("2"), got)

		has, err := p.Has([]byte("u:stale"))
		require.NoError(t, err)
		require.False(t, has)
	})
}

func TestProviderBatchReset(t *testing.T) {
	withProviders(t, func(t *testing.T, p db.IterableProvider) {
		batch := p.Batch()
		batch.Put([]byte("b:discarded"), []byte{1})
		batch.Reset()
		batch.Put([]byte("b:kept"), []byte{2})
		require.NoError(t, batch.Write())

		got, err := p.Get([]byte("b:discarded"))
		require.NoError(t, err)
		require.Nil(t, got, "reset must drop pending operations")

		has, err := p.Has([]byte("b:kept"))
		require.NoError(t, err)
		require.True(t, has)
	})
}

func TestProviderIteratePrefix(t *testing.T) {
	withProviders(t, func(t *testing.T, p db.IterableProvider) {
		require.NoError(t, p.Put([]byte("b:x"), []byte("1")))
		require.NoError(t, p.Put([]byte("b:y"), []byte("2")))
		require.NoError(t, p.Put([]byte("h:x"), []byte("3")))

		seen := map[string]string{}
		err := p.IteratePrefix([]byte("b:"), func(key, value []byte) bool {
			seen[string(key)] = string(value)
			return true
		})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"b:x": "1", "b:y": "2"}, seen)

		// returning false stops the walk
		count := 0
		err = p.IteratePrefix([]byte("b:"), func(key, value []byte) bool {
			count++
			return false
		})
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})
}
