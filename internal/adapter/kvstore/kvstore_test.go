package kvstore_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/adapter/kvstore"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s port.KVStore) {
	t.Run("Missing", func(t *testing.T) {
		_, err := s.Get(t.Context(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("SetGetOverwrite", func(t *testing.T) {
		require.NoError(t, s.Set(t.Context(), "k", []byte(`[1]`)))
		v, err := s.Get(t.Context(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[1]`), v)

		require.NoError(t, s.Set(t.Context(), "k", []byte(`[2]`)))
		v, err = s.Get(t.Context(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[2]`), v)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Set(t.Context(), "d", []byte(`x`)))
		require.NoError(t, s.Delete(t.Context(), "d"))
		_, err := s.Get(t.Context(), "d")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		assert.NoError(t, s.Delete(t.Context(), "never-set"))
	})
}

func TestMemory(t *testing.T) {
	testStore(t, kvstore.NewMemory())

	t.Run("ValuesAreCopied", func(t *testing.T) {
		s := kvstore.NewMemory()
		v := []byte("abc")
		require.NoError(t, s.Set(t.Context(), "k", v))
		v[0] = 'x'

		got, err := s.Get(t.Context(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)
	})
}

func TestSQLite(t *testing.T) {
	s, err := kvstore.OpenSQLite(t.Context(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(s.Close)

	testStore(t, s)
}
