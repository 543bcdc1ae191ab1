package holiday

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract exercises the behavior every Store must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()

	_, err := s.Get("public/FR/2024")
	assert.ErrorIs(t, err, ErrNotCached)

	require.NoError(t, s.Put("public/FR/2024", []byte(`[{"date":"2024-05-01"}]`)))

	data, err := s.Get("public/FR/2024")
	require.NoError(t, err)
	assert.Equal(t, `[{"date":"2024-05-01"}]`, string(data))

	// Overwrite replaces the entry.
	require.NoError(t, s.Put("public/FR/2024", []byte(`[]`)))
	data, err = s.Get("public/FR/2024")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	// A closed store rejects further use.
	require.NoError(t, s.Close())
	_, err = s.Get("public/FR/2024")
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, s.Put("x", nil), ErrStoreClosed)
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStore_CopiesData(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	buf := []byte("original")
	require.NoError(t, s.Put("k", buf))
	buf[0] = 'X'

	data, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	data[0] = 'Y'
	again, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(again))

	assert.Equal(t, 1, s.Len())
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	storeContract(t, s)
}

func TestSQLiteStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.db")

	s1, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Put("school/FR/FR-C/2024", []byte(`null`)))
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()

	data, err := s2.Get("school/FR/FR-C/2024")
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}
