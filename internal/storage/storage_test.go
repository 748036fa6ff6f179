package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Load(KeyDrawing)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(KeyDrawing, []byte{1, 2, 3}))
	blob, ok, err := s.Load(KeyDrawing)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, blob)

	require.NoError(t, s.Save(KeyDrawing, []byte{9}))
	blob, _, err = s.Load(KeyDrawing)
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, blob)

	require.NoError(t, s.Save(KeyBackground, []byte("#ffffff")))
	blob, ok, err = s.Load(KeyBackground)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "#ffffff", string(blob))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	exerciseStore(t, s)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Save(KeyDrawing, nil), ErrClosed)
	_, _, err := s.Load(KeyDrawing)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMemoryStoreCopiesBlobs(t *testing.T) {
	s := NewMemory()
	blob := []byte{1, 2}
	require.NoError(t, s.Save("k", blob))
	blob[0] = 7

	got, _, err := s.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, got)
}

func TestSQLiteInMemory(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	exerciseStore(t, s)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doodle.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(KeyBackground, []byte("#123456")))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	blob, ok, err := s.Load(KeyBackground)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "#123456", string(blob))
}

func TestOpenFallsBackToMemory(t *testing.T) {
	s := Open("")
	_, isMem := s.(*Memory)
	assert.True(t, isMem)

	dir := t.TempDir()
	// A directory cannot be opened as a database file.
	s = Open(dir)
	t.Cleanup(func() { s.Close() })
	_, isMem = s.(*Memory)
	assert.True(t, isMem)
}
