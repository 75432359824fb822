//go:build !js

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = s.Get("highScore")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put("highScore", 50))
	require.NoError(t, s.Put("highScore", 310))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v, err := s.Get("highScore")
	require.NoError(t, err)
	assert.Equal(t, 310, v)
}

func TestOpen_SQLiteBackend(t *testing.T) {
	s, err := Open("sqlite", filepath.Join(t.TempDir(), "hs.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, s.Close())
}

func TestOpen_SQLiteFailureIsNilStore(t *testing.T) {
	s, err := Open("sqlite", filepath.Join(t.TempDir(), "missing", "dir", "hs.db"))
	require.Error(t, err)
	assert.Nil(t, s)
}
