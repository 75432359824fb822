package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetPut(t *testing.T) {
	s := NewMemory()

	_, err := s.Get("highScore")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put("highScore", 120))
	v, err := s.Get("highScore")
	require.NoError(t, err)
	assert.Equal(t, 120, v)
}

func TestOpen_UnknownBackend(t *testing.T) {
	s, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open("postgres", "")
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestLoad_MissingIsZero(t *testing.T) {
	s := NewMemory()
	v, err := Load(s, "highScore")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}
