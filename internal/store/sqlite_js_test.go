//go:build js

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteFallsBackToMemory(t *testing.T) {
	_, err := OpenSQLite("hs.db")
	assert.ErrorIs(t, err, ErrUnsupported)

	s, err := Open("sqlite", "hs.db")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)
}
