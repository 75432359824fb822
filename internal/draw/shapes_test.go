package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipLine_InsideUnchanged(t *testing.T) {
	a, b, ok := ClipLine(Point{1, 1}, Point{5, 5}, 0, 0, 10, 10)
	require.True(t, ok)
	assert.Equal(t, Point{1, 1}, a)
	assert.Equal(t, Point{5, 5}, b)
}

func TestClipLine_CrossingIsCut(t *testing.T) {
	a, b, ok := ClipLine(Point{-10, 5}, Point{20, 5}, 0, 0, 10, 10)
	require.True(t, ok)
	assert.InDelta(t, 0, a.X, 1e-9)
	assert.InDelta(t, 10, b.X, 1e-9)
	assert.InDelta(t, 5, a.Y, 1e-9)
}

func TestClipLine_OutsideRejected(t *testing.T) {
	_, _, ok := ClipLine(Point{-5, -5}, Point{-1, 20}, 0, 0, 10, 10)
	assert.False(t, ok)

	_, _, ok = ClipLine(Point{20, 1}, Point{30, 1}, 0, 0, 10, 10)
	assert.False(t, ok)
}
