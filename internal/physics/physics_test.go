package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_ZeroStaysZero(t *testing.T) {
	n := Normalize(mgl64.Vec3{})
	assert.Equal(t, mgl64.Vec3{}, n)
	assert.False(t, math.IsNaN(n.X()))
}

func TestNormalize_UnitLength(t *testing.T) {
	n := Normalize(mgl64.Vec3{3, 4, 0})
	assert.InDelta(t, 1.0, n.Len(), 1e-12)
	assert.InDelta(t, 0.6, n.X(), 1e-12)
	assert.InDelta(t, 0.8, n.Y(), 1e-12)
}

func TestWithin_IsStrict(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	assert.True(t, Within(a, mgl64.Vec3{0.5, 0, 0}, 1))
	assert.False(t, Within(a, mgl64.Vec3{1, 0, 0}, 1))
}

func TestPlanarLength_IgnoresZ(t *testing.T) {
	assert.InDelta(t, 5.0, PlanarLength(mgl64.Vec3{3, 4, -100}), 1e-12)
}

func TestSeparation_PointsAwayWithLinearFalloff(t *testing.T) {
	positions := []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}}

	push := Separation(0, positions, 5, 0.1)

	// Away from the neighbour on +x means a push along -x.
	assert.InDelta(t, -(5-2)*0.1, push.X(), 1e-12)
	assert.InDelta(t, 0, push.Y(), 1e-12)
	assert.InDelta(t, 0, push.Z(), 1e-12)

	closer := Separation(0, []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}, 5, 0.1)
	assert.Greater(t, closer.Len(), push.Len())
}

func TestSeparation_ZeroAtOrBeyondThreshold(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{}, Separation(0, []mgl64.Vec3{{0, 0, 0}, {5, 0, 0}}, 5, 0.1))
	assert.Equal(t, mgl64.Vec3{}, Separation(0, []mgl64.Vec3{{0, 0, 0}, {0, 9, 0}}, 5, 0.1))
}

func TestSeparation_CoincidentNeighboursDoNotProduceNaN(t *testing.T) {
	push := Separation(0, []mgl64.Vec3{{1, 1, 1}, {1, 1, 1}}, 5, 0.1)
	assert.Equal(t, mgl64.Vec3{}, push)
}
