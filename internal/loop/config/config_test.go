package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/spacebeat/internal/object"
)

func TestModeByName(t *testing.T) {
	m, err := ModeByName("FULL")
	require.NoError(t, err)
	assert.Equal(t, object.TierFull, m.Tier)

	m, err = ModeByName("")
	require.NoError(t, err)
	assert.Equal(t, Prototype.Name, m.Name)

	_, err = ModeByName("arcade")
	assert.Error(t, err)
}

func TestMode_Toggle(t *testing.T) {
	assert.Equal(t, Full.Name, Prototype.Toggle().Name)
	assert.Equal(t, Prototype.Name, Full.Toggle().Name)
}

func TestModes_ShareCounts(t *testing.T) {
	for _, m := range []Mode{Prototype, Full} {
		assert.Equal(t, 70, m.Rocks)
		assert.Equal(t, 7, m.Drones)
		assert.Equal(t, 3, m.EnemyShips)
		assert.Equal(t, 2, m.UFOs)
	}
	assert.Less(t, Prototype.Rock.MinRadius, Full.Rock.MinRadius)
}
