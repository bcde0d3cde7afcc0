package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djeedai/libracity/engine/core"
)

func newTestLevelManager(t *testing.T) (*LevelManager, *Inventory) {
	t.Helper()
	core.EventSystemInitialize()

	inv := NewInventory()
	lm := NewLevelManager(defaultLevels(), defaultBuildables(), inv)
	require.True(t, core.EventRegister(EVENT_CODE_LOAD_LEVEL, lm, lm.OnEvent))
	t.Cleanup(func() {
		core.EventUnregister(EVENT_CODE_LOAD_LEVEL, lm, lm.OnEvent)
	})
	return lm, inv
}

func TestLoadLevelByIndex(t *testing.T) {
	lm, inv := newTestLevelManager(t)

	RequestLevelByIndex(t, 0)
	assert.Equal(t, 0, lm.Current().Index())
	assert.Equal(t, "A Gentle Start", lm.Current().Name())
	assert.Len(t, inv.Slots(), 1)
	assert.Equal(t, uint32(2), inv.Slots()[0].Count())

	// Out of range requests leave the current level alone.
	RequestLevelByIndex(t, 99)
	assert.Equal(t, 0, lm.Current().Index())
}

func TestLoadLevelByName(t *testing.T) {
	lm, inv := newTestLevelManager(t)

	RequestLevelByName(t, "Downtown")
	assert.Equal(t, 2, lm.Current().Index())
	assert.Len(t, inv.Slots(), 2)

	RequestLevelByName(t, "No Such Level")
	assert.Equal(t, 2, lm.Current().Index())
}

func TestLoadLevelNextWalksTheList(t *testing.T) {
	lm, _ := newTestLevelManager(t)

	theEnd := false
	lm.OnTheEnd = func() { theEnd = true }

	var loaded []string
	lm.OnLevelLoaded = func(level *Level) { loaded = append(loaded, level.Name()) }

	RequestNextLevel(t)
	RequestNextLevel(t)
	RequestNextLevel(t)
	assert.Equal(t, []string{"A Gentle Start", "Suburbia", "Downtown"}, loaded)
	assert.False(t, theEnd)

	// Walking past the last level ends the game instead of loading.
	RequestNextLevel(t)
	assert.True(t, theEnd)
	assert.Equal(t, 2, lm.Current().Index())
}

func TestLevelInventoryIgnoresUnknownBuildable(t *testing.T) {
	core.EventSystemInitialize()
	inv := NewInventory()
	levels := []LevelDesc{{
		Name:      "Broken",
		Inventory: map[string]uint32{"hut": 1, "skyscraper": 7},
	}}
	lm := NewLevelManager(levels, defaultBuildables(), inv)
	require.True(t, core.EventRegister(EVENT_CODE_LOAD_LEVEL, lm, lm.OnEvent))
	defer core.EventUnregister(EVENT_CODE_LOAD_LEVEL, lm, lm.OnEvent)

	RequestLevelByIndex(t, 0)
	assert.Len(t, inv.Slots(), 1)
	assert.Equal(t, "hut", inv.Slots()[0].Buildable())
}
