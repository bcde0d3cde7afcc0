package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djeedai/libracity/engine/assets"
	"github.com/djeedai/libracity/engine/core"
	"github.com/djeedai/libracity/engine/systems"
)

// newTestGame wires a LibraCity game to a real asset manager over a temp
// asset root, without the engine run loop; the test drives the ticks.
func newTestGame(t *testing.T, files map[string]string) *LibraCity {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	js, err := systems.NewJobSystem(1, 16)
	require.NoError(t, err)
	t.Cleanup(func() { js.Shutdown() })

	am, err := assets.NewAssetManager(js)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	t.Cleanup(func() { am.Shutdown() })

	core.EventSystemInitialize()

	lc := New()
	lc.Scheduler = systems.NewScheduler(am)
	lc.Assets = am
	require.NoError(t, lc.Game.FnInitialize())
	t.Cleanup(func() { lc.Game.FnShutdown() })

	return lc
}

// tickUntil drives the game loop until the condition holds.
func tickUntil(t *testing.T, lc *LibraCity, deltaTime float64, what string, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for !condition() {
		require.True(t, time.Now().Before(deadline), "timed out waiting for %s (app state %s)", what, lc.AppState())
		require.NoError(t, lc.Scheduler.Update(deltaTime))
		require.NoError(t, lc.Game.FnUpdate(deltaTime))
		time.Sleep(time.Millisecond)
	}
}

func TestHeadlessRunToTheEnd(t *testing.T) {
	// No font files on purpose: the boot batch resolves them as failed loads
	// and the game still progresses past them.
	lc := newTestGame(t, map[string]string{
		"config.toml":      "[sound]\nenabled = true\nvolume = 0.8\n",
		"text/credits.txt": "credits roll",
	})
	require.Equal(t, AppStateBoot, lc.AppState())

	const dt = 0.25

	tickUntil(t, lc, dt, "main menu", func() bool { return lc.AppState() == AppStateMainMenu })
	assert.Nil(t, lc.ui.TitleFont)

	tickUntil(t, lc, dt, "in game", func() bool { return lc.AppState() == AppStateInGame })
	require.NotNil(t, lc.menu)
	assert.True(t, lc.menu.canStart)
	assert.InDelta(t, 0.8, float64(lc.menu.config.Sound.Volume), 1e-6)
	assert.Equal(t, "credits roll", lc.menu.credits)

	// The menu loader was reset for reuse after its batch was drained.
	assert.False(t, lc.menu.loader.IsDone())
	assert.Equal(t, 0, lc.menu.loader.PendingCount())

	tickUntil(t, lc, dt, "first level", func() bool { return lc.levels.Current().Index() == 0 })
	tickUntil(t, lc, dt, "the end", func() bool { return lc.AppState() == AppStateTheEnd })
	assert.Equal(t, 2, lc.levels.Current().Index())
	assert.True(t, lc.inventory.IsEmpty())
}

func TestMainMenuFallsBackToDefaultConfig(t *testing.T) {
	lc := newTestGame(t, map[string]string{
		"config.toml": "not valid toml {{",
	})

	const dt = 0.25
	tickUntil(t, lc, dt, "in game", func() bool { return lc.AppState() == AppStateInGame })

	// Malformed config and missing credits are optional-and-ignorable.
	assert.True(t, lc.menu.config.Sound.Enabled)
	assert.Equal(t, float32(1.0), lc.menu.config.Sound.Volume)
	assert.Empty(t, lc.menu.credits)
}
