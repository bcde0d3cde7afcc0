package assets_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djeedai/libracity/engine/assets"
	"github.com/djeedai/libracity/engine/resources"
	"github.com/djeedai/libracity/engine/systems"
)

func newTestManager(t *testing.T, files map[string]string) *assets.AssetManager {
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

	return am
}

func waitLoaded(t *testing.T, am *assets.AssetManager, handle resources.Handle) resources.LoadState {
	t.Helper()
	var state resources.LoadState
	require.Eventually(t, func() bool {
		state = am.QueryState(handle)
		return state.Terminal()
	}, 5*time.Second, 5*time.Millisecond)
	return state
}

func TestAssetIndex(t *testing.T) {
	am := newTestManager(t, map[string]string{
		"config.toml":      "[sound]\nenabled = true\n",
		"text/credits.txt": "credits",
		"notes.bin":        "not an asset",
	})

	paths := am.Assets()
	assert.Contains(t, paths, "config.toml")
	assert.Contains(t, paths, filepath.Join("text", "credits.txt"))
	// Unknown extensions are not indexed.
	assert.NotContains(t, paths, "notes.bin")
}

func TestBeginLoadText(t *testing.T) {
	am := newTestManager(t, map[string]string{
		"text/credits.txt": "Libra City credits",
	})

	path := filepath.Join("text", "credits.txt")
	handle, state := am.BeginLoad(path)
	assert.False(t, handle.IsZero())
	assert.Equal(t, resources.LoadStateLoading, state)

	require.Equal(t, resources.LoadStateLoaded, waitLoaded(t, am, handle))

	resource, ok := am.Resource(handle)
	require.True(t, ok)
	text, ok := resource.Data.(*resources.TextAsset)
	require.True(t, ok)
	assert.Equal(t, "Libra City credits", text.Value)
	assert.Equal(t, uint64(len("Libra City credits")), resource.DataSize)
}

func TestBeginLoadIsIdempotentPerPath(t *testing.T) {
	am := newTestManager(t, map[string]string{
		"config.toml": "[sound]\nvolume = 0.5\n",
	})

	first, _ := am.BeginLoad("config.toml")
	second, state := am.BeginLoad("config.toml")
	assert.Equal(t, first, second)
	assert.NotEqual(t, resources.LoadStateNotLoaded, state)

	require.Equal(t, resources.LoadStateLoaded, waitLoaded(t, am, first))

	// Once resident, the same handle and terminal state come back.
	third, state := am.BeginLoad("config.toml")
	assert.Equal(t, first, third)
	assert.Equal(t, resources.LoadStateLoaded, state)
}

func TestBeginLoadMissingFileFails(t *testing.T) {
	am := newTestManager(t, nil)

	handle, _ := am.BeginLoad("fonts/missing.ttf")
	assert.Equal(t, resources.LoadStateFailed, waitLoaded(t, am, handle))

	_, ok := am.Resource(handle)
	assert.False(t, ok)
}

func TestBeginLoadUnknownTypeFails(t *testing.T) {
	am := newTestManager(t, map[string]string{
		"notes.bin": "no loader handles this",
	})

	handle, _ := am.BeginLoad("notes.bin")
	assert.Equal(t, resources.LoadStateFailed, waitLoaded(t, am, handle))
}

func TestQueryStateUnknownHandle(t *testing.T) {
	am := newTestManager(t, nil)
	assert.Equal(t, resources.LoadStateNotLoaded, am.QueryState(resources.Handle{}))
	assert.Equal(t, resources.LoadStateNotLoaded, am.QueryState(resources.NewHandle()))
}
