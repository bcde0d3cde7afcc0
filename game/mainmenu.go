package game

import (
	"github.com/djeedai/libracity/engine/core"
	"github.com/djeedai/libracity/engine/loader"
	"github.com/djeedai/libracity/engine/resources"
)

const (
	configPath  = "config.toml"
	creditsPath = "text/credits.txt"
)

// mainMenu loads the game data behind the menu screen: the config document and
// the credits text, in one Loader batch. The config is optional-and-ignorable;
// a failed load falls back to defaults.
type mainMenu struct {
	game     *LibraCity
	loader   *loader.Loader
	config   *Config
	credits  string
	canStart bool
}

func newMainMenu(game *LibraCity) *mainMenu {
	return &mainMenu{
		game:   game,
		loader: loader.New(),
		config: NewConfig(),
	}
}

func (m *mainMenu) setup() error {
	if err := m.loader.Enqueue(configPath); err != nil {
		return err
	}
	if err := m.loader.Enqueue(creditsPath); err != nil {
		return err
	}
	if err := m.loader.Submit(); err != nil {
		return err
	}
	m.game.Scheduler.RegisterLoader(m.loader)
	return nil
}

func (m *mainMenu) update(deltaTime float64) error {
	if m.canStart {
		// Headless build: no key to press, start right away.
		m.game.queueState(AppStateInGame)
		return nil
	}
	if !m.loader.IsDone() {
		return nil
	}

	if text, ok := m.takeText(configPath); ok {
		config, err := ConfigFromTOML(text)
		if err != nil {
			core.LogWarn("malformed config '%s', using defaults: %s", configPath, err.Error())
		} else {
			m.config = config
		}
	} else {
		core.LogWarn("no config '%s', using defaults", configPath)
	}
	core.LogInfo("sound: enabled=%t volume=%0.2f", m.config.Sound.Enabled, m.config.Sound.Volume)

	if text, ok := m.takeText(creditsPath); ok {
		m.credits = text
	}

	// Reuse the same loader for the next batch this menu may start.
	m.loader.Reset()
	m.game.Scheduler.UnregisterLoader(m.loader)

	m.canStart = true
	core.LogInfo("Press [ENTER] to start")
	return nil
}

// takeText drains one completed text request from the batch.
func (m *mainMenu) takeText(path string) (string, bool) {
	handle, ok := m.loader.Take(path)
	if !ok {
		return "", false
	}
	resource, ok := m.game.Assets.Resource(handle)
	if !ok {
		return "", false
	}
	text, ok := resource.Data.(*resources.TextAsset)
	if !ok {
		return "", false
	}
	return text.Value, true
}
