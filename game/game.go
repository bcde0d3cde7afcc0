package game

import (
	"github.com/djeedai/libracity/engine"
	"github.com/djeedai/libracity/engine/containers"
	"github.com/djeedai/libracity/engine/core"
)

// AppState is the top-level screen the game is showing.
type AppState int

const (
	AppStateBoot AppState = iota
	AppStateMainMenu
	AppStateInGame
	AppStateTheEnd
)

func (s AppState) String() string {
	switch s {
	case AppStateBoot:
		return "Boot"
	case AppStateMainMenu:
		return "MainMenu"
	case AppStateInGame:
		return "InGame"
	case AppStateTheEnd:
		return "TheEnd"
	}
	return "Unknown"
}

// How often the headless build consumes one inventory item during Play.
const placeInterval float64 = 1.0

// LibraCity is the balancing puzzle game: place every weighted object of the
// level on the plate without tipping it over.
type LibraCity struct {
	*engine.Game

	appState    AppState
	transitions *containers.RingQueue[AppState]

	boot      *bootSequence
	menu      *mainMenu
	levels    *LevelManager
	flow      *Flow
	inventory *Inventory
	ui        UIResources

	placeTimer float64
}

func New() *LibraCity {
	lc := &LibraCity{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				Name:          "Libra City",
				LogLevel:      core.DebugLevel,
				AssetBasePath: "assets",
				TickRate:      60.0,
			},
		},
		appState:    AppStateBoot,
		transitions: containers.NewRingQueue[AppState](8),
		flow:        NewFlow(),
		inventory:   NewInventory(),
	}
	lc.Game.State = lc
	lc.FnInitialize = lc.initialize
	lc.FnUpdate = lc.update
	lc.FnShutdown = lc.shutdown
	return lc
}

func (lc *LibraCity) initialize() error {
	lc.levels = NewLevelManager(defaultLevels(), defaultBuildables(), lc.inventory)
	lc.levels.OnTheEnd = func() {
		lc.queueState(AppStateTheEnd)
	}
	lc.levels.OnLevelLoaded = func(level *Level) {
		lc.flow.Reset()
	}
	core.EventRegister(EVENT_CODE_LOAD_LEVEL, lc.levels, lc.levels.OnEvent)

	lc.boot = newBootSequence(lc)
	if err := lc.boot.setup(); err != nil {
		return err
	}

	lc.Scheduler.RegisterSystem(lc.tick)
	return nil
}

// tick is the per-frame game system, run by the scheduler after the loader
// poll stage.
func (lc *LibraCity) tick(deltaTime float64) error {
	switch lc.appState {
	case AppStateBoot:
		return lc.boot.update(deltaTime)
	case AppStateMainMenu:
		return lc.menu.update(deltaTime)
	case AppStateInGame:
		lc.updateInGame(deltaTime)
	case AppStateTheEnd:
	}
	return nil
}

func (lc *LibraCity) updateInGame(deltaTime float64) {
	sequence, expired := lc.flow.Update(deltaTime)
	switch sequence {
	case SequenceIntro:
		if expired {
			core.LogInfo("Level #%d '%s': go!", lc.levels.Current().Index(), lc.levels.Current().Name())
			lc.flow.Advance()
		}
	case SequencePlay:
		lc.placeTimer += deltaTime
		if lc.placeTimer >= placeInterval {
			lc.placeTimer = 0
			lc.placeOne()
		}
		if lc.inventory.IsEmpty() {
			core.LogInfo("Victory! Level #%d '%s' cleared.", lc.levels.Current().Index(), lc.levels.Current().Name())
			lc.flow.Advance()
		}
	case SequenceVictory:
		if expired {
			RequestNextLevel(lc)
		}
	}
}

// placeOne consumes one item from the selected slot, the headless stand-in for
// the player placing a buildable on the plate.
func (lc *LibraCity) placeOne() {
	slot := lc.inventory.SelectedSlot()
	if slot == nil {
		return
	}
	if name, ok := slot.PopItem(); ok {
		core.LogDebug("placed '%s' (%d left in slot)", name, slot.Count())
	}
	if slot.IsEmpty() {
		lc.inventory.SelectNext()
	}
}

// update runs at the very end of the frame, after all scheduler stages, and
// applies the app state transitions queued during the tick.
func (lc *LibraCity) update(deltaTime float64) error {
	for {
		next, err := lc.transitions.Dequeue()
		if err != nil {
			return nil
		}
		if err := lc.enterState(next); err != nil {
			return err
		}
	}
}

func (lc *LibraCity) queueState(next AppState) {
	if err := lc.transitions.Enqueue(next); err != nil {
		core.LogError("dropping state transition to %s: %s", next, err.Error())
	}
}

func (lc *LibraCity) enterState(next AppState) error {
	core.LogInfo("app state: %s -> %s", lc.appState, next)
	lc.appState = next
	switch next {
	case AppStateMainMenu:
		lc.menu = newMainMenu(lc)
		return lc.menu.setup()
	case AppStateInGame:
		RequestLevelByIndex(lc, 0)
	case AppStateTheEnd:
		core.LogInfo("=== THE END ===")
		core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, lc, core.EventContext{})
	}
	return nil
}

func (lc *LibraCity) shutdown() error {
	core.EventUnregister(EVENT_CODE_LOAD_LEVEL, lc.levels, lc.levels.OnEvent)
	return nil
}

// AppState returns the current top-level screen.
func (lc *LibraCity) AppState() AppState {
	return lc.appState
}

func defaultBuildables() map[string]Buildable {
	return map[string]Buildable{
		"hut": {
			Name:   "Hut",
			Model:  "models/hut.glb",
			Frame:  "frames/hut.png",
			Weight: 1.0,
		},
		"house": {
			Name:   "House",
			Model:  "models/house.glb",
			Frame:  "frames/house.png",
			Weight: 2.0,
		},
		"tower": {
			Name:   "Tower",
			Model:  "models/tower.glb",
			Frame:  "frames/tower.png",
			Weight: 4.0,
		},
	}
}

func defaultLevels() []LevelDesc {
	return []LevelDesc{
		{
			Name:      "A Gentle Start",
			Inventory: map[string]uint32{"hut": 2},
		},
		{
			Name:      "Suburbia",
			Inventory: map[string]uint32{"hut": 3, "house": 2},
		},
		{
			Name:      "Downtown",
			Inventory: map[string]uint32{"house": 3, "tower": 2},
		},
	}
}
