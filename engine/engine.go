package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/djeedai/libracity/engine/assets"
	"github.com/djeedai/libracity/engine/core"
	"github.com/djeedai/libracity/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

const defaultTickRate float64 = 60.0

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	jobSystem    *systems.JobSystem
	assetManager *assets.AssetManager
	scheduler    *systems.Scheduler
	clock        *core.Clock
	lastTime     float64
}

func New(g *Game) (*Engine, error) {
	js, err := systems.NewJobSystem(2, 128)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	am, err := assets.NewAssetManager(js)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sched := systems.NewScheduler(am)

	g.Scheduler = sched
	g.Assets = am

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		jobSystem:    js,
		assetManager: am,
		scheduler:    sched,
		isRunning:    true,
		lastTime:     0,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageBooting

	core.SetLogLevel(e.gameInstance.ApplicationConfig.LogLevel)

	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	assetBase := e.gameInstance.ApplicationConfig.AssetBasePath
	if assetBase == "" {
		assetBase = "assets"
	}
	if err := e.assetManager.Initialize(filepath.Join(wd, assetBase)); err != nil {
		return err
	}

	e.currentStage = EngineStageInitializing
	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageInitialized

	return nil
}

// Run drives the cooperative tick loop: one scheduler update (loaders polled
// first, then systems) followed by the game update, at the configured tick
// rate, until a quit event or Shutdown stops it.
func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning

	tickRate := e.gameInstance.ApplicationConfig.TickRate
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	targetTick := time.Duration(float64(time.Second) / tickRate)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.ElapsedSeconds()

	for e.isRunning {
		e.clock.Update()
		currentTime := e.clock.ElapsedSeconds()
		delta := currentTime - e.lastTime
		e.lastTime = currentTime

		if err := e.scheduler.Update(delta); err != nil {
			core.LogError(err.Error())
			e.isRunning = false
			break
		}
		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError(err.Error())
				e.isRunning = false
				break
			}
		}

		e.clock.Update()
		frameElapsed := time.Duration((e.clock.ElapsedSeconds() - currentTime) * float64(time.Second))
		if remaining := targetTick - frameElapsed; remaining > 0 {
			time.Sleep(remaining)
		}
	}

	return e.Shutdown()
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.assetManager.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if err := e.jobSystem.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	return core.EventSystemShutdown()
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down")
		e.isRunning = false
		return true
	}
	return false
}
