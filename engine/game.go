package engine

import (
	"github.com/djeedai/libracity/engine/assets"
	"github.com/djeedai/libracity/engine/core"
	"github.com/djeedai/libracity/engine/systems"
)

type ApplicationConfig struct {
	// The application name used in logging.
	Name     string
	LogLevel core.LogLevel
	// The relative base path for assets.
	AssetBasePath string
	// Logical ticks per second for the scheduler.
	TickRate float64
}

type Game struct {
	ApplicationConfig *ApplicationConfig
	// Assigned by the engine before FnInitialize runs.
	Scheduler *systems.Scheduler
	Assets    *assets.AssetManager
	State     interface{}

	FnInitialize Initialize
	FnUpdate     Update
	FnShutdown   Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type Shutdown func() error
