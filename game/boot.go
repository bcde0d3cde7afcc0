package game

import (
	"github.com/djeedai/libracity/engine/core"
	"github.com/djeedai/libracity/engine/loader"
	"github.com/djeedai/libracity/engine/resources"
)

const (
	titleFontPath = "fonts/pacifico/Pacifico-Regular.ttf"
	textFontPath  = "fonts/mochiy_pop_one/MochiyPopOne-Regular.ttf"
)

// UIResources holds the fonts every screen needs, populated once the boot
// batch completes.
type UIResources struct {
	TitleFont *resources.Resource
	TextFont  *resources.Resource
}

// bootSequence loads the critical assets before any loading screen can be
// displayed: one Loader batch with the two UI fonts, polled by the scheduler
// until done.
type bootSequence struct {
	game   *LibraCity
	loader *loader.Loader
}

func newBootSequence(game *LibraCity) *bootSequence {
	return &bootSequence{
		game:   game,
		loader: loader.New(),
	}
}

func (b *bootSequence) setup() error {
	if err := b.loader.Enqueue(titleFontPath); err != nil {
		return err
	}
	if err := b.loader.Enqueue(textFontPath); err != nil {
		return err
	}
	if err := b.loader.Submit(); err != nil {
		return err
	}
	b.game.Scheduler.RegisterLoader(b.loader)
	return nil
}

func (b *bootSequence) update(deltaTime float64) error {
	if !b.loader.IsDone() {
		return nil
	}

	b.game.ui.TitleFont = b.takeFont(titleFontPath)
	b.game.ui.TextFont = b.takeFont(textFontPath)

	// The boot loader served its one batch.
	b.game.Scheduler.UnregisterLoader(b.loader)

	b.game.queueState(AppStateMainMenu)
	return nil
}

// takeFont drains one completed font request. A failed load is still a
// resolved one; it only costs the UI its font, never blocks the boot.
func (b *bootSequence) takeFont(path string) *resources.Resource {
	handle, ok := b.loader.Take(path)
	if !ok {
		core.LogError("boot batch done but '%s' was never resolved", path)
		return nil
	}
	resource, ok := b.game.Assets.Resource(handle)
	if !ok {
		core.LogError("failed to load required font '%s'", path)
		return nil
	}
	core.LogInfo("loaded font '%s'", path)
	return resource
}
