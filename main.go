/*
Libra City: a small 3D puzzle game about balancing weighted buildings
on a city plate.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/djeedai/libracity/engine"
	"github.com/djeedai/libracity/engine/core"
	"github.com/djeedai/libracity/game"
)

func main() {
	lc := game.New()

	eng, err := engine.New(lc.Game)
	if err != nil {
		panic(err)
	}

	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
	}()

	if err := eng.Run(); err != nil {
		panic(err)
	}
}
