/*
Headless AR puzzle: replays a tracker recording through the puzzle and logs
what would be drawn.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/arpuzzle/arapp"
	"github.com/spaghettifunk/arpuzzle/engine"
	"github.com/spaghettifunk/arpuzzle/engine/assets"
	"github.com/spaghettifunk/arpuzzle/engine/config"
	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/renderer"
	"github.com/spaghettifunk/arpuzzle/engine/tracking"
)

type bootstrap struct {
	ConfigPath string `env:"ARPUZZLE_CONFIG" envDefault:"config/arpuzzle.toml"`
}

func main() {
	var boot bootstrap
	if err := config.ParseEnv(&boot); err != nil {
		core.LogFatal(err.Error())
	}

	cfg, err := config.LoadFile(boot.ConfigPath)
	if err != nil {
		core.LogFatal(err.Error())
	}
	core.LogSetLevel(cfg.LogLevel())

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogFatal(err.Error())
	}
	if err := am.Initialize(cfg.Assets.Dir); err != nil {
		core.LogFatal(err.Error())
	}

	var tracker tracking.Tracker = tracking.NewStatic()
	if cfg.Tracking.Recording != "" {
		rec, err := tracking.LoadRecordingFile(am.Path(cfg.Tracking.Recording))
		if err != nil {
			core.LogFatal(err.Error())
		}
		core.LogInfo("Replaying '%s' (%d frames, loop=%t).", rec.Name, len(rec.Frames), cfg.Tracking.Loop)
		tracker = tracking.NewReplay(rec, cfg.Tracking.Loop)
	} else {
		core.LogWarn("No recording configured, no markers will be tracked.")
	}

	game := arapp.NewARGame(cfg, am, tracker)

	e, err := engine.New(game.Game, renderer.NewHeadlessBackend())
	if err != nil {
		core.LogFatal(err.Error())
	}
	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		e.Stop()
	}()

	// run engine
	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if err := am.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
