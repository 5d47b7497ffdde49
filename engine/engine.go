package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/math"
	"github.com/spaghettifunk/arpuzzle/engine/renderer"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine is shut down
	EngineStageStopped
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    atomic.Bool
	renderer     *renderer.Renderer
	events       *core.EventSystem
	input        *core.Input
	metrics      *core.Metrics
	clock        *core.Clock
	lastTime     float64
	frames       uint64

	sleep func(time.Duration)
}

func New(g *Game, backend renderer.RendererBackend) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game and application config are required")
	}
	if g.FnInitialize == nil || g.FnUpdate == nil || g.FnRender == nil {
		return nil, fmt.Errorf("game %s is missing callbacks", g.ApplicationConfig.Name)
	}

	e := &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		renderer:     renderer.New(backend),
		events:       core.NewEventSystem(),
		input:        core.NewInput(),
		metrics:      core.NewMetrics(),
		clock:        core.NewClock(),
		sleep:        time.Sleep,
	}
	g.Events = e.events
	g.Input = e.input
	g.Metrics = e.metrics
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	core.LogSetLevel(e.gameInstance.ApplicationConfig.LogLevel)

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)

	if err := e.renderer.Initialize(e.gameInstance.ApplicationConfig.Name); err != nil {
		return err
	}

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the frame loop until Stop is called or the game fires
// EVENT_CODE_APPLICATION_QUIT.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine must be initialized before running")
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	fps := math.Clamp(e.gameInstance.ApplicationConfig.TargetFPS, 1, 240)
	targetFrameSeconds := 1.0 / float64(fps)

	for e.isRunning.Load() {
		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStart := time.Now()

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down.")
			e.isRunning.Store(false)
			return fmt.Errorf("update: %w", err)
		}

		// deliver everything fired during the update
		e.events.Process()

		packet := renderer.NewRenderPacket(delta)
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			core.LogError("Game render failed, shutting down.")
			e.isRunning.Store(false)
			return fmt.Errorf("render: %w", err)
		}
		if err := e.renderer.DrawFrame(packet); err != nil {
			e.isRunning.Store(false)
			return err
		}

		// Figure out how long the frame took and, if below the target, give
		// the rest back to the OS.
		frameElapsed := time.Since(frameStart).Seconds()
		remaining := targetFrameSeconds - frameElapsed
		if remaining > 0 && e.gameInstance.ApplicationConfig.LimitFrames {
			e.sleep(time.Duration(remaining * float64(time.Second)))
		}
		e.metrics.Update(delta)
		e.frames++

		// Input is the last thing to be updated before this frame ends.
		e.input.Update()

		e.lastTime = currentTime
	}

	return nil
}

// Stop asks the loop to exit after the current frame. Safe to call from any
// goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageStopped {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			return err
		}
	}
	e.events.Unregister(core.EVENT_CODE_APPLICATION_QUIT)
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageStopped
	return nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// Frames returns the number of frames run so far.
func (e *Engine) Frames() uint64 {
	return e.frames
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}
