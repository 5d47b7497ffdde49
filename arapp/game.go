package arapp

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/arpuzzle/engine"
	"github.com/spaghettifunk/arpuzzle/engine/config"
	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/renderer"
	"github.com/spaghettifunk/arpuzzle/engine/tracking"
	"github.com/spaghettifunk/arpuzzle/puzzle"
)

// ActionSource is implemented by trackers that also replay controller input,
// like tracking.Replay.
type ActionSource interface {
	Actions() []core.Action
}

type ARGame struct {
	*engine.Game
}

type gameState struct {
	cfg     *config.Config
	loader  puzzle.SceneLoader
	tracker tracking.Tracker
	session *puzzle.Session
	// set once the recording ran out
	finished bool
}

func NewARGame(cfg *config.Config, loader puzzle.SceneLoader, tracker tracking.Tracker) *ARGame {
	g := &ARGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				Name:        cfg.Engine.Name,
				LogLevel:    cfg.LogLevel(),
				TargetFPS:   cfg.Engine.TargetFPS,
				LimitFrames: true,
			},
			State: &gameState{
				cfg:     cfg,
				loader:  loader,
				tracker: tracker,
			},
		},
	}

	g.FnInitialize = g.Initialize
	g.FnUpdate = g.Update
	g.FnRender = g.Render
	g.FnShutdown = g.Shutdown

	return g
}

func (g *ARGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *ARGame) Initialize() error {
	core.LogDebug("ARGame Initialize fn....")

	if g.Events == nil || g.Input == nil {
		return fmt.Errorf("the engine is not yet initialized")
	}
	state := g.state()

	difficulty, err := puzzle.ParseDifficulty(state.cfg.Game.Difficulty)
	if err != nil {
		return err
	}
	session, err := puzzle.NewSession(puzzle.SessionConfig{
		Tolerance:  state.cfg.Game.Tolerance,
		Difficulty: difficulty,
		StartLevel: state.cfg.Game.StartLevel,
	}, state.loader, state.tracker, g.Events)
	if err != nil {
		return err
	}
	state.session = session

	g.Events.Register(core.EVENT_CODE_MARKER_FOUND, g.onMarker)
	g.Events.Register(core.EVENT_CODE_MARKER_LOST, g.onMarker)
	g.Events.Register(core.EVENT_CODE_LEVEL_MATCHED, g.onLevel)
	g.Events.Register(core.EVENT_CODE_LEVEL_WON, g.onLevel)
	g.Events.Register(core.EVENT_CODE_LEVEL_SWITCHED, g.onLevel)
	g.Events.Register(core.EVENT_CODE_DIFFICULTY_CHANGED, g.onLevel)

	return nil
}

// Update feeds replayed actions to the input and runs one session frame.
// Actions recorded with a tracker frame are applied on the tick after it.
func (g *ARGame) Update(deltaTime float64) error {
	state := g.state()
	if state.finished {
		return nil
	}

	if src, ok := state.tracker.(ActionSource); ok {
		for _, a := range src.Actions() {
			g.Input.Press(a)
		}
	}

	err := state.session.Update(g.Input)
	if errors.Is(err, core.ErrRecordingFinished) {
		core.LogInfo("Recording finished, quitting.")
		state.finished = true
		return g.Events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	}
	return err
}

func (g *ARGame) Render(packet *renderer.RenderPacket, deltaTime float64) error {
	state := g.state()
	state.session.Render(packet)

	var fps float64
	if g.Metrics != nil {
		fps = g.Metrics.FPS()
	}
	for _, line := range hudLines(state.session.Status(), fps) {
		packet.AddText(line)
	}
	return nil
}

func (g *ARGame) Shutdown() error {
	state := g.state()
	if state.session == nil {
		return nil
	}
	return state.session.Shutdown()
}

// Session returns the running session, nil before Initialize.
func (g *ARGame) Session() *puzzle.Session {
	return g.state().session
}

func (g *ARGame) onMarker(context core.EventContext) bool {
	me, ok := context.Data.(*core.MarkerEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%s`", context.Type)
		return false
	}
	core.LogDebug("%s: slot %d marker %d", context.Type, me.Slot, me.Marker)
	return false
}

func (g *ARGame) onLevel(context core.EventContext) bool {
	le, ok := context.Data.(*core.LevelEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%s`", context.Type)
		return false
	}
	switch context.Type {
	case core.EVENT_CODE_LEVEL_WON:
		core.LogInfo("Level %d won (%s).", le.LevelID, le.Difficulty)
	default:
		core.LogInfo("%s: level %d (%s)", context.Type, le.LevelID, le.Difficulty)
	}
	return false
}
