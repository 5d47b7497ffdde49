package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingGame struct {
	*Game
	quitAfter   int
	updates     int
	renders     int
	shutdowns   int
	updateErr   error
	initialized bool
}

func newCountingGame(quitAfter int) *countingGame {
	g := &countingGame{
		Game: &Game{
			ApplicationConfig: &ApplicationConfig{
				Name:      "engine test",
				LogLevel:  core.WarnLevel,
				TargetFPS: 60,
			},
		},
		quitAfter: quitAfter,
	}
	g.FnInitialize = func() error {
		g.initialized = g.Events != nil && g.Input != nil && g.Metrics != nil
		return nil
	}
	g.FnUpdate = func(deltaTime float64) error {
		g.updates++
		if g.updateErr != nil {
			return g.updateErr
		}
		if g.updates == g.quitAfter {
			return g.Events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		}
		return nil
	}
	g.FnRender = func(packet *renderer.RenderPacket, deltaTime float64) error {
		g.renders++
		packet.AddText("frame")
		return nil
	}
	g.FnShutdown = func() error {
		g.shutdowns++
		return nil
	}
	return g
}

func TestNewRequiresCallbacks(t *testing.T) {
	_, err := New(&Game{ApplicationConfig: &ApplicationConfig{}}, renderer.NewHeadlessBackend())
	assert.Error(t, err)
	_, err = New(nil, renderer.NewHeadlessBackend())
	assert.Error(t, err)
}

func TestRunUntilQuit(t *testing.T) {
	g := newCountingGame(5)
	backend := renderer.NewHeadlessBackend()
	e, err := New(g.Game, backend)
	require.NoError(t, err)

	assert.Error(t, e.Run(), "run before initialize")

	require.NoError(t, e.Initialize())
	assert.True(t, g.initialized)
	assert.Equal(t, EngineStageInitialized, e.Stage())

	require.NoError(t, e.Run())
	assert.Equal(t, 5, g.updates)
	assert.Equal(t, 5, g.renders)
	assert.Equal(t, uint64(5), e.Frames())
	assert.Equal(t, uint64(5), backend.Frames())
	assert.Equal(t, "frame", backend.LastText())

	require.NoError(t, e.Shutdown())
	require.NoError(t, e.Shutdown())
	assert.Equal(t, 1, g.shutdowns)
	assert.Equal(t, EngineStageStopped, e.Stage())
}

func TestRunStopsOnUpdateError(t *testing.T) {
	g := newCountingGame(0)
	g.updateErr = core.ErrRecordingFinished
	e, err := New(g.Game, renderer.NewHeadlessBackend())
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	err = e.Run()
	assert.True(t, errors.Is(err, core.ErrRecordingFinished))
	assert.Equal(t, 1, g.updates)
	assert.Equal(t, 0, g.renders)
}

func TestStopFromAnotherGoroutine(t *testing.T) {
	g := newCountingGame(-1)
	started := make(chan struct{})
	update := g.FnUpdate
	g.FnUpdate = func(deltaTime float64) error {
		if g.updates == 0 {
			close(started)
		}
		return update(deltaTime)
	}
	e, err := New(g.Game, renderer.NewHeadlessBackend())
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	done := make(chan error, 1)
	go func() { done <- e.Run() }()

	<-started
	e.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}
}

func TestFrameLimiterSleeps(t *testing.T) {
	g := newCountingGame(3)
	g.ApplicationConfig.LimitFrames = true
	g.ApplicationConfig.TargetFPS = 1
	e, err := New(g.Game, renderer.NewHeadlessBackend())
	require.NoError(t, err)

	var slept []time.Duration
	e.sleep = func(d time.Duration) { slept = append(slept, d) }

	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run())
	require.Len(t, slept, 3)
	for _, d := range slept {
		assert.Greater(t, d, 900*time.Millisecond)
	}
}
