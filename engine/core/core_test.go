package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsAreDeferredUntilProcess(t *testing.T) {
	es := NewEventSystem()

	var got []EventContext
	require.True(t, es.Register(EVENT_CODE_LEVEL_WON, func(ctx EventContext) bool {
		got = append(got, ctx)
		return false
	}))

	require.NoError(t, es.Fire(EventContext{Type: EVENT_CODE_LEVEL_WON, Data: &LevelEvent{LevelID: 2}}))
	assert.Empty(t, got)

	assert.Equal(t, 1, es.Process())
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Data.(*LevelEvent).LevelID)

	assert.Equal(t, 0, es.Process())
}

func TestEventHandledStopsPropagation(t *testing.T) {
	es := NewEventSystem()
	calls := 0
	es.Register(EVENT_CODE_MARKER_FOUND, func(EventContext) bool { calls++; return true })
	es.Register(EVENT_CODE_MARKER_FOUND, func(EventContext) bool { calls++; return false })

	require.NoError(t, es.Fire(EventContext{Type: EVENT_CODE_MARKER_FOUND}))
	es.Process()
	assert.Equal(t, 1, calls)

	assert.True(t, es.Unregister(EVENT_CODE_MARKER_FOUND))
	assert.False(t, es.Unregister(EVENT_CODE_MARKER_FOUND))
}

func TestEventFireOverflow(t *testing.T) {
	es := NewEventSystem()
	for i := 0; i < MAX_QUEUED_EVENTS; i++ {
		require.NoError(t, es.Fire(EventContext{Type: EVENT_CODE_MARKER_LOST}))
	}
	assert.Error(t, es.Fire(EventContext{Type: EVENT_CODE_MARKER_LOST}))
	assert.Equal(t, MAX_QUEUED_EVENTS, es.Process())
}

func TestEventsFiredByListenersWaitForNextProcess(t *testing.T) {
	es := NewEventSystem()
	won := 0
	es.Register(EVENT_CODE_LEVEL_MATCHED, func(EventContext) bool {
		_ = es.Fire(EventContext{Type: EVENT_CODE_LEVEL_WON})
		return false
	})
	es.Register(EVENT_CODE_LEVEL_WON, func(EventContext) bool { won++; return false })

	require.NoError(t, es.Fire(EventContext{Type: EVENT_CODE_LEVEL_MATCHED}))
	assert.Equal(t, 1, es.Process())
	assert.Equal(t, 0, won)

	assert.Equal(t, 1, es.Process())
	assert.Equal(t, 1, won)
}

func TestInputFrames(t *testing.T) {
	in := NewInput()
	in.Press(ACTION_CONFIRM)
	assert.True(t, in.WasPressed(ACTION_CONFIRM))
	assert.False(t, in.WasPressed(ACTION_RESET))

	in.Update()
	assert.False(t, in.WasPressed(ACTION_CONFIRM))
	assert.True(t, in.WasPressedLastFrame(ACTION_CONFIRM))

	var nilInput *Input
	assert.False(t, nilInput.WasPressed(ACTION_CONFIRM))
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("switch_level")
	require.True(t, ok)
	assert.Equal(t, ACTION_SWITCH_LEVEL, a)
	assert.Equal(t, "switch_level", a.String())

	_, ok = ParseAction("jump")
	assert.False(t, ok)
}

func TestMetricsFPS(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 61; i++ {
		m.Update(1.0 / 60.0)
	}
	fps, frameMS := m.Frame()
	assert.InDelta(t, 60.0, fps, 1.0)
	assert.InDelta(t, 16.67, frameMS, 0.1)
}

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := &Clock{now: func() time.Time { return now }}

	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	now = now.Add(1500 * time.Millisecond)
	c.Update()
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-9)

	c.Stop()
	now = now.Add(time.Second)
	c.Update()
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-9)
}

func TestParseLogLevel(t *testing.T) {
	l, err := ParseLogLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, l)

	_, err = ParseLogLevel("loud")
	assert.Error(t, err)
}
