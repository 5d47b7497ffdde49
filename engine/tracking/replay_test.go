package tracking

import (
	"errors"
	"strings"
	"testing"

	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecording = `
name: sample
frames:
  - markers:
      - id: 1
        pose: [1, 0, 0, 0,  0, 1, 0, 0,  0, 0, 1, 0,  0.1, 0.2, -0.5, 1]
    repeat: 2
  - markers:
      - id: 0
        pose: [1, 0, 0, 0,  0, 1, 0, 0,  0, 0, 1, 0,  0, 0, -0.4, 1]
      - id: 1
        pose: [1, 0, 0, 0,  0, 1, 0, 0,  0, 0, 1, 0,  0.1, 0.2, -0.5, 1]
    actions: [confirm, reset]
`

func loadSample(t *testing.T) *Recording {
	t.Helper()
	rec, err := LoadRecording(strings.NewReader(sampleRecording))
	require.NoError(t, err)
	return rec
}

func TestLoadRecording(t *testing.T) {
	rec := loadSample(t)
	assert.Equal(t, "sample", rec.Name)
	require.Len(t, rec.Frames, 2)
	assert.Equal(t, 2, rec.Frames[0].Repeat)
	assert.Equal(t, []string{"confirm", "reset"}, rec.Frames[1].Actions)
}

func TestLoadRecordingRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"no frames":      "name: empty\n",
		"short pose":     "frames:\n  - markers:\n      - id: 0\n        pose: [1, 2, 3]\n",
		"unknown action": "frames:\n  - actions: [jump]\n",
		"negative":       "frames:\n  - repeat: -1\n",
		"unknown field":  "frames:\n  - markerz: []\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadRecording(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestReplayPlaysFramesInOrder(t *testing.T) {
	r := NewReplay(loadSample(t), false)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, "sample", r.Name())

	// nothing visible before the first Update
	assert.False(t, r.IsMarkerFound(1))
	assert.Nil(t, r.Actions())

	for i := 0; i < 2; i++ {
		require.NoError(t, r.Update())
		assert.False(t, r.IsMarkerFound(0))
		assert.True(t, r.IsMarkerFound(1))
		assert.Equal(t, math.NewVec3(0.1, 0.2, -0.5), r.MarkerTransform(1).Translation())
		assert.Empty(t, r.Actions())
	}

	require.NoError(t, r.Update())
	assert.True(t, r.IsMarkerFound(0))
	assert.Equal(t, math.NewVec3(0, 0, -0.4), r.MarkerTransform(0).Translation())
	assert.Equal(t, []core.Action{core.ACTION_CONFIRM, core.ACTION_RESET}, r.Actions())

	err := r.Update()
	assert.True(t, errors.Is(err, core.ErrRecordingFinished))
	assert.False(t, r.IsMarkerFound(0))
	assert.Equal(t, math.NewMat4Identity(), r.MarkerTransform(0))
}

func TestReplayLoops(t *testing.T) {
	r := NewReplay(loadSample(t), true)
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Update())
	}
	require.NoError(t, r.Update())
	assert.False(t, r.IsMarkerFound(0))
	assert.True(t, r.IsMarkerFound(1))
}

func TestStaticTracker(t *testing.T) {
	s := NewStatic()
	require.NoError(t, s.Update())
	assert.False(t, s.IsMarkerFound(3))

	pose := math.NewMat4Translation(math.NewVec3(1, 2, 3))
	s.Show(3, pose)
	assert.True(t, s.IsMarkerFound(3))
	assert.Equal(t, pose, s.MarkerTransform(3))

	s.Hide(3)
	assert.False(t, s.IsMarkerFound(3))
	assert.Equal(t, math.NewMat4Identity(), s.MarkerTransform(3))
}

var _ Tracker = (*Replay)(nil)
var _ Tracker = (*Static)(nil)
