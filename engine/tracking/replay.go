package tracking

import (
	"fmt"
	"io"
	"os"

	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/math"
	"gopkg.in/yaml.v3"
)

// Recording is a captured tracking session: the markers seen on each camera
// frame and the controller actions pressed on it.
type Recording struct {
	Name   string           `yaml:"name"`
	Frames []RecordingFrame `yaml:"frames"`
}

type RecordingFrame struct {
	Markers []RecordedMarker `yaml:"markers"`
	Actions []string         `yaml:"actions,omitempty"`
	// Repeat holds the frame for that many ticks. Zero means one.
	Repeat int `yaml:"repeat,omitempty"`
}

type RecordedMarker struct {
	ID int `yaml:"id"`
	// Pose is the row-major 4x4 marker transform.
	Pose []float32 `yaml:"pose"`
}

// LoadRecording decodes a YAML recording.
func LoadRecording(r io.Reader) (*Recording, error) {
	var rec Recording
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	if err := rec.validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

func LoadRecordingFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := LoadRecording(f)
	if err != nil {
		return nil, fmt.Errorf("recording %s: %w", path, err)
	}
	return rec, nil
}

func (r *Recording) validate() error {
	if len(r.Frames) == 0 {
		return fmt.Errorf("recording has no frames")
	}
	for i, f := range r.Frames {
		if f.Repeat < 0 {
			return fmt.Errorf("frame %d: negative repeat", i)
		}
		for _, m := range f.Markers {
			if len(m.Pose) != 16 {
				return fmt.Errorf("frame %d marker %d: pose has %d values, want 16", i, m.ID, len(m.Pose))
			}
		}
		for _, a := range f.Actions {
			if _, ok := core.ParseAction(a); !ok {
				return fmt.Errorf("frame %d: unknown action %q", i, a)
			}
		}
	}
	return nil
}

type replayFrame struct {
	poses   map[int]math.Mat4
	actions []core.Action
}

// Replay plays a Recording back one tick per Update.
type Replay struct {
	name   string
	frames []replayFrame
	loop   bool

	cursor  int
	current *replayFrame
}

func NewReplay(rec *Recording, loop bool) *Replay {
	r := &Replay{name: rec.Name, loop: loop, cursor: -1}
	for _, f := range rec.Frames {
		rf := replayFrame{poses: make(map[int]math.Mat4, len(f.Markers))}
		for _, m := range f.Markers {
			pose := math.Mat4{}
			copy(pose.Data[:], m.Pose)
			rf.poses[m.ID] = pose
		}
		for _, a := range f.Actions {
			action, _ := core.ParseAction(a)
			rf.actions = append(rf.actions, action)
		}
		repeat := f.Repeat
		if repeat == 0 {
			repeat = 1
		}
		for i := 0; i < repeat; i++ {
			r.frames = append(r.frames, rf)
		}
	}
	return r
}

func (r *Replay) Name() string {
	return r.name
}

// Len is the number of ticks in one pass of the recording.
func (r *Replay) Len() int {
	return len(r.frames)
}

// Update advances to the next recorded frame. At the end of the recording it
// wraps around when looping and returns core.ErrRecordingFinished otherwise.
func (r *Replay) Update() error {
	next := r.cursor + 1
	if next >= len(r.frames) {
		if !r.loop {
			r.current = nil
			return core.ErrRecordingFinished
		}
		next = 0
	}
	r.cursor = next
	r.current = &r.frames[next]
	return nil
}

func (r *Replay) IsMarkerFound(id int) bool {
	if r.current == nil {
		return false
	}
	_, ok := r.current.poses[id]
	return ok
}

func (r *Replay) MarkerTransform(id int) math.Mat4 {
	if r.current != nil {
		if pose, ok := r.current.poses[id]; ok {
			return pose
		}
	}
	return math.NewMat4Identity()
}

// Actions returns the controller actions recorded on the current frame.
func (r *Replay) Actions() []core.Action {
	if r.current == nil {
		return nil
	}
	return r.current.actions
}
