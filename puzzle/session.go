package puzzle

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/math"
	"github.com/spaghettifunk/arpuzzle/engine/tracking"
)

type Difficulty uint8

const (
	// The level is won as soon as both shapes match.
	DifficultyEasy Difficulty = iota
	// The player has to confirm while the shapes match.
	DifficultyNormal
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	default:
		return fmt.Sprintf("difficulty(%d)", uint8(d))
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "normal":
		return DifficultyNormal, nil
	default:
		return DifficultyEasy, fmt.Errorf("unknown difficulty %q", s)
	}
}

type SessionConfig struct {
	Tolerance  float32
	Difficulty Difficulty
	StartLevel int
}

// Status is a snapshot of the session for the HUD.
type Status struct {
	LevelID    int
	Difficulty Difficulty
	Matched    bool
	Won        bool
	// origin and secondary marker visibility
	MarkersFound      [ObjectCount]bool
	ShowControls      bool
	DisplayTransforms bool
	// world transforms of the objects, only filled while displayed
	Transforms [ObjectCount]math.Mat4
}

// Session owns the level being played and the win state around it. It is
// driven by one Update and one Render per frame from the game loop.
type Session struct {
	level   *Level
	tracker tracking.Tracker
	events  *core.EventSystem

	difficulty        Difficulty
	levelID           int
	tolerance         float32
	hasWon            bool
	correctTransforms bool
	markersFound      [ObjectCount]bool
	showControls      bool
	displayTransforms bool
}

// NewSession loads the starting level. events may be nil.
func NewSession(cfg SessionConfig, loader SceneLoader, tracker tracking.Tracker, events *core.EventSystem) (*Session, error) {
	s := &Session{
		level:        NewLevel(loader, tracker),
		tracker:      tracker,
		events:       events,
		difficulty:   cfg.Difficulty,
		levelID:      cfg.StartLevel,
		tolerance:    cfg.Tolerance,
		showControls: true,
	}
	if err := s.level.InitLevel(s.levelID, s.tolerance); err != nil {
		return nil, err
	}
	return s, nil
}

// Update runs one frame: input first, then sampling and match evaluation.
func (s *Session) Update(input *core.Input) error {
	if err := s.handleInput(input); err != nil {
		return err
	}
	if !s.level.IsInitialized() {
		return core.ErrLevelNotInitialized
	}

	s.level.ReadyForUpdate()
	if err := s.tracker.Update(); err != nil {
		return fmt.Errorf("tracker update: %w", err)
	}

	found := [ObjectCount]bool{}
	found[0], found[1] = s.level.SampleMarkers()
	s.updateMarkers(found)

	matched := s.level.GetUpdate()
	if matched && !s.correctTransforms {
		s.fire(core.EVENT_CODE_LEVEL_MATCHED, s.levelEvent())
	}
	s.correctTransforms = matched

	if s.difficulty == DifficultyEasy && s.correctTransforms {
		s.win()
	}
	return nil
}

func (s *Session) handleInput(input *core.Input) error {
	if input.WasPressed(core.ACTION_CONFIRM) {
		if s.difficulty == DifficultyNormal && s.correctTransforms {
			s.win()
		}
	}
	if input.WasPressed(core.ACTION_NEXT) {
		if s.hasWon {
			if err := s.SwitchLevels(); err != nil {
				return err
			}
		} else {
			s.showControls = !s.showControls
		}
	}
	if input.WasPressed(core.ACTION_TOGGLE_DIFFICULTY) {
		s.ToggleDifficulty()
	}
	if input.WasPressed(core.ACTION_RESET) {
		if err := s.Reset(); err != nil {
			return err
		}
	}
	if input.WasPressed(core.ACTION_SWITCH_LEVEL) {
		if err := s.SwitchLevels(); err != nil {
			return err
		}
	}
	if input.WasPressed(core.ACTION_TOGGLE_TRANSFORMS) {
		s.displayTransforms = !s.displayTransforms
	}
	return nil
}

func (s *Session) win() {
	if s.hasWon {
		return
	}
	s.hasWon = true
	core.LogInfo("Level %d won on %s.", s.levelID, s.difficulty)
	s.fire(core.EVENT_CODE_LEVEL_WON, s.levelEvent())
}

func (s *Session) updateMarkers(found [ObjectCount]bool) {
	for slot := range found {
		if found[slot] == s.markersFound[slot] {
			continue
		}
		code := core.EVENT_CODE_MARKER_LOST
		if found[slot] {
			code = core.EVENT_CODE_MARKER_FOUND
		}
		marker := -1
		if o := s.level.GameObject(slot); o != nil {
			marker = o.Marker()
		}
		s.fire(code, &core.MarkerEvent{Slot: slot, Marker: marker})
	}
	s.markersFound = found
}

// SwitchLevels alternates between the two levels and clears the win state.
func (s *Session) SwitchLevels() error {
	next := NextLevelID(s.levelID)
	if err := s.reload(next); err != nil {
		return err
	}
	s.levelID = next
	s.hasWon = false
	s.correctTransforms = false
	return nil
}

// Reset reloads the current level. The win state is kept.
func (s *Session) Reset() error {
	return s.reload(s.levelID)
}

func (s *Session) reload(id int) error {
	if err := s.level.ResetLevel(); err != nil {
		core.LogWarn("level reset: %s", err)
	}
	if err := s.level.InitLevel(id, s.tolerance); err != nil {
		return fmt.Errorf("load level %d: %w", id, err)
	}
	s.fire(core.EVENT_CODE_LEVEL_SWITCHED, &core.LevelEvent{LevelID: id, Difficulty: s.difficulty.String()})
	return nil
}

func (s *Session) ToggleDifficulty() {
	if s.difficulty == DifficultyNormal {
		s.difficulty = DifficultyEasy
	} else {
		s.difficulty = DifficultyNormal
	}
	s.fire(core.EVENT_CODE_DIFFICULTY_CHANGED, s.levelEvent())
}

func (s *Session) Render(drawer MeshDrawer) {
	s.level.Render(drawer)
}

// Shutdown releases the level's resources.
func (s *Session) Shutdown() error {
	return s.level.ResetLevel()
}

func (s *Session) Status() Status {
	st := Status{
		LevelID:           s.levelID,
		Difficulty:        s.difficulty,
		Matched:           s.correctTransforms,
		Won:               s.hasWon,
		MarkersFound:      s.markersFound,
		ShowControls:      s.showControls,
		DisplayTransforms: s.displayTransforms,
	}
	if s.displayTransforms {
		for i := range st.Transforms {
			if o := s.level.GameObject(i); o != nil {
				st.Transforms[i] = o.Transform()
			}
		}
	}
	return st
}

func (s *Session) Level() *Level {
	return s.level
}

func (s *Session) LevelID() int {
	return s.levelID
}

func (s *Session) Difficulty() Difficulty {
	return s.difficulty
}

func (s *Session) HasWon() bool {
	return s.hasWon
}

// Matched reports whether the last frame matched the reference transforms.
func (s *Session) Matched() bool {
	return s.correctTransforms
}

func (s *Session) fire(code core.EventCode, data interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Fire(core.EventContext{Type: code, Data: data}); err != nil {
		core.LogWarn("%s", err)
	}
}

func (s *Session) levelEvent() *core.LevelEvent {
	return &core.LevelEvent{LevelID: s.levelID, Difficulty: s.difficulty.String()}
}
