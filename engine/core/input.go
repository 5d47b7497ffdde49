package core

// Action is an abstract controller command. Mapping physical buttons or keys
// onto actions is left to the platform layer.
type Action uint8

const (
	// Confirm the current configuration (normal difficulty only).
	ACTION_CONFIRM Action = iota
	// Advance to the next level once won; otherwise toggle the controls panel.
	ACTION_NEXT
	ACTION_TOGGLE_DIFFICULTY
	ACTION_RESET
	ACTION_SWITCH_LEVEL
	ACTION_TOGGLE_TRANSFORMS
	ACTION_MAX_ACTIONS
)

var actionNames = [ACTION_MAX_ACTIONS]string{
	"confirm",
	"next",
	"toggle_difficulty",
	"reset",
	"switch_level",
	"toggle_transforms",
}

func (a Action) String() string {
	if a >= ACTION_MAX_ACTIONS {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return ACTION_MAX_ACTIONS, false
}

type actionState struct {
	pressed [ACTION_MAX_ACTIONS]bool
}

// Input holds the actions pressed during the current frame and the previous one.
type Input struct {
	current  actionState
	previous actionState
}

func NewInput() *Input {
	return &Input{}
}

// Update rolls the current frame into the previous one. Call once per frame
// after the actions have been consumed.
func (in *Input) Update() {
	in.previous = in.current
	in.current = actionState{}
}

func (in *Input) Press(action Action) {
	if action >= ACTION_MAX_ACTIONS {
		return
	}
	in.current.pressed[action] = true
}

// WasPressed reports whether the action was pressed this frame.
func (in *Input) WasPressed(action Action) bool {
	if in == nil || action >= ACTION_MAX_ACTIONS {
		return false
	}
	return in.current.pressed[action]
}

// WasPressedLastFrame reports whether the action was pressed on the previous frame.
func (in *Input) WasPressedLastFrame(action Action) bool {
	if in == nil || action >= ACTION_MAX_ACTIONS {
		return false
	}
	return in.previous.pressed[action]
}
