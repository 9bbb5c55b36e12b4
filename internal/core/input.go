package core

// Action represents a semantic input, abstracted from physical key presses,
// mouse clicks or touch buttons.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - run left (held)
	ActionRight          // Right arrow, D - run right (held)
	ActionJump           // Up arrow, W, Space - jump
	ActionPause          // Esc, P - pause the scene
	ActionUp             // menu cursor up
	ActionDown           // menu cursor down
	ActionConfirm        // Enter - confirm selection
	ActionBack           // B - go back
	ActionRestart        // R - restart the scene
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input state for one simulation tick.
// Pressed actions fire once; held actions persist until released.
type InputFrame struct {
	Actions map[Action]bool // pressed during this tick
	Held    map[Action]bool // currently held down
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as pressed for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Hold marks an action as held until Release is called.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Release clears a held action.
func (f *InputFrame) Release(a Action) {
	delete(f.Held, a)
}

// IsDown reports whether the action is held or was pressed this frame.
func (f InputFrame) IsDown(a Action) bool {
	return f.Held[a] || f.Actions[a]
}

// Clear resets the pressed actions for the next frame. Held actions survive.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	return clone
}
