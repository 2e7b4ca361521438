package core

// Action represents a semantic game command, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W - move up
	ActionDown               // S - move down
	ActionLeft               // A - move left
	ActionRight              // D - move right
	ActionGrow               // Up arrow - grow the player
	ActionShrink             // Down arrow - shrink the player
	ActionToggle             // Space - editor place/erase at cursor
	ActionPointerPlace       // Left click - editor place at pointer
	ActionPointerErase       // Right click - editor erase at pointer
	ActionSelectStyle        // 1..9 - editor palette style, see InputFrame.Style
	ActionToggleDebug        // F2
	ActionSave               // Ctrl+S
	ActionLoad               // Ctrl+L
	ActionQuit               // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionGrow:
		return "Grow"
	case ActionShrink:
		return "Shrink"
	case ActionToggle:
		return "Toggle"
	case ActionPointerPlace:
		return "PointerPlace"
	case ActionPointerErase:
		return "PointerErase"
	case ActionSelectStyle:
		return "SelectStyle"
	case ActionToggleDebug:
		return "ToggleDebug"
	case ActionSave:
		return "Save"
	case ActionLoad:
		return "Load"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the input for a single simulation tick.
// Actions keep arrival order, and repeated presses are all kept, so two
// "move right" keystrokes between ticks move the player twice.
type InputFrame struct {
	actions []Action

	// Style is the palette index chosen by the last ActionSelectStyle.
	Style int

	pointer    World
	hasPointer bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set queues an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// SelectStyle queues a palette selection.
func (f *InputFrame) SelectStyle(n int) {
	f.Style = n
	f.Set(ActionSelectStyle)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Actions returns the queued actions in arrival order.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// SetPointer records the pointer position, already converted to world space
// by the platform.
func (f *InputFrame) SetPointer(p World) {
	f.pointer = p
	f.hasPointer = true
}

// Pointer returns the pointer position and whether one was reported.
func (f InputFrame) Pointer() (World, bool) {
	return f.pointer, f.hasPointer
}

// Clear resets all actions for the next frame. The pointer position is
// sticky: it stays valid until the platform reports a new one.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
	f.Style = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := f
	clone.actions = append([]Action(nil), f.actions...)
	return clone
}
