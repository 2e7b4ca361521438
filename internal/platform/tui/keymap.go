package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilegame/internal/core"
)

// KeyMap defines the key bindings of a game session.
// It translates Bubble Tea key messages to game actions, which keeps the
// bindings in one place and makes them testable.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Grow   key.Binding
	Shrink key.Binding
	Toggle key.Binding
	Style  key.Binding
	Debug  key.Binding
	Save   key.Binding
	Load   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Save, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Grow, k.Shrink, k.Toggle, k.Style},
		{k.Debug, k.Save, k.Load},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "right"),
		),
		Grow: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "grow"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "shrink"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "place/erase"),
		),
		Style: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "style"),
		),
		Debug: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "debug"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^S", "save"),
		),
		Load: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("^L", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Apply queues the action bound to msg into the input frame.
// Returns false if the key is not bound to a game action.
func (k KeyMap) Apply(msg tea.KeyMsg, in *core.InputFrame) bool {
	switch {
	case key.Matches(msg, k.Up):
		in.Set(core.ActionUp)
	case key.Matches(msg, k.Down):
		in.Set(core.ActionDown)
	case key.Matches(msg, k.Left):
		in.Set(core.ActionLeft)
	case key.Matches(msg, k.Right):
		in.Set(core.ActionRight)
	case key.Matches(msg, k.Grow):
		in.Set(core.ActionGrow)
	case key.Matches(msg, k.Shrink):
		in.Set(core.ActionShrink)
	case key.Matches(msg, k.Toggle):
		in.Set(core.ActionToggle)
	case key.Matches(msg, k.Style):
		in.SelectStyle(int(msg.String()[0] - '0'))
	case key.Matches(msg, k.Debug):
		in.Set(core.ActionToggleDebug)
	case key.Matches(msg, k.Save):
		in.Set(core.ActionSave)
	case key.Matches(msg, k.Load):
		in.Set(core.ActionLoad)
	case key.Matches(msg, k.Quit):
		in.Set(core.ActionQuit)
	default:
		return false
	}
	return true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ", "space":
		return MenuActionSelect
	}

	return MenuActionNone
}
