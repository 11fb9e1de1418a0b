package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/buildatom/internal/placement"
)

type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Activate   key.Binding
	Cancel     key.Binding
	AdvanceOut key.Binding
	Direct     key.Binding
	Undo       key.Binding
	Theme      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "down", "l", "j"),
			key.WithHelp("→/↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "up", "h", "k"),
			key.WithHelp("←/↑", "prev"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "take/place"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		AdvanceOut: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next bucket"),
		),
		Direct: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump"),
		),
		Undo: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("bksp", "undo"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
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

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.Cancel, k.AdvanceOut, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Direct},
		{k.Activate, k.Cancel, k.AdvanceOut},
		{k.Undo, k.Theme, k.Help, k.Quit},
	}
}

// placementEvent maps a key onto the logical event the placement machine
// understands while a selection is in progress.
func (k keyMap) placementEvent(msg tea.KeyMsg) (placement.Event, bool) {
	switch {
	case key.Matches(msg, k.Next):
		return placement.EventNextOption, true
	case key.Matches(msg, k.Prev):
		return placement.EventPrevOption, true
	case key.Matches(msg, k.Activate):
		return placement.EventActivate, true
	case key.Matches(msg, k.Cancel):
		return placement.EventCancel, true
	case key.Matches(msg, k.AdvanceOut):
		return placement.EventAdvanceOut, true
	}
	return 0, false
}
