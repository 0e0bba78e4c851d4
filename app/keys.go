package app

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the page-level bindings. Keys inside an open panel belong to
// the option list.
type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Open       key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Mode       key.Binding
	Placement  key.Binding
	Copy       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	PanelPick  key.Binding
	PanelMove  key.Binding
	PanelClose key.Binding
	PanelType  key.Binding
}

var defaultKeys = keyMap{
	Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
	Open:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
	PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
	Placement: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "place")),
	Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),

	// Shown in the footer while a panel is open.
	PanelPick:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	PanelClose: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	PanelMove:  key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
	PanelType:  key.NewBinding(key.WithKeys(""), key.WithHelp("type", "filter")),
}

func (k keyMap) browseHints() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Next},
		{k.Mode, k.Placement, k.Copy},
		{k.Quit},
	}
}

func (k keyMap) selectingHints() [][]key.Binding {
	return [][]key.Binding{
		{k.PanelPick, k.PanelClose},
		{k.PanelMove, k.PanelType},
	}
}
