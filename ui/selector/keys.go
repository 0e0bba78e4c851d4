package selector

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings a focused, closed selector responds to. Once
// open, keys go to the option list.
type KeyMap struct {
	Toggle key.Binding
}

var DefaultKeyMap = KeyMap{
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "open"),
	),
}
