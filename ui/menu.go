package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var actionGroupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

var separator = " • "
var verticalSeparator = " │ "

var menuStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205"))

// MenuState represents different states the menu can be in
type MenuState int

const (
	// StateBrowse is shown while moving focus between selectors.
	StateBrowse MenuState = iota
	// StateSelecting is shown while a panel is open.
	StateSelecting
)

// Menu is the key hint footer. Bindings are shown in groups; the first
// group is highlighted as the primary actions.
type Menu struct {
	groups        map[MenuState][][]key.Binding
	state         MenuState
	width, height int

	// keyDown is the key which is pressed, empty when none.
	keyDown string
}

// NewMenu creates a footer with hint groups for each state.
func NewMenu(browse, selecting [][]key.Binding) *Menu {
	return &Menu{
		groups: map[MenuState][][]key.Binding{
			StateBrowse:    browse,
			StateSelecting: selecting,
		},
		state: StateBrowse,
	}
}

// Keydown underlines the hint whose first key is k.
func (m *Menu) Keydown(k string) {
	m.keyDown = k
}

func (m *Menu) ClearKeydown() {
	m.keyDown = ""
}

// SetState switches the visible hint set.
func (m *Menu) SetState(state MenuState) {
	m.state = state
}

// State returns the current hint set.
func (m *Menu) State() MenuState {
	return m.state
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) String() string {
	var s strings.Builder

	groups := m.groups[m.state]
	for gi, group := range groups {
		group = enabled(group)
		for i, binding := range group {
			var (
				localActionStyle = actionGroupStyle
				localKeyStyle    = keyStyle
				localDescStyle   = descStyle
			)
			if keys := binding.Keys(); m.keyDown != "" && len(keys) > 0 && keys[0] == m.keyDown {
				localActionStyle = localActionStyle.Underline(true)
				localKeyStyle = localKeyStyle.Underline(true)
				localDescStyle = localDescStyle.Underline(true)
			}

			help := binding.Help()
			if gi == 0 {
				s.WriteString(localActionStyle.Render(help.Key))
				s.WriteString(" ")
				s.WriteString(localActionStyle.Render(help.Desc))
			} else {
				s.WriteString(localKeyStyle.Render(help.Key))
				s.WriteString(" ")
				s.WriteString(localDescStyle.Render(help.Desc))
			}

			if i != len(group)-1 {
				s.WriteString(sepStyle.Render(separator))
			}
		}
		if gi != len(groups)-1 {
			s.WriteString(sepStyle.Render(verticalSeparator))
		}
	}

	centeredMenuText := menuStyle.Render(s.String())
	if m.width <= 0 {
		return centeredMenuText
	}
	return lipgloss.Place(m.width, max(m.height, 1), lipgloss.Center, lipgloss.Center, centeredMenuText)
}

func enabled(bindings []key.Binding) []key.Binding {
	var out []key.Binding
	for _, b := range bindings {
		if b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}
