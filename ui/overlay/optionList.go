package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"selectorkit/ui"
)

// Option is one selectable entry in an OptionList.
type Option struct {
	Value       string
	Label       string
	Description string
	Available   bool
}

// ListKeyMap holds the bindings an open list responds to.
type ListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

// DefaultListKeyMap leaves printable keys free for filtering.
var DefaultListKeyMap = ListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p", "shift+tab"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n", "tab"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

var (
	listTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	listSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7aa2f7")).
				Bold(true)

	listNormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	listUnavailableStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#555555")).
				Strikethrough(true)

	listDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			PaddingLeft(2)

	listFilterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	listBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.BorderFocus).
			Padding(0, 1)
)

// PanelStyle returns the border style every option list is drawn with.
func PanelStyle() lipgloss.Style {
	return listBorderStyle
}

// OptionList is the panel content of a selector: a filterable, scrollable
// list of options with a cursor.
type OptionList struct {
	Dismissed bool
	Selected  string

	title      string
	options    []Option
	visible    []int // indexes into options, in display order
	cursor     int   // index into visible
	offset     int   // first visible row
	maxVisible int
	width      int
	showDesc   bool
	showMore   bool
	input      textinput.Model
	keys       ListKeyMap
}

// NewOptionList creates a list positioned on the first available option.
func NewOptionList(title string, options []Option) *OptionList {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "filter"
	input.PromptStyle = listFilterStyle
	input.PlaceholderStyle = listFilterStyle
	input.Focus()

	l := &OptionList{
		title:      title,
		options:    options,
		maxVisible: 8,
		showDesc:   true,
		showMore:   true,
		input:      input,
		keys:       DefaultListKeyMap,
	}
	l.applyFilter()
	return l
}

// Reset clears the filter and result flags, keeping the cursor on current.
func (l *OptionList) Reset(current string) {
	l.Dismissed = false
	l.Selected = ""
	l.input.Reset()
	l.applyFilter()
	for i, idx := range l.visible {
		if l.options[idx].Value == current && l.options[idx].Available {
			l.cursor = i
			break
		}
	}
	l.scrollToCursor()
}

// HandleKeyPress processes a key and reports whether the list is done,
// either with a selection or dismissed.
func (l *OptionList) HandleKeyPress(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, l.keys.Up):
		l.moveCursor(-1)
		return false
	case key.Matches(msg, l.keys.Down):
		l.moveCursor(1)
		return false
	case key.Matches(msg, l.keys.Select):
		opt, ok := l.Current()
		if ok && opt.Available {
			l.Selected = opt.Value
			l.Dismissed = true
			return true
		}
		return false
	case key.Matches(msg, l.keys.Cancel):
		l.Dismissed = true
		return true
	default:
		before := l.input.Value()
		l.input, _ = l.input.Update(msg)
		if l.input.Value() != before {
			l.applyFilter()
		}
		return false
	}
}

// SetFilter narrows the list to options whose label fuzzily matches query.
func (l *OptionList) SetFilter(query string) {
	l.input.SetValue(query)
	l.applyFilter()
}

// Filter returns the current filter query.
func (l *OptionList) Filter() string {
	return l.input.Value()
}

// Current returns the option under the cursor.
func (l *OptionList) Current() (Option, bool) {
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return Option{}, false
	}
	return l.options[l.visible[l.cursor]], true
}

// Label returns the label for value, or value itself when unknown.
func (l *OptionList) Label(value string) string {
	for _, opt := range l.options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// Visible returns how many options pass the filter.
func (l *OptionList) Visible() int {
	return len(l.visible)
}

func (l *OptionList) applyFilter() {
	query := l.input.Value()
	l.visible = l.visible[:0]
	if query == "" {
		for i := range l.options {
			l.visible = append(l.visible, i)
		}
	} else {
		labels := make([]string, len(l.options))
		for i, opt := range l.options {
			labels[i] = opt.Label
		}
		for _, match := range fuzzy.Find(query, labels) {
			l.visible = append(l.visible, match.Index)
		}
	}

	l.cursor = 0
	l.offset = 0
	if len(l.visible) > 0 && !l.options[l.visible[0]].Available {
		l.moveCursor(1)
	}
}

// moveCursor moves the cursor up or down, wrapping and skipping unavailable
// options.
func (l *OptionList) moveCursor(delta int) {
	n := len(l.visible)
	if n == 0 {
		return
	}

	next := l.cursor
	for attempts := 0; attempts < n; attempts++ {
		next = (next + delta + n) % n
		if l.options[l.visible[next]].Available {
			l.cursor = next
			break
		}
	}
	l.scrollToCursor()
}

func (l *OptionList) scrollToCursor() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

// Render renders the bordered panel.
func (l *OptionList) Render() string {
	var content strings.Builder
	if l.title != "" {
		content.WriteString(listTitleStyle.Render(l.title))
		content.WriteString("\n")
	}

	if len(l.visible) == 0 {
		content.WriteString(listNormalStyle.Render("  no matches"))
		content.WriteString("\n")
	}

	end := min(l.offset+l.maxVisible, len(l.visible))
	for i := l.offset; i < end; i++ {
		opt := l.options[l.visible[i]]

		prefix := "  "
		nameStyle := listNormalStyle
		switch {
		case !opt.Available:
			nameStyle = listUnavailableStyle
		case i == l.cursor:
			prefix = "> "
			nameStyle = listSelectedStyle
		}

		content.WriteString(prefix)
		content.WriteString(nameStyle.Render(opt.Label))
		if l.showDesc && opt.Description != "" && i == l.cursor {
			content.WriteString("\n")
			content.WriteString(listDescStyle.Render(opt.Description))
		}
		content.WriteString("\n")
	}

	if hidden := len(l.visible) - end; l.showMore && hidden > 0 {
		content.WriteString(listFilterStyle.Render(fmt.Sprintf("  …%d more", hidden)))
		content.WriteString("\n")
	}

	content.WriteString(l.input.View())

	style := listBorderStyle
	if l.width > 0 {
		style = style.Width(l.width)
	}
	return style.Render(content.String())
}

// SetWidth sets the width of the panel content. Zero sizes to content.
func (l *OptionList) SetWidth(width int) {
	l.width = max(width, 0)
}

// SetMaxVisible limits how many rows are shown before scrolling.
func (l *OptionList) SetMaxVisible(n int) {
	l.maxVisible = max(n, 1)
	l.scrollToCursor()
}

// SetShowDescriptions toggles the description line under the cursor row.
func (l *OptionList) SetShowDescriptions(show bool) {
	l.showDesc = show
}

// SetShowMoreIndicator toggles the row counting options below the fold.
func (l *OptionList) SetShowMoreIndicator(show bool) {
	l.showMore = show
}

// MaxVisible returns the row limit.
func (l *OptionList) MaxVisible() int {
	return l.maxVisible
}

// SetKeyMap replaces the key bindings.
func (l *OptionList) SetKeyMap(km ListKeyMap) {
	l.keys = km
}

// Keys returns the key bindings, for help rendering.
func (l *OptionList) Keys() ListKeyMap {
	return l.keys
}
