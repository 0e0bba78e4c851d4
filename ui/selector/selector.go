// Package selector is a bubbletea dropdown: a trigger button that opens an
// option list anchored below (or above) it, or centered as a dialog on
// narrow terminals.
package selector

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"selectorkit/inspect"
	"selectorkit/log"
	"selectorkit/ui"
	"selectorkit/ui/anchor"
	"selectorkit/ui/layout"
	"selectorkit/ui/overlay"
	"selectorkit/ui/position"
)

// dropdownMaxRows caps the list length when anchored.
const dropdownMaxRows = 8

// dialogPreferredWidth is the dialog width on terminals wide enough for it.
const dialogPreferredWidth = 48

// SelectedMsg is emitted when the user picks an option.
type SelectedMsg struct {
	ID    string
	Value string
}

// Model is a single selector. It is not a tea.Model on its own; the host
// forwards messages to Update and composes Overlay onto its view.
type Model struct {
	id      string
	label   string
	value   string
	focused bool

	list     *overlay.OptionList
	ctrl     *anchor.Controller
	trigger  anchor.Element
	viewport position.Viewport
	degrade  layout.Degradation
	keys     KeyMap
}

// New creates a closed selector. trigger reports where the host drew the
// trigger button; it is read fresh every time the panel is positioned.
func New(id, label string, options []overlay.Option, sched anchor.Scheduler, env anchor.Environment, opts anchor.Options) *Model {
	m := &Model{
		id:    id,
		label: label,
		list:  overlay.NewOptionList(label, options),
		ctrl:  anchor.New(sched, env, opts),
		keys:  DefaultKeyMap,
	}
	if opt, ok := m.list.Current(); ok {
		m.value = opt.Value
	}
	m.ctrl.SetPanel(anchor.ElementFunc(m.panelBounds))
	return m
}

// ID returns the selector's identifier.
func (m *Model) ID() string {
	return m.id
}

// SetTrigger sets the element the panel anchors to.
func (m *Model) SetTrigger(el anchor.Element) {
	m.trigger = el
	m.ctrl.SetTrigger(el)
}

// Value returns the selected option value.
func (m *Model) Value() string {
	return m.value
}

// SetValue selects value without emitting SelectedMsg.
func (m *Model) SetValue(value string) {
	m.value = value
}

// Focus marks the selector as the keyboard target.
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes keyboard focus and closes the panel.
func (m *Model) Blur() {
	m.focused = false
	m.Close()
}

// Focused reports whether the selector receives keys.
func (m *Model) Focused() bool {
	return m.focused
}

// Open shows the panel with the filter cleared and the cursor on the
// current value.
func (m *Model) Open() {
	if m.ctrl.IsOpen() {
		return
	}
	m.list.Reset(m.value)
	m.ctrl.SetOpen(true)
	log.InputTrace("selector %s opened (mode=%s)", m.id, m.ctrl.Mode())
}

// Close hides the panel.
func (m *Model) Close() {
	m.ctrl.SetOpen(false)
}

// Toggle flips the panel.
func (m *Model) Toggle() {
	if m.ctrl.IsOpen() {
		m.Close()
	} else {
		m.Open()
	}
}

// IsOpen reports whether the panel is showing.
func (m *Model) IsOpen() bool {
	return m.ctrl.IsOpen()
}

// SetViewport records the terminal size.
func (m *Model) SetViewport(width, height int) {
	m.viewport = position.Viewport{Width: width, Height: height}
	m.degrade = layout.ComputeDegradation(width, height)
	m.list.SetShowDescriptions(m.degrade.ShouldShowDescription())
	m.list.SetShowMoreIndicator(m.degrade.ShouldShowMoreIndicator())
	m.ctrl.SetViewport(m.viewport)
}

// SetOptions replaces the anchoring configuration.
func (m *Model) SetOptions(opts anchor.Options) {
	m.ctrl.SetOptions(opts)
}

// Options returns the anchoring configuration.
func (m *Model) Options() anchor.Options {
	return m.ctrl.Options()
}

// Mode returns the resolved presentation mode.
func (m *Model) Mode() layout.Mode {
	return m.ctrl.Mode()
}

// Position returns the anchored panel position, if any.
func (m *Model) Position() (position.Position, bool) {
	return m.ctrl.Position()
}

// Invalidate tells the selector its trigger may have moved.
func (m *Model) Invalidate() {
	m.ctrl.Notify()
}

// Dispose releases the controller's timers and listeners.
func (m *Model) Dispose() {
	m.ctrl.Dispose()
}

// Update handles keys while focused.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	if !m.ctrl.IsOpen() {
		if key.Matches(keyMsg, m.keys.Toggle) {
			m.Open()
		}
		return m, nil
	}

	if !m.list.HandleKeyPress(keyMsg) {
		// Filtering and cursor moves change the panel's size.
		m.ctrl.Notify()
		return m, nil
	}

	selected := m.list.Selected
	m.Close()
	if selected == "" {
		return m, nil
	}

	m.value = selected
	id := m.id
	return m, func() tea.Msg {
		return SelectedMsg{ID: id, Value: selected}
	}
}

// TriggerView renders the trigger button.
func (m *Model) TriggerView() string {
	caret := ui.CaretDown
	if m.ctrl.Options().Placement.Family() == position.FamilyTop {
		caret = ui.CaretUp
	}

	style := ui.TriggerStyles.Normal
	switch {
	case m.ctrl.IsOpen():
		style = ui.TriggerStyles.Open
		caret = ui.CaretOpen
	case m.focused:
		style = ui.TriggerStyles.Focused
	}

	return ui.TriggerStyles.Label.Render(m.label+":") + " " +
		style.Render(fmt.Sprintf("%s %s", m.list.Label(m.value), caret))
}

// Overlay draws the open panel onto bg. Until the first position is computed
// a dropdown panel is not drawn.
func (m *Model) Overlay(bg string) string {
	if !m.ctrl.IsOpen() {
		return bg
	}

	top, left, ok := m.panelOrigin()
	if !ok {
		return bg
	}
	return overlay.PlaceOverlay(top, left, m.renderPanel(), bg)
}

func (m *Model) panelOrigin() (top, left int, ok bool) {
	if m.ctrl.Mode() == layout.Dialog {
		panel := m.renderPanel()
		top, left = layout.DialogOrigin(m.viewport.Width, m.viewport.Height,
			lipgloss.Width(panel), lipgloss.Height(panel))
		return top, left, true
	}

	st, ok := m.ctrl.Style()
	if !ok {
		return 0, 0, false
	}
	return st.Top, st.Left, true
}

// renderPanel sizes the list for the current mode and renders it.
func (m *Model) renderPanel() string {
	chrome := m.degrade.PanelChrome()
	if m.ctrl.Mode() == layout.Dialog {
		w, h := layout.ComputeDialogSize(m.viewport.Width, m.viewport.Height, dialogPreferredWidth, m.list.Visible()+chrome)
		// Border and padding take four columns.
		m.list.SetWidth(w - 4)
		m.list.SetMaxVisible(h - chrome)
	} else {
		m.list.SetWidth(0)
		m.list.SetMaxVisible(m.degrade.DropdownRows(m.viewport.Height, m.ctrl.Options().Margin, dropdownMaxRows))
	}
	return m.list.Render()
}

// panelBounds measures the rendered panel. Only the size matters; the
// controller decides where it goes.
func (m *Model) panelBounds() (position.Geometry, bool) {
	if !m.ctrl.IsOpen() {
		return position.Geometry{}, false
	}
	panel := m.renderPanel()
	return position.Size(lipgloss.Width(panel), lipgloss.Height(panel)), true
}

// InspectNode implements inspect.Introspectable.
func (m *Model) InspectNode() *inspect.Node {
	node := inspect.NewNode("Selector").
		WithID(m.id).
		WithState("label", m.label).
		WithState("value", m.value).
		WithState("focused", m.focused).
		WithState("open", m.ctrl.IsOpen()).
		WithState("mode", m.ctrl.Mode().String()).
		WithState("placement", m.ctrl.Options().Placement.String())

	if m.trigger != nil {
		if g, ok := m.trigger.Bounds(); ok {
			node.WithGeometry(g)
		}
	}

	panel := inspect.NewNode("Panel").WithID(m.id).WithVisible(false)
	if m.ctrl.IsOpen() {
		panel.WithState("filter", m.list.Filter())
		if top, left, ok := m.panelOrigin(); ok {
			g, _ := m.panelBounds()
			panel.WithGeometry(g.MoveTo(top, left)).WithVisible(true)
		}
		if p, ok := m.ctrl.Position(); ok {
			panel.WithState("resolved_placement", p.Placement.String())
		}
	}
	return node.AddChild(panel)
}
