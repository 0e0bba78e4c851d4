package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"selectorkit/config"
	"selectorkit/inspect"
	"selectorkit/log"
	"selectorkit/ui"
	"selectorkit/ui/anchor"
	"selectorkit/ui/layout"
	"selectorkit/ui/overlay"
	"selectorkit/ui/position"
	"selectorkit/ui/selector"
)

const (
	headerHeight = 1
	// footerHeight is the menu plus the status line.
	footerHeight  = 2
	triggerIndent = 2
	wheelStep     = 3

	statusTimeout = 3 * time.Second
	keyupDelay    = 500 * time.Millisecond
	syncInterval  = 2 * time.Second
)

const appTitle = "selectorkit"

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ui.Primary).
	Padding(0, 1)

var requestedModes = []layout.RequestedMode{layout.Auto, layout.RequestDropdown, layout.RequestDialog}

func init() {
	inspect.RegisterStyle("title", titleStyle)
	inspect.RegisterStyle("trigger.normal", ui.TriggerStyles.Normal)
	inspect.RegisterStyle("trigger.focused", ui.TriggerStyles.Focused)
	inspect.RegisterStyle("trigger.open", ui.TriggerStyles.Open)
	inspect.RegisterStyle("panel", overlay.PanelStyle())
}

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config) error {
	queue := selector.NewQueue(64)
	h, err := newHome(ctx, cfg, config.LoadState(), queue.Scheduler(anchor.DefaultFrameInterval))
	if err != nil {
		return err
	}
	h.queue = queue

	p := tea.NewProgram(
		h,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse scroll
	)
	_, err = p.Run()
	return err
}

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	appConfig *config.Config
	// appState remembers the last value chosen in each selector.
	appState *config.State
	// opts is shared by every selector; mode and placement keys change it.
	opts anchor.Options

	// -- Anchoring --

	// queue carries timer callbacks back onto the event loop. Nil when the
	// scheduler runs callbacks itself, as the manual clock in tests does.
	queue *selector.Queue
	// env fans scroll and resize notifications out to open selectors.
	env       *anchor.Listeners
	selectors []*selector.Model
	focus     int

	// -- UI Components --

	page     viewport.Model
	markdown *markdownRenderer
	// triggerRows is the page line each selector's trigger is drawn on.
	triggerRows []int
	menu        *ui.Menu
	keys        keyMap

	width, height int
	// degrade tracks which parts of the page are dropped on small terminals.
	degrade layout.Degradation

	status    string
	statusErr bool
}

func newHome(ctx context.Context, cfg *config.Config, state *config.State, sched anchor.Scheduler) (*home, error) {
	opts, err := cfg.AnchorOptions()
	if err != nil {
		return nil, err
	}

	h := &home{
		ctx:       ctx,
		appConfig: cfg,
		appState:  state,
		opts:      opts,
		env:       anchor.NewListeners(),
		page:      viewport.New(0, 0),
		markdown:  newMarkdownRenderer(cfg.Theme),
		keys:      defaultKeys,
	}
	h.menu = ui.NewMenu(h.keys.browseHints(), h.keys.selectingHints())

	for i, f := range fields {
		s := selector.New(f.id, f.label, f.options, sched, h.env, opts)
		if v, ok := state.Selection(f.id); ok && f.has(v) {
			s.SetValue(v)
		}
		s.SetTrigger(anchor.ElementFunc(h.triggerBounds(i)))
		h.selectors = append(h.selectors, s)
	}
	h.selectors[0].Focus()

	return h, nil
}

func (f field) has(value string) bool {
	for _, o := range f.options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// triggerBounds reports where selector i's trigger is on screen. The trigger
// moves with the page scroll; once scrolled off, its rows go negative or past
// the page and the panel is clamped into view.
func (m *home) triggerBounds(i int) func() (position.Geometry, bool) {
	return func() (position.Geometry, bool) {
		if m.width == 0 || i >= len(m.triggerRows) {
			return position.Geometry{}, false
		}
		top := headerHeight + m.triggerRows[i] - m.page.YOffset
		width := lipgloss.Width(m.selectors[i].TriggerView())
		return position.NewGeometry(top, triggerIndent, width, 1), true
	}
}

// updateHandleWindowSizeEvent sets the sizes of the components.
// The components will try to render inside their bounds.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.degrade = layout.ComputeDegradation(msg.Width, msg.Height)

	m.page.Width = msg.Width
	m.page.Height = max(msg.Height-headerHeight-footerHeight, 1)
	m.menu.SetSize(msg.Width, 1)
	m.refreshPage()

	for _, s := range m.selectors {
		s.SetViewport(msg.Width, msg.Height)
		if m.degrade.ShowMinWarning {
			s.Close()
		}
	}
	m.env.Resize()
	log.LayoutTrace("resize %dx%d page=%d mode=%s", msg.Width, msg.Height, m.page.Height, m.selectors[0].Mode())
}

// refreshPage rebuilds the page content. Markdown renders are cached, so
// only trigger lines are redrawn on most calls.
func (m *home) refreshPage() {
	width := max(m.width-2*triggerIndent, 20)

	var lines []string
	lines = append(lines, strings.Split(m.markdown.Render(introMarkdown, width), "\n")...)

	m.triggerRows = m.triggerRows[:0]
	for i, s := range m.selectors {
		lines = append(lines, "")
		m.triggerRows = append(m.triggerRows, len(lines))
		lines = append(lines, strings.Repeat(" ", triggerIndent)+s.TriggerView())
		if !m.degrade.HidePageBlurbs {
			lines = append(lines, strings.Split(m.markdown.Render(fields[i].blurb, width), "\n")...)
		}
	}

	lines = append(lines, "")
	lines = append(lines, strings.Split(m.markdown.Render(outroMarkdown, width), "\n")...)
	m.page.SetContent(strings.Join(lines, "\n"))
}

func (m *home) Init() tea.Cmd {
	cmds := []tea.Cmd{tickSyncCmd}
	if m.queue != nil {
		cmds = append(cmds, m.queue.Wait())
	}
	return tea.Batch(cmds...)
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	m.refreshPage()
	m.syncMenuState()
	return model, cmd
}

func (m *home) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case selector.CallbackMsg:
		msg.Run()
		return m, m.queue.Wait()
	case hideStatusMsg:
		m.status = ""
		m.statusErr = false
		return m, nil
	case keyupMsg:
		m.menu.ClearKeydown()
		return m, nil
	case statusMsg:
		return m, m.showStatus(string(msg))
	case syncStateMsg:
		m.syncFromDisk()
		return m, tickSyncCmd
	case selector.SelectedMsg:
		return m, m.handleSelected(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.scrollTo(m.page.YOffset - wheelStep)
			case tea.MouseButtonWheelDown:
				m.scrollTo(m.page.YOffset + wheelStep)
			}
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case error:
		return m, m.handleError(msg)
	}
	return m, nil
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.handleQuit()
	}

	// Only quitting works while the page is hidden behind the size warning.
	if m.degrade.ShowMinWarning {
		if key.Matches(msg, m.keys.Quit) {
			return m.handleQuit()
		}
		return m, nil
	}

	// An open panel takes every other key.
	if open := m.openSelector(); open != nil {
		_, cmd := open.Update(msg)
		return m, cmd
	}

	highlightCmd := m.handleMenuHighlighting(msg)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Open):
		_, cmd := m.selectors[m.focus].Update(msg)
		return m, tea.Batch(highlightCmd, cmd)
	case key.Matches(msg, m.keys.Up):
		m.scrollTo(m.page.YOffset - 1)
	case key.Matches(msg, m.keys.Down):
		m.scrollTo(m.page.YOffset + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollTo(m.page.YOffset - m.page.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollTo(m.page.YOffset + m.page.Height)
	case key.Matches(msg, m.keys.Mode):
		return m, tea.Batch(highlightCmd, m.cycleMode())
	case key.Matches(msg, m.keys.Placement):
		return m, tea.Batch(highlightCmd, m.cyclePlacement())
	case key.Matches(msg, m.keys.Copy):
		s := m.selectors[m.focus]
		return m, tea.Batch(highlightCmd, copyCmd(s.ID(), s.Value()))
	}
	return m, highlightCmd
}

// handleMenuHighlighting returns a command to highlight the pressed key in the menu.
// This is purely visual - it briefly underlines the corresponding menu item.
func (m *home) handleMenuHighlighting(msg tea.KeyMsg) tea.Cmd {
	for _, group := range m.keys.browseHints() {
		for _, b := range group {
			if key.Matches(msg, b) {
				return m.keydownCallback(b.Keys()[0])
			}
		}
	}
	return nil
}

func (m *home) openSelector() *selector.Model {
	for _, s := range m.selectors {
		if s.IsOpen() {
			return s
		}
	}
	return nil
}

func (m *home) syncMenuState() {
	if m.openSelector() != nil {
		m.menu.SetState(ui.StateSelecting)
	} else {
		m.menu.SetState(ui.StateBrowse)
	}
}

func (m *home) moveFocus(delta int) {
	n := len(m.selectors)
	m.selectors[m.focus].Blur()
	m.focus = ((m.focus+delta)%n + n) % n
	m.selectors[m.focus].Focus()
	m.ensureVisible(m.focus)
}

// ensureVisible scrolls so that selector i's trigger is on the page.
func (m *home) ensureVisible(i int) {
	if i >= len(m.triggerRows) {
		return
	}
	row := m.triggerRows[i]
	switch {
	case row < m.page.YOffset:
		m.scrollTo(row - 1)
	case row >= m.page.YOffset+m.page.Height:
		m.scrollTo(row - m.page.Height + 2)
	}
}

// scrollTo moves the page and tells anchored panels their triggers moved.
func (m *home) scrollTo(offset int) {
	before := m.page.YOffset
	m.page.SetYOffset(max(offset, 0))
	if m.page.YOffset != before {
		m.env.Scroll()
	}
}

func (m *home) cycleMode() tea.Cmd {
	next := requestedModes[0]
	for i, r := range requestedModes {
		if r == m.opts.Mode {
			next = requestedModes[(i+1)%len(requestedModes)]
		}
	}
	m.opts.Mode = next
	m.applyOptions()
	return m.showStatus(fmt.Sprintf("mode: %s (%s)", next, m.selectors[0].Mode()))
}

func (m *home) cyclePlacement() tea.Cmd {
	placements := position.Placements()
	next := placements[0]
	for i, p := range placements {
		if p == m.opts.Placement {
			next = placements[(i+1)%len(placements)]
		}
	}
	m.opts.Placement = next
	m.applyOptions()
	return m.showStatus(fmt.Sprintf("placement: %s", next))
}

func (m *home) applyOptions() {
	for _, s := range m.selectors {
		s.SetOptions(m.opts)
	}
}

func (m *home) handleSelected(msg selector.SelectedMsg) tea.Cmd {
	log.InfoLog.Printf("selector %s set to %s", msg.ID, msg.Value)
	if err := m.appState.SetSelection(msg.ID, msg.Value); err != nil {
		return m.handleError(fmt.Errorf("failed to save selection: %w", err))
	}

	status := m.showStatus(fmt.Sprintf("%s set to %s", msg.ID, msg.Value))
	if !m.appConfig.CopyOnSelect {
		return status
	}
	return tea.Batch(status, copyCmd(msg.ID, msg.Value))
}

// syncFromDisk picks up selections saved by another instance. Open
// selectors keep their value until closed.
func (m *home) syncFromDisk() {
	if !m.appState.NeedsRefresh() {
		return
	}
	changed, err := m.appState.RefreshFromDisk()
	if err != nil {
		log.WarningLog.Printf("failed to sync state from disk: %v", err)
		return
	}
	if !changed {
		return
	}
	for i, s := range m.selectors {
		if s.IsOpen() {
			continue
		}
		if v, ok := m.appState.Selection(s.ID()); ok && fields[i].has(v) {
			s.SetValue(v)
		}
	}
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	for _, s := range m.selectors {
		s.Dispose()
	}
	log.GetProfiler().LogStats()
	return m, tea.Quit
}

type keyupMsg struct{}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(k string) tea.Cmd {
	m.menu.Keydown(k)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(keyupDelay):
		}

		return keyupMsg{}
	}
}

// hideStatusMsg implements tea.Msg and clears the status line.
type hideStatusMsg struct{}

// statusMsg is a one-line notice produced by a command.
type statusMsg string

// syncStateMsg triggers a check for selections saved by another process.
type syncStateMsg struct{}

var tickSyncCmd = func() tea.Msg {
	time.Sleep(syncInterval)
	return syncStateMsg{}
}

func copyCmd(id, value string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(value); err != nil {
			return fmt.Errorf("failed to copy %s: %w", id, err)
		}
		return statusMsg(fmt.Sprintf("copied %q", value))
	}
}

// handleError sets the status line to err. The returned command clears it
// after 3 seconds.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	cmd := m.showStatus(err.Error())
	m.statusErr = true
	return cmd
}

func (m *home) showStatus(text string) tea.Cmd {
	m.status = text
	m.statusErr = false
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(statusTimeout):
		}

		return hideStatusMsg{}
	}
}

func (m *home) statusView() string {
	style := ui.TextStyles.Muted
	if m.statusErr {
		style = ui.TextStyles.Error
	}
	return lipgloss.NewStyle().
		Width(m.width).
		MaxWidth(m.width).
		Align(lipgloss.Center).
		Render(style.Render(m.status))
}

func (m *home) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	start := time.Now()
	defer func() {
		log.GetProfiler().RecordView(time.Since(start))
	}()

	if m.degrade.ShowMinWarning {
		return m.minSizeView()
	}

	header := titleStyle.Width(m.width).MaxWidth(m.width).Render(appTitle)
	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.page.View(),
		m.menu.String(),
		m.statusView(),
	)

	for _, s := range m.selectors {
		mainView = s.Overlay(mainView)
	}

	if inspect.IsEnabled() {
		if err := inspect.WriteSnapshot(m.snapshot()); err != nil {
			log.WarningLog.Printf("failed to write inspect snapshot: %v", err)
		}
	}
	return mainView
}

// minSizeView replaces the page when the terminal is below the minimum size.
func (m *home) minSizeView() string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		ui.TextStyles.Error.Render("Terminal too small"),
		ui.TextStyles.Muted.Render(fmt.Sprintf("%dx%d, need %dx%d", m.width, m.height, layout.MinWidth, layout.MinHeight)),
	)
	msg = lipgloss.NewStyle().MaxWidth(m.width).Render(msg)
	placed := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	return lipgloss.NewStyle().MaxHeight(m.height).Render(placed)
}

func (m *home) snapshot() *inspect.Snapshot {
	state := inspect.AppStateInfo{
		Focused:      m.selectors[m.focus].ID(),
		ScrollOffset: m.page.YOffset,
	}
	if open := m.openSelector(); open != nil {
		state.OpenSelector = open.ID()
	}
	if m.statusErr {
		state.ErrorMessage = m.status
	}

	return inspect.NewSnapshot().
		WithTerminal(m.width, m.height).
		WithAppState(state).
		WithLayout(m.opts).
		WithComponents(m.InspectNode())
}

// InspectNode implements inspect.Introspectable.
func (m *home) InspectNode() *inspect.Node {
	root := inspect.NewNode("App").
		WithBounds(0, 0, m.width, m.height).
		WithState("min_warning", m.degrade.ShowMinWarning)
	root.AddChild(inspect.NewNode("Header").
		WithBounds(0, 0, m.width, headerHeight).
		WithContent(appTitle).
		WithStyles(inspect.ExtractStyleInfo(titleStyle, "title")))

	page := inspect.NewNode("Page").
		WithBounds(0, headerHeight, m.width, m.page.Height).
		WithState("scroll_offset", m.page.YOffset).
		WithState("total_lines", m.page.TotalLineCount())
	for _, s := range m.selectors {
		page.AddChild(s.InspectNode())
	}
	root.AddChild(page)

	return root.AddChild(inspect.NewNode("Menu").
		WithBounds(0, m.height-footerHeight, m.width, 1).
		WithState("state", m.menu.State()))
}
