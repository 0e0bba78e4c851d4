package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectorkit/config"
	"selectorkit/inspect"
	"selectorkit/testing/clock"
	"selectorkit/testing/harness"
	"selectorkit/testing/snapshot"
	"selectorkit/ui"
	"selectorkit/ui/layout"
	"selectorkit/ui/overlay"
	"selectorkit/ui/position"
)

type fixture struct {
	h         *harness.Harness
	home      *home
	clock     *clock.Manual
	statePath string
}

func newFixture(t *testing.T, width, height int) *fixture {
	t.Helper()
	statePath := filepath.Join(t.TempDir(), config.StateFileName)
	return newFixtureWithState(t, width, height, config.DefaultState(statePath), statePath)
}

func newFixtureWithState(t *testing.T, width, height int, state *config.State, statePath string) *fixture {
	t.Helper()

	// A cancelled context makes the delayed hide/keyup commands return at once.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.DefaultConfig()
	cfg.Theme = "notty"

	c := clock.NewManual(16 * time.Millisecond)
	m, err := newHome(ctx, cfg, state, c)
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, s := range m.selectors {
			s.Dispose()
		}
	})

	return &fixture{
		h:         harness.New(t, m, width, height).WithClock(c),
		home:      m,
		clock:     c,
		statePath: statePath,
	}
}

func (f *fixture) node(t *testing.T, nodeType, id string) *inspect.Node {
	t.Helper()
	n := f.home.InspectNode().Find(nodeType, id)
	require.NotNil(t, n, "%s %s not in tree", nodeType, id)
	return n
}

func TestViewFillsTerminal(t *testing.T) {
	harness.RunWithCommonSizes(t, func(t *testing.T, size harness.TerminalSize) {
		f := newFixture(t, size.Width, size.Height)
		view := f.h.View()
		assert.Equal(t, size.Height, snapshot.Lines(view))
		assert.LessOrEqual(t, snapshot.Width(view), size.Width)
	})
}

func TestTriggerGeometryMatchesView(t *testing.T) {
	f := newFixture(t, 120, 40)
	view := f.h.View()

	row, col, ok := snapshot.FindText(view, "Language:")
	require.True(t, ok)

	trigger := f.node(t, "Selector", "language")
	assert.Equal(t, row, trigger.Bounds.Y)
	assert.Equal(t, col, trigger.Bounds.X)
	assert.Equal(t, triggerIndent, col)
}

func TestOpenAnchorsPanelBelowTrigger(t *testing.T) {
	f := newFixture(t, 120, 40)

	f.h.Press(tea.KeyEnter)
	require.True(t, f.home.selectors[0].IsOpen())
	assert.Equal(t, ui.StateSelecting, f.home.menu.State())

	f.h.Advance(16 * time.Millisecond)

	trigger := f.node(t, "Selector", "language")
	panel := f.node(t, "Panel", "language")
	require.True(t, panel.Visible)
	// Offset and margin are one cell in the default config.
	assert.Equal(t, trigger.Bounds.Y+2, panel.Bounds.Y)
	assert.Equal(t, trigger.Bounds.X, panel.Bounds.X)

	line := snapshot.Line(f.h.View(), panel.Bounds.Y)
	assert.Contains(t, line, "╭")
}

func TestSelectionIsSaved(t *testing.T) {
	f := newFixture(t, 120, 40)

	f.h.Press(tea.KeyEnter)
	f.h.Press(tea.KeyDown)
	f.h.Press(tea.KeyEnter)

	assert.False(t, f.home.selectors[0].IsOpen())
	assert.Equal(t, "de", f.home.selectors[0].Value())
	assert.Equal(t, ui.StateBrowse, f.home.menu.State())

	saved, ok := config.LoadStateFrom(f.statePath).Selection("language")
	require.True(t, ok)
	assert.Equal(t, "de", saved)
}

func TestRestoresSavedSelections(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), config.StateFileName)
	state := config.DefaultState(statePath)
	state.Selections["language"] = "ja"
	state.Selections["color"] = "no-such-color"

	f := newFixtureWithState(t, 120, 40, state, statePath)
	assert.Equal(t, "ja", f.home.selectors[0].Value())
	assert.Equal(t, "violet", f.home.selectors[1].Value(), "unknown values are ignored")
	assert.Contains(t, snapshot.StripANSI(f.h.View()), "Japanese")
}

func TestKeysGoToOpenPanel(t *testing.T) {
	f := newFixture(t, 120, 40)
	f.h.Press(tea.KeyEnter)

	harness.NewKeySequence("q", "u", "i", "t").Play(f.h)
	require.True(t, f.home.selectors[0].IsOpen(), "q filters instead of quitting")
	assert.Equal(t, "quit", f.node(t, "Panel", "language").State["filter"])
	f.h.Advance(time.Second)
	snapshot.New(t).AssertContains(f.h.View(), "no matches")

	f.h.Press(tea.KeyEsc)
	assert.False(t, f.home.selectors[0].IsOpen())
	assert.Equal(t, "en", f.home.selectors[0].Value())
}

func TestTabMovesFocus(t *testing.T) {
	f := newFixture(t, 120, 40)
	require.True(t, f.home.selectors[0].Focused())

	f.h.Press(tea.KeyTab)
	assert.False(t, f.home.selectors[0].Focused())
	assert.True(t, f.home.selectors[1].Focused())

	f.h.Press(tea.KeyShiftTab)
	f.h.Press(tea.KeyShiftTab)
	assert.True(t, f.home.selectors[len(fields)-1].Focused(), "focus wraps")
}

func TestModeKeyCyclesRequestedMode(t *testing.T) {
	f := newFixture(t, 120, 40)
	require.Equal(t, layout.Dropdown, f.home.selectors[0].Mode())

	f.h.Type("m")
	assert.Equal(t, layout.RequestDropdown, f.home.opts.Mode)

	f.h.Type("m")
	assert.Equal(t, layout.RequestDialog, f.home.opts.Mode)
	for _, s := range f.home.selectors {
		assert.Equal(t, layout.Dialog, s.Mode())
	}

	f.h.Type("m")
	assert.Equal(t, layout.Auto, f.home.opts.Mode)
	assert.Equal(t, layout.Dropdown, f.home.selectors[0].Mode())
}

func TestPlacementKeyCyclesPlacement(t *testing.T) {
	f := newFixture(t, 120, 40)

	f.h.Type("p")
	assert.Equal(t, position.BottomEnd, f.home.opts.Placement)
	assert.Equal(t, position.BottomEnd, f.home.selectors[3].Options().Placement)
}

func TestNarrowTerminalOpensDialog(t *testing.T) {
	f := newFixture(t, 60, 24)
	f.h.Press(tea.KeyEnter)
	f.h.Advance(time.Second)

	panel := f.node(t, "Panel", "language")
	require.True(t, panel.Visible)
	top, left := layout.DialogOrigin(60, 24, panel.Bounds.Width, panel.Bounds.Height)
	assert.Equal(t, top, panel.Bounds.Y)
	assert.Equal(t, left, panel.Bounds.X)

	_, hasPlacement := panel.State["resolved_placement"]
	assert.False(t, hasPlacement, "dialogs are not anchored")
}

func TestResizeSwitchesMode(t *testing.T) {
	f := newFixture(t, 120, 40)
	f.h.Press(tea.KeyEnter)
	f.h.Advance(time.Second)

	f.h.Resize(70, 30)
	assert.Equal(t, layout.Dialog, f.home.selectors[0].Mode())

	f.h.Resize(120, 40)
	f.h.Advance(time.Second)
	assert.Equal(t, layout.Dropdown, f.home.selectors[0].Mode())
	_, ok := f.home.selectors[0].Position()
	assert.True(t, ok)
}

func TestScrollKeepsPanelAnchored(t *testing.T) {
	f := newFixture(t, 120, 14)
	f.h.Press(tea.KeyEnter)
	f.h.Advance(time.Second)

	before := f.node(t, "Selector", "language").Bounds.Y
	f.h.SendMsg(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	f.h.Advance(time.Second)

	require.Positive(t, f.home.page.YOffset, "page is taller than the terminal")
	trigger := f.node(t, "Selector", "language").Bounds
	assert.Equal(t, before-f.home.page.YOffset, trigger.Y)

	panel := f.node(t, "Panel", "language")
	require.True(t, panel.Visible)
	want := position.Compute(
		position.NewGeometry(trigger.Y, trigger.X, trigger.Width, trigger.Height),
		position.Size(panel.Bounds.Width, panel.Bounds.Height),
		position.BottomStart,
		position.Viewport{Width: 120, Height: 14},
		1, 1,
	)
	assert.Equal(t, want.Top, panel.Bounds.Y)
	assert.Equal(t, want.Left, panel.Bounds.X)
}

func TestSnapshotDescribesLayout(t *testing.T) {
	f := newFixture(t, 120, 40)
	f.h.Press(tea.KeyTab)
	f.h.Press(tea.KeyEnter)

	snap := f.home.snapshot()
	assert.Equal(t, 120, snap.Terminal.Width)
	assert.Equal(t, "color", snap.AppState.Focused)
	assert.Equal(t, "color", snap.AppState.OpenSelector)
	assert.Equal(t, "dropdown", snap.Layout.Mode)
	assert.Equal(t, "bottom-start", snap.Layout.Placement)

	path := filepath.Join(t.TempDir(), "inspect.json")
	require.NoError(t, inspect.WriteSnapshotToPath(snap, path))
	read, err := inspect.ReadSnapshot(path)
	require.NoError(t, err)
	require.NotNil(t, read.Components.Find("Selector", "color"))
	assert.Equal(t, true, read.Components.Find("Selector", "color").State["open"])
}

func TestInvalidConfigIsRejected(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Placement = "sideways"

	_, err := newHome(context.Background(), cfg, config.DefaultState(""), clock.NewManual(time.Millisecond))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSmallTerminalShowsWarning(t *testing.T) {
	f := newFixture(t, 30, 10)
	snap := snapshot.New(t)

	view := f.h.View()
	assert.Equal(t, 10, snapshot.Lines(view))
	assert.LessOrEqual(t, snapshot.Width(view), 30)
	snap.AssertContains(view, "Terminal too small")
	snap.AssertNotContains(view, "Language:")
	assert.Equal(t, true, f.home.InspectNode().State["min_warning"])

	f.h.Press(tea.KeyEnter)
	assert.False(t, f.home.selectors[0].IsOpen(), "keys are ignored behind the warning")

	f.h.Resize(120, 40)
	view = f.h.View()
	snap.AssertNotContains(view, "Terminal too small")
	snap.AssertContains(view, "Language:")

	f.h.Press(tea.KeyEnter)
	require.True(t, f.home.selectors[0].IsOpen())
	f.h.Resize(30, 10)
	assert.False(t, f.home.selectors[0].IsOpen(), "shrinking below the minimum closes the panel")
}

func TestShortTerminalDropsOptionDescriptions(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		wantDesc bool
	}{
		{name: "tall", height: 40, wantDesc: true},
		{name: "short", height: layout.DescriptionHideHeight - 4, wantDesc: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 120, tt.height)
			f.h.Press(tea.KeyEnter)
			f.h.Advance(time.Second)

			panel := f.node(t, "Panel", "language")
			require.True(t, panel.Visible)
			assert.LessOrEqual(t, panel.Bounds.Y+panel.Bounds.Height, tt.height, "panel fits the terminal")

			snap := snapshot.New(t)
			if tt.wantDesc {
				snap.AssertContains(f.h.View(), "default")
			} else {
				snap.AssertNotContains(f.h.View(), "default")
			}
		})
	}
}

func TestNarrowTerminalDropsBlurbs(t *testing.T) {
	f := newFixture(t, layout.BlurbHideWidth-10, 40)
	rows := f.home.triggerRows
	assert.Equal(t, 2, rows[1]-rows[0], "blank line and trigger only")

	f.h.Resize(120, 40)
	rows = f.home.triggerRows
	assert.Greater(t, rows[1]-rows[0], 2)
}

func TestPanelStyleIsRegistered(t *testing.T) {
	style, ok := inspect.GetRegisteredStyle("panel")
	require.True(t, ok)
	info := inspect.ExtractStyleInfo(style)
	assert.Equal(t, inspect.ExtractStyleInfo(overlay.PanelStyle()), info)
	assert.Equal(t, "rounded", info.Border)
}

func TestHeaderNodeCarriesTitle(t *testing.T) {
	f := newFixture(t, 120, 40)
	header := f.home.InspectNode().Find("Header", "")
	require.NotNil(t, header)
	assert.Equal(t, appTitle, header.Content)
}
