package inspect

import (
	"fmt"
	"strings"
	"time"

	"selectorkit/ui/anchor"
	"selectorkit/ui/layout"
)

// Snapshot represents a complete UI state at a point in time.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	Terminal TerminalInfo `json:"terminal"`

	AppState AppStateInfo `json:"app_state"`

	// Layout describes how selectors are configured to present.
	Layout LayoutInfo `json:"layout"`

	// Components is the root of the component tree.
	Components *Node `json:"components"`

	Breakpoints []BreakpointInfo `json:"breakpoints"`
}

// TerminalInfo contains terminal dimensions.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AppStateInfo contains application-level state.
type AppStateInfo struct {
	// Focused is the ID of the focused selector.
	Focused string `json:"focused,omitempty"`

	// OpenSelector is the ID of the selector whose panel is showing.
	OpenSelector string `json:"open_selector,omitempty"`

	// ScrollOffset is the page scroll in rows.
	ScrollOffset int `json:"scroll_offset"`

	ErrorMessage string `json:"error_message,omitempty"`
}

// LayoutInfo contains the shared anchoring configuration.
type LayoutInfo struct {
	// Mode is the mode resolved for the current terminal width.
	Mode string `json:"mode"`

	// RequestedMode is what the configuration asks for.
	RequestedMode string `json:"requested_mode"`

	Placement  string `json:"placement"`
	Breakpoint int    `json:"breakpoint"`
	Offset     int    `json:"offset"`
	Margin     int    `json:"margin"`
}

// BreakpointInfo contains information about a responsive breakpoint.
type BreakpointInfo struct {
	Name string `json:"name"`

	// Threshold is the dimension threshold.
	Threshold int `json:"threshold"`

	// Active indicates if this breakpoint is currently triggered.
	Active bool `json:"active"`

	// Dimension is "width" or "height".
	Dimension string `json:"dimension"`
}

// NewSnapshot creates a new snapshot with current timestamp.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}
}

// WithTerminal sets terminal info and returns the snapshot for chaining.
func (s *Snapshot) WithTerminal(width, height int) *Snapshot {
	s.Terminal = TerminalInfo{Width: width, Height: height}
	return s
}

// WithAppState sets app state and returns the snapshot for chaining.
func (s *Snapshot) WithAppState(state AppStateInfo) *Snapshot {
	s.AppState = state
	return s
}

// WithLayout records the anchoring options and the breakpoints they imply
// for the current terminal size.
func (s *Snapshot) WithLayout(opts anchor.Options) *Snapshot {
	mode := layout.ResolveMode(opts.Mode, s.Terminal.Width, opts.Breakpoint)
	s.Layout = LayoutInfo{
		Mode:          mode.String(),
		RequestedMode: opts.Mode.String(),
		Placement:     opts.Placement.String(),
		Breakpoint:    opts.Breakpoint,
		Offset:        opts.Offset,
		Margin:        opts.Margin,
	}

	s.Breakpoints = []BreakpointInfo{
		{Name: "dialog", Threshold: opts.Breakpoint, Active: mode == layout.Dialog && opts.Mode == layout.Auto, Dimension: "width"},
		{Name: "min_width", Threshold: layout.MinWidth, Active: s.Terminal.Width < layout.MinWidth, Dimension: "width"},
		{Name: "min_height", Threshold: layout.MinHeight, Active: s.Terminal.Height < layout.MinHeight, Dimension: "height"},
	}

	return s
}

// WithComponents sets the component tree root.
func (s *Snapshot) WithComponents(root *Node) *Snapshot {
	s.Components = root
	return s
}

// ToText returns a human-readable text representation.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== UI Snapshot ===\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", s.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Terminal: %dx%d\n", s.Terminal.Width, s.Terminal.Height))
	if s.AppState.Focused != "" {
		b.WriteString(fmt.Sprintf("Focused: %s\n", s.AppState.Focused))
	}
	if s.AppState.OpenSelector != "" {
		b.WriteString(fmt.Sprintf("Open: %s\n", s.AppState.OpenSelector))
	}

	b.WriteString("\n--- Layout ---\n")
	b.WriteString(fmt.Sprintf("Mode: %s (requested %s)\n", s.Layout.Mode, s.Layout.RequestedMode))
	b.WriteString(fmt.Sprintf("Placement: %s\n", s.Layout.Placement))
	b.WriteString(fmt.Sprintf("Offset: %d  Margin: %d\n", s.Layout.Offset, s.Layout.Margin))

	b.WriteString("\n--- Active Breakpoints ---\n")
	for _, bp := range s.Breakpoints {
		status := "[ ]"
		if bp.Active {
			status = "[X]"
		}
		b.WriteString(fmt.Sprintf("  %s %s (threshold: %d %s)\n", status, bp.Name, bp.Threshold, bp.Dimension))
	}

	if s.Components != nil {
		b.WriteString("\n--- Components ---\n")
		writeNodeText(&b, s.Components, 0)
	}

	return b.String()
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	b.WriteString(fmt.Sprintf("%s%s", prefix, node.Type))
	if node.ID != "" {
		b.WriteString(fmt.Sprintf(" [%s]", node.ID))
	}
	b.WriteString(fmt.Sprintf(" (%dx%d@%d,%d)", node.Bounds.Width, node.Bounds.Height, node.Bounds.Y, node.Bounds.X))
	if !node.Visible {
		b.WriteString(" hidden")
	}
	b.WriteString("\n")

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
