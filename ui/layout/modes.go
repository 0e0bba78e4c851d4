// Package layout decides how a selector presents its panel for the current
// terminal size.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a mode name cannot be parsed.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is the resolved presentation of a selector panel.
type Mode int

const (
	// Dropdown anchors the panel to its trigger.
	Dropdown Mode = iota

	// Dialog shows the panel as a centered overlay that ignores the trigger.
	Dialog
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case Dropdown:
		return "dropdown"
	case Dialog:
		return "dialog"
	default:
		return "unknown"
	}
}

// RequestedMode is what the caller asks for. Auto defers to the viewport width.
type RequestedMode int

const (
	Auto RequestedMode = iota
	RequestDropdown
	RequestDialog
)

// String returns the config/CLI name of the requested mode.
func (r RequestedMode) String() string {
	switch r {
	case Auto:
		return "auto"
	case RequestDropdown:
		return "dropdown"
	case RequestDialog:
		return "dialog"
	default:
		return "unknown"
	}
}

// ParseRequestedMode parses "auto", "dropdown" or "dialog" (case-insensitive).
// An empty string means auto.
func ParseRequestedMode(s string) (RequestedMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "dropdown":
		return RequestDropdown, nil
	case "dialog":
		return RequestDialog, nil
	default:
		return Auto, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// ResolveMode picks the presentation for a selector.
//
// An explicit dropdown or dialog request always wins. Auto resolves to Dialog
// when the viewport is at or below the breakpoint, otherwise Dropdown.
// Negative widths count as zero.
func ResolveMode(requested RequestedMode, viewportWidth, breakpoint int) Mode {
	switch requested {
	case RequestDropdown:
		return Dropdown
	case RequestDialog:
		return Dialog
	}

	if viewportWidth < 0 {
		viewportWidth = 0
	}
	if viewportWidth <= breakpoint {
		return Dialog
	}
	return Dropdown
}
