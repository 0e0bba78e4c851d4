// Package harness provides test utilities for Bubble Tea models.
// It wraps models and provides methods for simulating user input, running
// the commands they return, and moving a manual clock.
package harness

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"selectorkit/testing/clock"
)

// maxCmdDepth bounds how many follow-up commands Run executes, so a command
// that keeps re-arming itself cannot hang a test.
const maxCmdDepth = 32

// Harness wraps a tea.Model for testing
type Harness struct {
	t      *testing.T
	model  tea.Model
	width  int
	height int
	clock  *clock.Manual
}

// New creates a new Harness for testing the given model
func New(t *testing.T, model tea.Model, width, height int) *Harness {
	h := &Harness{
		t:      t,
		model:  model,
		width:  width,
		height: height,
	}
	// Initialize with window size
	h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
	return h
}

// WithClock attaches the manual clock the model's scheduler runs on.
func (h *Harness) WithClock(c *clock.Manual) *Harness {
	h.clock = c
	return h
}

// Advance moves the attached clock forward, running due callbacks.
func (h *Harness) Advance(d time.Duration) {
	h.t.Helper()
	if h.clock == nil {
		h.t.Fatal("harness has no clock; call WithClock")
	}
	h.clock.Advance(d)
}

// Run executes cmd and feeds the resulting messages back into the model,
// following batches and any commands the model returns in turn.
// Commands must not block.
func (h *Harness) Run(cmd tea.Cmd) {
	h.t.Helper()
	h.run(cmd, 0)
}

func (h *Harness) run(cmd tea.Cmd, depth int) {
	if cmd == nil {
		return
	}
	if depth > maxCmdDepth {
		h.t.Fatalf("command chain deeper than %d", maxCmdDepth)
	}

	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c, depth+1)
		}
	default:
		h.run(h.SendMsg(msg), depth+1)
	}
}

// Press sends a special key and runs whatever command it produces.
func (h *Harness) Press(keyType tea.KeyType) {
	h.t.Helper()
	h.Run(h.SendSpecialKey(keyType))
}

// Type sends runes as a single key message and runs the resulting command.
func (h *Harness) Type(s string) {
	h.t.Helper()
	h.Run(h.SendKey(s))
}

// SendMsg sends a tea.Msg to the model and updates it
func (h *Harness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return cmd
}

// SendKey sends a key press message
func (h *Harness) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendSpecialKey sends a special key (Enter, Tab, etc.)
func (h *Harness) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: keyType})
}

// Resize simulates a terminal resize
func (h *Harness) Resize(width, height int) tea.Cmd {
	h.width = width
	h.height = height
	return h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
}

// View returns the current rendered view
func (h *Harness) View() string {
	return h.model.View()
}

// Model returns the underlying model (for type assertions)
func (h *Harness) Model() tea.Model {
	return h.model
}

// Width returns the current width
func (h *Harness) Width() int {
	return h.width
}

// Height returns the current height
func (h *Harness) Height() int {
	return h.height
}

// CommonSizes contains common terminal sizes for testing
var CommonSizes = []TerminalSize{
	{Name: "narrow", Width: 60, Height: 24},
	{Name: "minimum", Width: 80, Height: 24},
	{Name: "compact", Width: 100, Height: 30},
	{Name: "standard", Width: 120, Height: 40},
	{Name: "large", Width: 200, Height: 50},
	{Name: "wide", Width: 200, Height: 24},
	{Name: "tall", Width: 80, Height: 60},
}

// TerminalSize represents a terminal size for testing
type TerminalSize struct {
	Name   string
	Width  int
	Height int
}

// RunWithSizes runs a test function for each terminal size
func RunWithSizes(t *testing.T, sizes []TerminalSize, fn func(t *testing.T, size TerminalSize)) {
	for _, size := range sizes {
		t.Run(size.Name, func(t *testing.T) {
			fn(t, size)
		})
	}
}

// RunWithCommonSizes runs a test function for all common terminal sizes
func RunWithCommonSizes(t *testing.T, fn func(t *testing.T, size TerminalSize)) {
	RunWithSizes(t, CommonSizes, fn)
}

// KeySequence represents a sequence of key presses
type KeySequence []tea.Msg

// NewKeySequence creates a key sequence from string input
func NewKeySequence(keys ...string) KeySequence {
	var seq KeySequence
	for _, key := range keys {
		seq = append(seq, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
	return seq
}

// Play sends all messages in the sequence to the harness
func (seq KeySequence) Play(h *Harness) {
	for _, msg := range seq {
		h.SendMsg(msg)
	}
}
