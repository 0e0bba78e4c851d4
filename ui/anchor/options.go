package anchor

import (
	"time"

	"selectorkit/ui/layout"
	"selectorkit/ui/position"
)

// Timing defaults.
const (
	DefaultSettleDelay    = 100 * time.Millisecond
	DefaultScrollThrottle = 16 * time.Millisecond
	DefaultResizeDebounce = 150 * time.Millisecond
)

// Options configures a Controller.
type Options struct {
	// Mode is the requested presentation. Auto switches on Breakpoint.
	Mode       layout.RequestedMode
	Placement  position.Placement
	Breakpoint int

	// Offset is the gap between trigger and panel; Margin the minimum gap
	// between panel and viewport edge. Zero is a valid value for both.
	Offset int
	Margin int

	// Zero durations fall back to the defaults.
	SettleDelay    time.Duration
	ScrollThrottle time.Duration
	ResizeDebounce time.Duration
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Mode:           layout.Auto,
		Placement:      position.BottomStart,
		Breakpoint:     layout.DefaultBreakpoint,
		Offset:         layout.DefaultOffset,
		Margin:         layout.DefaultMargin,
		SettleDelay:    DefaultSettleDelay,
		ScrollThrottle: DefaultScrollThrottle,
		ResizeDebounce: DefaultResizeDebounce,
	}
}

func (o Options) withDefaults() Options {
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	if o.ScrollThrottle <= 0 {
		o.ScrollThrottle = DefaultScrollThrottle
	}
	if o.ResizeDebounce <= 0 {
		o.ResizeDebounce = DefaultResizeDebounce
	}
	return o
}
