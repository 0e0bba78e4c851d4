package layout

// Width breakpoints
const (
	// DefaultBreakpoint is the widest terminal that still switches auto
	// selectors to dialog mode.
	DefaultBreakpoint = 80

	// MinWidth is the narrowest terminal the demo lays out normally.
	MinWidth = 40
)

// Height breakpoints
const (
	// MinHeight is the shortest terminal the demo lays out normally.
	MinHeight = 12
)

// Anchoring defaults, in cells.
const (
	// DefaultOffset is the gap between trigger and panel.
	DefaultOffset = 8

	// DefaultMargin is the minimum distance between panel and viewport edge.
	DefaultMargin = 8
)

// Dialog constraints
const (
	// DialogMaxWidth is the maximum dialog width.
	DialogMaxWidth = 80

	// DialogMaxHeight is the maximum dialog height.
	DialogMaxHeight = 25

	// DialogMinWidth is the minimum dialog width.
	DialogMinWidth = 20

	// DialogMinHeight is the minimum dialog height.
	DialogMinHeight = 5

	// DialogMargin is the minimum margin from terminal edges.
	DialogMargin = 2
)
