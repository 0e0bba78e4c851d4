// Package position computes where an anchored panel goes relative to its
// trigger. Everything here is pure: geometry is passed in already measured.
package position

import "fmt"

// Geometry is a snapshot of an element's box in viewport cells.
// Right and Bottom are exclusive edges.
type Geometry struct {
	Top, Left     int
	Width, Height int
	Right, Bottom int
}

// NewGeometry creates a Geometry and derives its right and bottom edges.
func NewGeometry(top, left, width, height int) Geometry {
	return Geometry{
		Top:    top,
		Left:   left,
		Width:  width,
		Height: height,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Size creates a Geometry at the origin, for panels whose position is not known yet.
func Size(width, height int) Geometry {
	return NewGeometry(0, 0, width, height)
}

// IsEmpty returns true if the box has zero or negative area.
func (g Geometry) IsEmpty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// Contains returns true if the cell (row, col) is inside the box.
func (g Geometry) Contains(row, col int) bool {
	return row >= g.Top && row < g.Bottom && col >= g.Left && col < g.Right
}

// MoveTo returns the same size box with its top-left corner at (top, left).
func (g Geometry) MoveTo(top, left int) Geometry {
	return NewGeometry(top, left, g.Width, g.Height)
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", g.Width, g.Height, g.Top, g.Left)
}

// Viewport is the visible area the panel must stay inside.
type Viewport struct {
	Width, Height int
}

// Position is the engine's output: where the panel's top-left corner goes and
// which placement it actually ended up with.
type Position struct {
	Top       int
	Left      int
	Placement Placement
}

func (p Position) String() string {
	return fmt.Sprintf("%s (%d,%d)", p.Placement, p.Top, p.Left)
}
