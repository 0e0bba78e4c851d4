package position

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlacement is returned when a placement name cannot be parsed.
var ErrUnknownPlacement = errors.New("unknown placement")

// Placement describes how a panel is anchored to its trigger: which side it
// opens on and how it is aligned along that side.
type Placement int

const (
	Bottom Placement = iota
	BottomStart
	BottomEnd
	Top
	TopStart
	TopEnd
)

// Family is the vertical side of the trigger a placement opens on.
type Family int

const (
	FamilyBottom Family = iota
	FamilyTop
)

// Align is the horizontal alignment suffix of a placement.
type Align int

const (
	AlignCenter Align = iota
	AlignStart
	AlignEnd
)

var placementNames = map[Placement]string{
	Bottom:      "bottom",
	BottomStart: "bottom-start",
	BottomEnd:   "bottom-end",
	Top:         "top",
	TopStart:    "top-start",
	TopEnd:      "top-end",
}

func (p Placement) String() string {
	if name, ok := placementNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePlacement parses names such as "bottom-start". An empty string means BottomStart.
func ParsePlacement(s string) (Placement, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return BottomStart, nil
	}
	for p, name := range placementNames {
		if name == s {
			return p, nil
		}
	}
	return BottomStart, fmt.Errorf("%w: %q", ErrUnknownPlacement, s)
}

// Placements lists every placement in declaration order.
func Placements() []Placement {
	return []Placement{Bottom, BottomStart, BottomEnd, Top, TopStart, TopEnd}
}

// Family returns the side the placement opens on.
func (p Placement) Family() Family {
	switch p {
	case Top, TopStart, TopEnd:
		return FamilyTop
	default:
		return FamilyBottom
	}
}

// Align returns the alignment suffix.
func (p Placement) Align() Align {
	switch p {
	case BottomStart, TopStart:
		return AlignStart
	case BottomEnd, TopEnd:
		return AlignEnd
	default:
		return AlignCenter
	}
}

// Flip returns the placement on the opposite side with the same alignment.
func (p Placement) Flip() Placement {
	return compose(p.Family().opposite(), p.Align())
}

func (f Family) opposite() Family {
	if f == FamilyTop {
		return FamilyBottom
	}
	return FamilyTop
}

func compose(f Family, a Align) Placement {
	base := Bottom
	if f == FamilyTop {
		base = Top
	}
	return base + Placement(a)
}
