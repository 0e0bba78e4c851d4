package position

// Compute places a panel next to its trigger inside the viewport.
//
// The requested placement picks the side (top/bottom) and alignment
// (start/center/end). Horizontal overflow only moves Left; the alignment in
// the resolved placement is kept so carets stay stable. Vertical overflow on
// the opening side flips to the other side when the panel fits there,
// otherwise Top is clamped into the viewport and the requested side is kept.
// A panel larger than the viewport is pinned to the margin and may clip; for
// a panel wider than the viewport this means Left is margin rather than the
// negative vw-pw-margin a plain right-edge clamp would give.
func Compute(trigger, panel Geometry, requested Placement, viewport Viewport, offset, margin int) Position {
	left := anchorLeft(trigger, panel, requested.Align())
	left = clampLeft(left, panel.Width, viewport.Width, margin)

	resolved := requested
	top := anchorTop(trigger, panel, requested.Family(), offset)

	switch requested.Family() {
	case FamilyBottom:
		if top+panel.Height > viewport.Height-margin {
			alt := anchorTop(trigger, panel, FamilyTop, offset)
			if alt >= margin {
				top, resolved = alt, requested.Flip()
			} else {
				top = clampTop(top, panel.Height, viewport.Height, margin)
			}
		}
	case FamilyTop:
		if top < margin {
			alt := anchorTop(trigger, panel, FamilyBottom, offset)
			if alt+panel.Height <= viewport.Height-margin {
				top, resolved = alt, requested.Flip()
			} else {
				top = clampTop(top, panel.Height, viewport.Height, margin)
			}
		}
	}

	// A trigger scrolled past the opposite edge can still leave the panel
	// outside the viewport.
	if top < margin || top+panel.Height > viewport.Height-margin {
		top = clampTop(top, panel.Height, viewport.Height, margin)
	}

	return Position{Top: top, Left: left, Placement: resolved}
}

func anchorTop(trigger, panel Geometry, f Family, offset int) int {
	if f == FamilyTop {
		return trigger.Top - panel.Height - offset
	}
	return trigger.Bottom + offset
}

func anchorLeft(trigger, panel Geometry, a Align) int {
	switch a {
	case AlignStart:
		return trigger.Left
	case AlignEnd:
		return trigger.Right - panel.Width
	default:
		return trigger.Left + trigger.Width/2 - panel.Width/2
	}
}

// clampLeft pulls the panel back inside the horizontal margins. A panel
// wider than the viewport is pinned to the left margin.
func clampLeft(left, width, viewportWidth, margin int) int {
	if left < margin {
		return margin
	}
	if left+width > viewportWidth-margin {
		return max(margin, viewportWidth-width-margin)
	}
	return left
}

func clampTop(top, height, viewportHeight, margin int) int {
	return max(margin, min(top, viewportHeight-height-margin))
}
