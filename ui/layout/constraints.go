package layout

// ComputeDialogSize calculates constrained dialog dimensions.
//
// The preferred size is clamped to the dialog limits and to the terminal minus
// DialogMargin on every side. On terminals smaller than the dialog minimums the
// terminal bound wins, so the result never exceeds the terminal.
func ComputeDialogSize(termWidth, termHeight, preferredWidth, preferredHeight int) (int, int) {
	maxW := min(termWidth-DialogMargin*2, DialogMaxWidth)
	maxH := min(termHeight-DialogMargin*2, DialogMaxHeight)

	w := clamp(preferredWidth, min(DialogMinWidth, maxW), maxW)
	h := clamp(preferredHeight, min(DialogMinHeight, maxH), maxH)

	return max(w, 0), max(h, 0)
}

// DialogOrigin returns the top-left cell that centers a w×h dialog.
func DialogOrigin(termWidth, termHeight, w, h int) (top, left int) {
	return max((termHeight-h)/2, 0), max((termWidth-w)/2, 0)
}

func clamp(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
