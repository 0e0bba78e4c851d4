package layout

// Degradation holds flags indicating which UI features should be hidden or simplified.
// Features are listed in order of degradation priority (first to hide).
type Degradation struct {
	// Panel degradation
	HideOptionDescriptions bool // Hide the description under the cursor row (height < 20)
	HideMoreIndicator      bool // Hide the "…N more" row (height < 16)

	// Page degradation
	HidePageBlurbs bool // Hide the line under each trigger (width < 60)

	// Critical degradation
	ShowMinWarning bool // Terminal too small warning (below MinWidth/MinHeight)
}

// Threshold constants for degradation
const (
	DescriptionHideHeight = 20
	MoreIndicatorHeight   = 16
	BlurbHideWidth        = 60
)

// Rows an option list spends on things other than options.
const (
	panelBorderRows = 2
	panelTitleRows  = 1
	panelFilterRows = 1
)

// ComputeDegradation calculates which UI features should be degraded.
func ComputeDegradation(width, height int) Degradation {
	return Degradation{
		HideOptionDescriptions: height < DescriptionHideHeight,
		HideMoreIndicator:      height < MoreIndicatorHeight,

		HidePageBlurbs: width < BlurbHideWidth,

		ShowMinWarning: width < MinWidth || height < MinHeight,
	}
}

// ShouldShowDescription returns true if option descriptions should be shown.
func (d Degradation) ShouldShowDescription() bool {
	return !d.HideOptionDescriptions
}

// ShouldShowMoreIndicator returns true if the hidden-row count should be shown.
func (d Degradation) ShouldShowMoreIndicator() bool {
	return !d.HideMoreIndicator
}

// PanelChrome returns the rows an open panel uses besides its option rows.
func (d Degradation) PanelChrome() int {
	rows := panelBorderRows + panelTitleRows + panelFilterRows
	if d.ShouldShowDescription() {
		rows++
	}
	if d.ShouldShowMoreIndicator() {
		rows++
	}
	return rows
}

// DropdownRows caps how many options an anchored panel shows so the whole
// panel fits between the viewport margins. It never returns less than one.
func (d Degradation) DropdownRows(viewportHeight, margin, maxRows int) int {
	if viewportHeight <= 0 {
		return maxRows
	}
	return max(1, min(maxRows, viewportHeight-2*margin-d.PanelChrome()))
}
