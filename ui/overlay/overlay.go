// Package overlay draws floating panels on top of an already rendered screen.
package overlay

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

// PlaceOverlay draws fg over bg with fg's top-left corner at (top, left).
// Parts of fg outside bg are clipped; negative coordinates are allowed.
func PlaceOverlay(top, left int, fg, bg string, opts ...WhitespaceOption) string {
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)

	ws := &whitespace{}
	for _, opt := range opts {
		opt(ws)
	}

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}

		row := i - top
		if row < 0 || row >= len(fgLines) || left >= bgWidth || left+fgWidth <= 0 {
			b.WriteString(bgLine)
			continue
		}

		fgLine := fgLines[row]
		if w := ansi.PrintableRuneWidth(fgLine); w < fgWidth {
			fgLine += ws.render(fgWidth - w)
		}

		start := left
		if start < 0 {
			fgLine = cutLeft(fgLine, -start)
			start = 0
		}
		fgLine = truncate.String(fgLine, uint(bgWidth-start))

		pos := 0
		if start > 0 {
			leftPart := truncate.String(bgLine, uint(start))
			pos = ansi.PrintableRuneWidth(leftPart)
			b.WriteString(leftPart)
			if pos < start {
				b.WriteString(ws.render(start - pos))
				pos = start
			}
		}

		b.WriteString(fgLine)
		pos += ansi.PrintableRuneWidth(fgLine)

		right := cutLeft(bgLine, pos)
		bgLineWidth := ansi.PrintableRuneWidth(bgLine)
		rightWidth := ansi.PrintableRuneWidth(right)
		if rightWidth <= bgLineWidth-pos {
			b.WriteString(ws.render(bgLineWidth - rightWidth - pos))
		}
		b.WriteString(right)
	}

	return b.String()
}

// PlaceCentered draws fg in the middle of bg.
func PlaceCentered(fg, bg string, opts ...WhitespaceOption) string {
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)
	top := max((len(bgLines)-len(fgLines))/2, 0)
	left := max((bgWidth-fgWidth)/2, 0)
	return PlaceOverlay(top, left, fg, bg, opts...)
}

// cutLeft drops the first n printable cells of s. Escape sequences found in
// the dropped part are kept so styling carries over. A wide rune split by
// the cut becomes spaces.
func cutLeft(s string, n int) string {
	if n <= 0 {
		return s
	}

	var (
		kept    strings.Builder
		escapes strings.Builder
		inEsc   bool
		pos     int
	)
	for _, r := range s {
		if r == ansi.Marker || inEsc {
			inEsc = r == ansi.Marker || !ansi.IsTerminator(r)
			if pos < n {
				escapes.WriteRune(r)
			} else {
				kept.WriteRune(r)
			}
			continue
		}

		w := runewidth.RuneWidth(r)
		switch {
		case pos >= n:
			kept.WriteRune(r)
		case pos+w > n:
			kept.WriteString(strings.Repeat(" ", pos+w-n))
		}
		pos += w
	}

	return escapes.String() + kept.String()
}

func getLines(s string) (lines []string, widest int) {
	lines = strings.Split(s, "\n")
	for _, l := range lines {
		if w := ansi.PrintableRuneWidth(l); w > widest {
			widest = w
		}
	}
	return lines, widest
}

type whitespace struct {
	style termenv.Style
	chars string
}

// render returns whitespace of the given printable width.
func (w whitespace) render(width int) string {
	if width <= 0 {
		return ""
	}
	if w.chars == "" {
		w.chars = " "
	}

	r := []rune(w.chars)
	j := 0
	var b strings.Builder
	for i := 0; i < width; {
		b.WriteRune(r[j])
		i += max(runewidth.RuneWidth(r[j]), 1)
		j = (j + 1) % len(r)
	}

	// Wide fill characters can leave a gap at the end.
	if short := width - ansi.PrintableRuneWidth(b.String()); short > 0 {
		b.WriteString(strings.Repeat(" ", short))
	}

	return w.style.Styled(b.String())
}

// WhitespaceOption sets a styling rule for rendering whitespace.
type WhitespaceOption func(*whitespace)

// WithWhitespaceChars sets the characters used to fill gaps.
func WithWhitespaceChars(s string) WhitespaceOption {
	return func(w *whitespace) {
		w.chars = s
	}
}

// WithWhitespaceBackground sets the background color of filled gaps.
func WithWhitespaceBackground(c termenv.Color) WhitespaceOption {
	return func(w *whitespace) {
		w.style = w.style.Background(c)
	}
}
