package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func grid(width, height int, fill string) string {
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(fill, width)
	}
	return strings.Join(rows, "\n")
}

func TestPlaceOverlay(t *testing.T) {
	bg := grid(10, 4, ".")
	fg := "ab\ncd"

	tests := []struct {
		name      string
		top, left int
		want      []string
	}{
		{
			name: "inside",
			top:  1, left: 3,
			want: []string{"..........", "...ab.....", "...cd.....", ".........."},
		},
		{
			name: "clipped right",
			top:  0, left: 9,
			want: []string{".........a", ".........c", "..........", ".........."},
		},
		{
			name: "clipped left",
			top:  2, left: -1,
			want: []string{"..........", "..........", "b.........", "d........."},
		},
		{
			name: "clipped bottom",
			top:  3, left: 0,
			want: []string{"..........", "..........", "..........", "ab........"},
		},
		{
			name: "fully outside",
			top:  -5, left: 0,
			want: []string{"..........", "..........", "..........", ".........."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaceOverlay(tt.top, tt.left, fg, bg)
			assert.Equal(t, tt.want, strings.Split(got, "\n"))
		})
	}
}

func TestPlaceOverlayPadsRaggedForeground(t *testing.T) {
	got := PlaceOverlay(0, 0, "abc\nd", grid(5, 2, "."))
	assert.Equal(t, []string{"abc..", "d  .."}, strings.Split(got, "\n"))
}

func TestPlaceOverlayKeepsStyledBackground(t *testing.T) {
	bg := "\x1b[31m" + strings.Repeat("x", 6) + "\x1b[0m"
	got := PlaceOverlay(0, 2, "ab", bg)
	assert.Equal(t, "xxabxx", ansi.Strip(got))
	assert.Equal(t, 6, ansi.StringWidth(got))
}

func TestPlaceOverlayWideRunes(t *testing.T) {
	bg := "日本語テキ"
	got := PlaceOverlay(0, 3, "ab", bg)
	assert.Equal(t, 10, ansi.StringWidth(got))
	assert.Contains(t, got, "ab")
}

func TestPlaceCentered(t *testing.T) {
	got := PlaceCentered("ab", grid(6, 3, "."))
	assert.Equal(t, []string{"......", "..ab..", "......"}, strings.Split(got, "\n"))
}

func TestWhitespaceChars(t *testing.T) {
	got := PlaceOverlay(0, 0, "abc\nd", grid(5, 2, "."), WithWhitespaceChars("-"))
	assert.Equal(t, []string{"abc..", "d--.."}, strings.Split(got, "\n"))
}

func TestCutLeft(t *testing.T) {
	assert.Equal(t, "cdef", cutLeft("abcdef", 2))
	assert.Equal(t, "abcdef", cutLeft("abcdef", 0))
	assert.Equal(t, "", cutLeft("ab", 5))
	assert.Equal(t, " 本", cutLeft("日本", 1), "split wide rune becomes a space")
	assert.Equal(t, "\x1b[1mcd", cutLeft("\x1b[1mabcd", 2))
}
