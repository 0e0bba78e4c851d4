package app

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"selectorkit/log"
	"selectorkit/ui/overlay"
)

// field is one selector on the demo page, followed by a short paragraph.
type field struct {
	id      string
	label   string
	blurb   string
	options []overlay.Option
}

var fields = []field{
	{
		id:    "language",
		label: "Language",
		blurb: "The panel opens **below** the trigger when there is room and flips " +
			"above it near the bottom of the terminal. Scroll the page with the panel open.",
		options: []overlay.Option{
			{Value: "en", Label: "English", Description: "default", Available: true},
			{Value: "de", Label: "German", Available: true},
			{Value: "ja", Label: "Japanese", Available: true},
			{Value: "fr", Label: "French", Description: "translation in progress", Available: false},
			{Value: "es", Label: "Spanish", Available: true},
			{Value: "pt", Label: "Portuguese", Available: true},
			{Value: "ko", Label: "Korean", Available: true},
			{Value: "zh", Label: "Chinese", Available: true},
			{Value: "nl", Label: "Dutch", Available: true},
			{Value: "sv", Label: "Swedish", Available: true},
		},
	},
	{
		id:    "color",
		label: "Accent",
		blurb: "Type while the panel is open to filter. The panel shrinks and is " +
			"positioned again on the next frame.",
		options: []overlay.Option{
			{Value: "violet", Label: "Violet", Available: true},
			{Value: "blue", Label: "Blue", Available: true},
			{Value: "teal", Label: "Teal", Available: true},
			{Value: "green", Label: "Green", Available: true},
			{Value: "amber", Label: "Amber", Available: true},
			{Value: "red", Label: "Red", Available: true},
		},
	},
	{
		id:    "size",
		label: "Density",
		blurb: "Resize the terminal to 80 columns or fewer and the same selector " +
			"opens as a centered dialog instead.",
		options: []overlay.Option{
			{Value: "compact", Label: "Compact", Description: "no padding", Available: true},
			{Value: "cozy", Label: "Cozy", Available: true},
			{Value: "comfortable", Label: "Comfortable", Description: "extra spacing", Available: true},
		},
	},
	{
		id:    "template",
		label: "Template",
		blurb: "Press `p` to change the preferred placement and `m` to force a mode.",
		options: []overlay.Option{
			{Value: "blank", Label: "Blank", Available: true},
			{Value: "readme", Label: "README", Description: "project overview", Available: true},
			{Value: "changelog", Label: "CHANGELOG", Description: "keep a changelog format", Available: true},
			{Value: "adr", Label: "Decision record", Available: true},
			{Value: "rfc", Label: "RFC", Description: "requires review", Available: false},
		},
	},
}

const introMarkdown = `# Anchored selectors

Each trigger below opens an option list that stays attached to it while the
page scrolls and the terminal resizes. Use **tab** to move between triggers
and **enter** to open one.`

const outroMarkdown = `---

Selections are remembered between runs. Set ` + "`SK_INSPECT=1`" + ` to write a
layout snapshot on every frame.`

// markdownRenderer renders page text with glamour. Results are cached by
// content hash and width.
type markdownRenderer struct {
	theme string
	cache map[string]string
}

func newMarkdownRenderer(theme string) *markdownRenderer {
	return &markdownRenderer{
		theme: theme,
		cache: make(map[string]string),
	}
}

func (r *markdownRenderer) styleOption() glamour.TermRendererOption {
	switch strings.ToLower(r.theme) {
	case "", "auto":
		return glamour.WithAutoStyle()
	default:
		return glamour.WithStandardStyle(strings.ToLower(r.theme))
	}
}

// Render returns the terminal-styled rendering of md.
func (r *markdownRenderer) Render(md string, width int) string {
	if md == "" {
		return ""
	}

	key := cacheKey(md, width)
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := glamour.NewTermRenderer(
		r.styleOption(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.WarningLog.Printf("markdown renderer: %v", err)
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		log.WarningLog.Printf("markdown render: %v", err)
		return md
	}

	// Glamour pads with blank lines and trailing spaces.
	rendered = strings.Trim(rendered, "\n")

	r.cache[key] = rendered
	return rendered
}

func cacheKey(content string, width int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], width)
}
