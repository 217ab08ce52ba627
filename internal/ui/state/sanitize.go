package state

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// Sanitize neutralises untrusted text for terminal display: escape
// sequences are removed, line breaks and tabs become spaces, and control or
// bidi-override runes are dropped.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	s = ansi.Strip(lineBreaks.Replace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) || unicode.Is(unicode.Bidi_Control, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Truncate shortens s to width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
