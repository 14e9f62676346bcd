package vellum

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// StripANSI removes every ANSI escape sequence from s. The result contains
// no ESC byte, and stripping is idempotent.
func StripANSI(s string) string {
	return xansi.Strip(s)
}

// VisibleWidth returns the printable column width of s, ignoring any embedded
// ANSI sequences. Wide runes (CJK, emoji) count their terminal cell width.
func VisibleWidth(s string) int {
	return xansi.StringWidth(s)
}

// VisualRows returns the number of terminal rows s occupies when word-wrapped
// to the given width. The result is always at least 1. A width of 0 is the
// "no wrapping" sentinel and always returns 1. Embedded ANSI sequences do not
// affect the count.
func VisualRows(s string, width int) int {
	if width <= 0 {
		return 1
	}
	rows := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		rows += len(wrapLine(line, width))
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// splitContentLines splits text on line breaks, accepting both LF and CRLF.
func splitContentLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// wrapLine greedy word-wraps a single line to width columns. Words longer
// than the width are hard-broken rather than overflowing the line. ANSI
// sequences pass through without counting toward the width.
func wrapLine(line string, width int) []string {
	if width <= 0 || VisibleWidth(line) <= width {
		return []string{line}
	}
	wrapped := xansi.Wrap(line, width, "")
	return strings.Split(wrapped, "\n")
}

// truncateLine cuts a line to at most width visible columns, preserving any
// ANSI sequences it carries.
func truncateLine(line string, width int) string {
	if width <= 0 || VisibleWidth(line) <= width {
		return line
	}
	return xansi.Truncate(line, width, "")
}

// padLine extends a line with trailing spaces to exactly width visible
// columns. Lines already at or past the width are returned unchanged.
func padLine(line string, width int) string {
	gap := width - VisibleWidth(line)
	if gap <= 0 {
		return line
	}
	return line + strings.Repeat(" ", gap)
}

// spliceLine overwrites the columns [col, col+VisibleWidth(overlay)) of base
// with overlay, keeping the rest of base intact. Used by the overlay
// compositor for column-anchored placement.
func spliceLine(base, overlay string, col, width int) string {
	ow := VisibleWidth(overlay)
	if ow == 0 {
		return base
	}
	base = padLine(base, col+ow)
	left := xansi.Cut(base, 0, col)
	right := xansi.Cut(base, col+ow, VisibleWidth(base))
	out := left + overlay + right
	if width > 0 {
		out = truncateLine(out, width)
	}
	return out
}
