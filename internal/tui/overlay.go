package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayCenter draws box on top of base, centred in a width x height
// screen. Lines of base outside the box are left untouched.
func overlayCenter(base, box string, width, height int) string {
	baseLines := splitLines(base)
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	boxLines := splitLines(box)
	boxW := maxLineWidth(boxLines)
	x := max((width-boxW)/2, 0)
	y := max((height-len(boxLines))/2, 0)

	for i, line := range boxLines {
		row := y + i
		if row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(target, x+boxW, "")
		baseLines[row] = left + padRight(line, boxW) + right
	}
	return strings.Join(baseLines, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight pads s with spaces to a visual width of width.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens s to width cells, ending with "…" when cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
