package launcher

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayAt composites fg on top of bg with its top-left corner at (x, y).
// Cells of bg outside fg's footprint are kept.
func overlayAt(bg, fg string, x, y, width, height int) string {
	bgLines := splitLines(bg)
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}
	fgLines := splitLines(fg)
	fgWidth := maxLineWidth(fgLines)

	for i, line := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) || row >= height {
			continue
		}
		target := padRight(bgLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		line = padRight(line, fgWidth)
		right := ansi.TruncateLeft(target, x+fgWidth, "")
		bgLines[row] = left + line + right
	}
	return strings.Join(bgLines, "\n")
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
		m = max(m, ansi.StringWidth(line))
	}
	return m
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
