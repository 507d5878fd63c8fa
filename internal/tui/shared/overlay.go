package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Composite draws fg over bg with fg's top-left cell at x, y. Parts of fg
// falling outside bg are clipped; bg lines shorter than x are padded.
func Composite(bg, fg string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}

		left := x
		if left < 0 {
			line = ansi.TruncateLeft(line, -left, "")
			left = 0
		}
		width := ansi.StringWidth(line)

		under := bgLines[row]
		if w := ansi.StringWidth(under); w < left {
			under += strings.Repeat(" ", left-w)
		}

		var rest string
		if ansi.StringWidth(under) > left+width {
			rest = ansi.TruncateLeft(under, left+width, "")
		}
		bgLines[row] = ansi.Truncate(under, left, "") + line + rest
	}
	return strings.Join(bgLines, "\n")
}

// Backdrop fills a width x height area with style, as the dimmed screen
// behind a portal.
func Backdrop(style lipgloss.Style, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	line := style.Render(strings.Repeat(" ", width))
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Frame pads content to exactly height lines so it can serve as a
// compositing background.
func Frame(content string, height int) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:max(height, 0)], "\n")
}
