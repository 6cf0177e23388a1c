package terminal

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to truncated strings.
const Ellipsis = "..."

// TruncateWithEllipsis truncates s to maxWidth cells, adding "..." if truncated.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// PadRight pads s with spaces on the right to reach width cells.
// If s is already wider, returns s unchanged.
func PadRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}

	return s + strings.Repeat(" ", width-w)
}

// PadLeft pads s with spaces on the left to reach width cells.
// If s is already wider, returns s unchanged.
func PadLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}

	return strings.Repeat(" ", width-w) + s
}
