package terminal

import (
	"fmt"
	"math"
	"strings"
)

// Progress bar characters.
const (
	ProgressFilled = "█"
	ProgressEmpty  = "░"
)

// DrawProgressBar draws a progress bar of the given width.
// Value is clamped to [0, 1] range.
// Example: DrawProgressBar(0.7, 10) returns "███████░░░".
func DrawProgressBar(value float64, width int) string {
	if value < 0 || math.IsNaN(value) {
		value = 0
	}

	if value > 1 {
		value = 1
	}

	filled := int(value * float64(width))
	empty := width - filled

	return strings.Repeat(ProgressFilled, filled) + strings.Repeat(ProgressEmpty, empty)
}

// PercentMultiplier converts 0-1 to 0-100.
const PercentMultiplier = 100

// DrawShareBar draws a labeled share bar.
// Example: "workday    ████████████████░░░░  80%".
func DrawShareBar(label string, share float64, labelWidth, barWidth int) string {
	paddedLabel := PadRight(TruncateWithEllipsis(label, labelWidth), labelWidth)
	bar := DrawProgressBar(share, barWidth)

	pct := 0
	if !math.IsNaN(share) {
		pct = int(math.Min(math.Max(share, 0), 1) * PercentMultiplier)
	}

	return fmt.Sprintf("%s %s %3d%%", paddedLabel, bar, pct)
}
