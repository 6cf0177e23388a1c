package terminal

import "github.com/fatih/color"

// Color represents terminal colors.
type Color int

// Color constants
const (
	ColorNone Color = iota
	ColorGreen
	ColorYellow
	ColorRed
	ColorBlue
	ColorGray
)

// Ratio thresholds for actual/estimate coloring.
const (
	RatioThresholdOnTrack = 1.0
	RatioThresholdOver    = 1.5
)

var attributes = map[Color]color.Attribute{
	ColorGreen:  color.FgGreen,
	ColorYellow: color.FgYellow,
	ColorRed:    color.FgRed,
	ColorBlue:   color.FgBlue,
	ColorGray:   color.FgHiBlack,
}

// Colorize applies color to text. If NoColor is true, returns text unchanged.
func (c Config) Colorize(text string, clr Color) string {
	attr, ok := attributes[clr]
	if c.NoColor || !ok {
		return text
	}

	painter := color.New(attr)
	painter.EnableColor()

	return painter.Sprint(text)
}

// ColorForRatio returns the color for an actual/estimate ratio: green when on
// or under estimate, yellow up to RatioThresholdOver, red beyond.
func ColorForRatio(ratio float64) Color {
	if ratio <= RatioThresholdOnTrack {
		return ColorGreen
	}

	if ratio <= RatioThresholdOver {
		return ColorYellow
	}

	return ColorRed
}
