// Package timespan renders elapsed minutes as a cascading week/day/hour/minute/second
// breakdown. Exact minute counts and approximate (floating point) minute counts share
// one value type; only approximate values can carry non-finite results.
package timespan

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Placeholder is rendered for zero-length and non-finite spans.
const Placeholder = "-"

// Unit sizes in seconds.
const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour
	SecondsPerWeek   = 7 * SecondsPerDay
)

const (
	clauseSeparator = " / "
	// roundingScale keeps two decimals in the single-unit equivalent.
	roundingScale = 100
	// roundingSlack absorbs float error so 1.1 does not ceil to 1.11.
	roundingSlack = 1e-9
)

type unit struct {
	suffix  string
	seconds int64
}

// units is ordered from the largest to the smallest unit.
var units = []unit{
	{suffix: "w", seconds: SecondsPerWeek},
	{suffix: "d", seconds: SecondsPerDay},
	{suffix: "h", seconds: SecondsPerHour},
	{suffix: "m", seconds: SecondsPerMinute},
	{suffix: "s", seconds: 1},
}

// Span is an elapsed time measured in minutes.
type Span struct {
	minutes     float64
	approximate bool
}

// Minutes returns an exact span of m minutes.
func Minutes(m int64) Span {
	return Span{minutes: float64(m)}
}

// ApproxMinutes returns an approximate span, typically the result of a division
// such as a per-day average. m may be NaN or infinite.
func ApproxMinutes(m float64) Span {
	return Span{minutes: m, approximate: true}
}

// FromDuration converts d to an exact span, truncating to whole minutes.
func FromDuration(d time.Duration) Span {
	return Minutes(int64(d / time.Minute))
}

// Minutes returns the raw minute value.
func (s Span) Minutes() float64 {
	return s.minutes
}

// Approximate reports whether the span came from a floating point computation.
func (s Span) Approximate() bool {
	return s.approximate
}

// Finite reports whether the span holds a finite number.
func (s Span) Finite() bool {
	return !math.IsNaN(s.minutes) && !math.IsInf(s.minutes, 0)
}

// IsZero reports whether the span renders as the placeholder.
func (s Span) IsZero() bool {
	if s.approximate && !s.Finite() {
		return true
	}

	return s.totalSeconds() == 0
}

// Duration returns the span as a time.Duration. Non-finite spans yield 0.
func (s Span) Duration() time.Duration {
	if !s.Finite() {
		return 0
	}

	return time.Duration(s.minutes * float64(time.Minute))
}

// Add returns the sum of two spans. The result is approximate if either operand is.
func (s Span) Add(other Span) Span {
	return Span{minutes: s.minutes + other.minutes, approximate: s.approximate || other.approximate}
}

// String renders the cascading breakdown, e.g. "1h30m (1.50h) / 90m0s (90.00m)".
func (s Span) String() string {
	if s.IsZero() {
		return Placeholder
	}

	total := s.totalSeconds()

	magnitude := total
	if magnitude < 0 {
		magnitude = -magnitude
	}

	largest, smallest := populatedRange(magnitude)
	clauses := make([]string, 0, smallest-largest+1)

	for i := largest; i <= smallest; i++ {
		clauses = append(clauses, clause(total, i))
	}

	return strings.Join(clauses, clauseSeparator)
}

func (s Span) totalSeconds() int64 {
	if !s.Finite() {
		return 0
	}

	return int64(math.Round(s.minutes * SecondsPerMinute))
}

// populatedRange returns the indexes of the largest and smallest non-zero units
// in the cascading decomposition of total seconds.
func populatedRange(total int64) (largest, smallest int) {
	largest, smallest = -1, -1
	remaining := total

	for i, u := range units {
		count := remaining / u.seconds
		remaining %= u.seconds

		if count == 0 {
			continue
		}

		if largest < 0 {
			largest = i
		}

		smallest = i
	}

	return largest, smallest
}

// clause renders one unit of the breakdown. A negative total carries its sign
// into every clause and into the ceiled equivalent.
func clause(total int64, idx int) string {
	sign, magnitude := "", total
	if total < 0 {
		sign, magnitude = "-", -total
	}

	u := units[idx]
	whole := magnitude / u.seconds

	if idx == len(units)-1 {
		return fmt.Sprintf("%s%d%s", sign, whole, u.suffix)
	}

	next := units[idx+1]
	rem := (magnitude % u.seconds) / next.seconds
	equivalent := CeilHundredths(float64(total) / float64(u.seconds))

	return fmt.Sprintf("%s%d%s%d%s (%.2f%s)", sign, whole, u.suffix, rem, next.suffix, equivalent, u.suffix)
}

// CeilHundredths rounds v toward positive infinity at two decimal places.
func CeilHundredths(v float64) float64 {
	return math.Ceil(v*roundingScale-roundingSlack) / roundingScale
}
