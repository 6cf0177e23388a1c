// Package stats provides the numeric helpers behind task statistics.
// Deviation uses the population formula (÷n, not ÷(n−1)).
package stats

import (
	"cmp"
	"math"
	"slices"
)

// Number is the set of element types the aggregate helpers accept.
type Number interface {
	~int | ~int64 | ~float64
}

// Sum returns the sum of all elements in values.
// Returns the zero value of T for an empty slice.
func Sum[T Number](values []T) T {
	var result T

	for _, v := range values {
		result += v
	}

	return result
}

// Min returns the smallest element in values.
// Returns the zero value of T for an empty slice.
func Min[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	return slices.Min(values)
}

// Max returns the largest element in values.
// Returns the zero value of T for an empty slice.
func Max[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	return slices.Max(values)
}

// UpperMedian returns the element at index n/2 of the sorted values: the middle
// element for odd counts and the upper of the two middle elements for even counts.
// The input slice is not modified. Returns the zero value of T for an empty slice.
func UpperMedian[T cmp.Ordered](values []T) T {
	if len(values) == 0 {
		var zero T

		return zero
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return sorted[len(sorted)/2]
}

// PopulationStdDev returns the population standard deviation of values around center.
// An empty slice divides by zero and yields NaN; callers render it as a placeholder.
func PopulationStdDev[T Number](values []T, center float64) float64 {
	var sumSq float64

	for _, v := range values {
		diff := float64(v) - center
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(values)))
}

// Ratio divides num by den as float64. A zero denominator yields ±Inf or NaN.
func Ratio[N, D Number](num N, den D) float64 {
	return float64(num) / float64(den)
}
