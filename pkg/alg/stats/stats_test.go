package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMin(t *testing.T) {
	t.Parallel()

	t.Run("empty_returns_zero", func(t *testing.T) {
		t.Parallel()

		got := Min([]float64{})
		assert.InDelta(t, 0, got, 0.0001)
	})

	t.Run("single_element", func(t *testing.T) {
		t.Parallel()

		got := Min([]float64{7.0})
		assert.InDelta(t, 7.0, got, 0.0001)
	})

	t.Run("multiple_elements", func(t *testing.T) {
		t.Parallel()

		got := Min([]int64{3, 1, 4, 1, 5})
		assert.Equal(t, int64(1), got)
	})
}

func TestMax(t *testing.T) {
	t.Parallel()

	t.Run("empty_returns_zero", func(t *testing.T) {
		t.Parallel()

		got := Max([]int64{})
		assert.Equal(t, int64(0), got)
	})

	t.Run("multiple_elements", func(t *testing.T) {
		t.Parallel()

		got := Max([]float64{3.0, 1.0, 9.0, 4.0})
		assert.InDelta(t, 9.0, got, 0.0001)
	})
}

func TestSum(t *testing.T) {
	t.Parallel()

	t.Run("empty_returns_zero", func(t *testing.T) {
		t.Parallel()

		got := Sum([]float64{})
		assert.InDelta(t, 0, got, 0.0001)
	})

	t.Run("int_elements", func(t *testing.T) {
		t.Parallel()

		got := Sum([]int64{1, 2, 3, 4})
		assert.Equal(t, int64(10), got)
	})
}

func TestUpperMedian(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []int64
		expected int64
	}{
		{name: "empty_returns_zero", input: nil, expected: 0},
		{name: "single_element", input: []int64{7}, expected: 7},
		{name: "odd_count", input: []int64{10, 20, 30}, expected: 20},
		{name: "even_count_takes_upper", input: []int64{10, 20, 30, 40}, expected: 30},
		{name: "unsorted_input", input: []int64{40, 10, 30, 20}, expected: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, UpperMedian(tt.input))
		})
	}
}

func TestUpperMedian_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := []int64{3, 1, 2}
	_ = UpperMedian(input)

	assert.Equal(t, []int64{3, 1, 2}, input)
}

func TestPopulationStdDev(t *testing.T) {
	t.Parallel()

	t.Run("known_population_stddev", func(t *testing.T) {
		t.Parallel()

		got := PopulationStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 5)
		assert.InDelta(t, 2.0, got, 0.0001)
	})

	t.Run("uniform_values_zero", func(t *testing.T) {
		t.Parallel()

		got := PopulationStdDev([]int64{3, 3, 3}, 3)
		assert.InDelta(t, 0, got, 0.0001)
	})

	t.Run("empty_is_nan", func(t *testing.T) {
		t.Parallel()

		got := PopulationStdDev([]int64{}, 0)
		assert.True(t, math.IsNaN(got))
	})
}

func TestRatio(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.5, Ratio(int64(90), int64(60)), 1e-12)
	assert.True(t, math.IsInf(Ratio(int64(10), 0), 1))
	assert.True(t, math.IsNaN(Ratio(int64(0), 0)))
}
