package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	desc, err := Describe(values)
	require.NoError(t, err)

	assert.Equal(t, 10, desc.Count)
	assert.InDelta(t, 5.5, desc.Mean, 1e-9)
	assert.InDelta(t, 5.5, desc.Median, 1e-9)
	assert.InDelta(t, 1.0, desc.Min, 1e-9)
	assert.InDelta(t, 10.0, desc.Max, 1e-9)
	assert.InDelta(t, 8.25, desc.Variance, 1e-9)
	assert.InDelta(t, 2.8722813232690143, desc.StdDev, 1e-9)

	// Quartiles over median-exclusive halves: [1..5] and [6..10].
	assert.InDelta(t, 3.0, desc.Quartiles.Q1, 1e-9)
	assert.InDelta(t, 5.5, desc.Quartiles.Q2, 1e-9)
	assert.InDelta(t, 8.0, desc.Quartiles.Q3, 1e-9)
	assert.InDelta(t, 5.0, desc.Quartiles.IQR, 1e-9)

	assert.Empty(t, desc.Outliers)
	assert.InDelta(t, 1.0, desc.Percentiles["p10"], 1e-9)
	assert.InDelta(t, 5.0, desc.Percentiles["p50"], 1e-9)
	assert.InDelta(t, 9.0, desc.Percentiles["p90"], 1e-9)
}

func TestDescribeEdgeCases(t *testing.T) {
	t.Run("empty series errors", func(t *testing.T) {
		_, err := Describe(nil)
		assert.Error(t, err)
	})

	t.Run("single point collapses quartiles", func(t *testing.T) {
		desc, err := Describe([]float64{42})
		require.NoError(t, err)
		assert.Equal(t, 1, desc.Count)
		assert.InDelta(t, 42.0, desc.Quartiles.Q1, 1e-9)
		assert.InDelta(t, 42.0, desc.Quartiles.Q3, 1e-9)
		assert.InDelta(t, 0.0, desc.Quartiles.IQR, 1e-9)
	})

	t.Run("short series omits unsupported percentiles", func(t *testing.T) {
		desc, err := Describe([]float64{1, 2, 3})
		require.NoError(t, err)
		_, ok := desc.Percentiles["p10"]
		assert.False(t, ok)
		_, ok = desc.Percentiles["p50"]
		assert.True(t, ok)
	})
}

func TestMode(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"clear winner", []float64{1, 2, 2, 3}, 2},
		{"tie resolved by first occurrence", []float64{2, 1, 1, 3, 3}, 1},
		{"all unique picks first", []float64{7, 8, 9}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mode(tt.values))
		})
	}
}

func TestOutliers(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		fence    float64
		expected []float64
	}{
		{
			name:     "spike beyond upper fence",
			values:   []float64{10, 12, 11, 13, 12, 11, 14, 13, 12, 100},
			fence:    DefaultOutlierFence,
			expected: []float64{100},
		},
		{
			name:     "tight series has none",
			values:   []float64{5, 6, 5, 6, 5, 6},
			fence:    DefaultOutlierFence,
			expected: nil,
		},
		{
			name:     "fewer than two points",
			values:   []float64{3},
			fence:    DefaultOutlierFence,
			expected: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Outliers(tt.values, tt.fence))
		})
	}
}

func TestOutliersPreserveInputOrder(t *testing.T) {
	values := []float64{200, 10, 12, 11, 13, 12, 11, 14, 13, 12, 100}
	got := Outliers(values, DefaultOutlierFence)
	assert.Equal(t, []float64{200, 100}, got)
}
