package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearTrend(t *testing.T) {
	t.Run("perfect increasing line", func(t *testing.T) {
		trend, err := LinearTrend([]float64{10, 20, 30, 40})
		require.NoError(t, err)
		assert.InDelta(t, 10.0, trend.Slope, 1e-9)
		assert.InDelta(t, 10.0, trend.Intercept, 1e-9)
		assert.InDelta(t, 1.0, trend.RSquared, 1e-9)
		assert.Equal(t, "strong", trend.Strength)
	})

	t.Run("perfect decreasing line", func(t *testing.T) {
		trend, err := LinearTrend([]float64{40, 30, 20, 10})
		require.NoError(t, err)
		assert.InDelta(t, -10.0, trend.Slope, 1e-9)
		assert.Equal(t, "strong", trend.Strength)
	})

	t.Run("constant series has no trend", func(t *testing.T) {
		trend, err := LinearTrend([]float64{5, 5, 5, 5})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, trend.Slope, 1e-9)
		assert.Equal(t, "none", trend.Strength)
	})

	t.Run("too few points", func(t *testing.T) {
		_, err := LinearTrend([]float64{1})
		assert.Error(t, err)
	})
}

func TestTrendStrength(t *testing.T) {
	tests := []struct {
		r2       float64
		expected string
	}{
		{0.95, "strong"},
		{0.7, "strong"},
		{0.5, "moderate"},
		{0.2, "weak"},
		{0.05, "none"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, trendStrength(tt.r2))
	}
}

func TestDetectSeasonality(t *testing.T) {
	alternating := []float64{1, 5, 1, 5, 1, 5, 1, 5}

	t.Run("period matching the cycle", func(t *testing.T) {
		s, err := DetectSeasonality(alternating, 2)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, s.Autocorrelation, 1e-9)
		assert.True(t, s.HasSeasonality)
	})

	t.Run("period out of phase", func(t *testing.T) {
		s, err := DetectSeasonality(alternating, 3)
		require.NoError(t, err)
		assert.InDelta(t, -1.0, s.Autocorrelation, 1e-9)
		assert.False(t, s.HasSeasonality)
	})

	t.Run("needs two full periods", func(t *testing.T) {
		_, err := DetectSeasonality([]float64{1, 2, 3}, 2)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive period", func(t *testing.T) {
		_, err := DetectSeasonality(alternating, 0)
		assert.Error(t, err)
	})
}

func TestMovingAverage(t *testing.T) {
	t.Run("partial windows at the head", func(t *testing.T) {
		got := MovingAverage([]float64{1, 2, 3, 4, 5}, 2)
		assert.InDeltaSlice(t, []float64{1, 1.5, 2.5, 3.5, 4.5}, got, 1e-9)
	})

	t.Run("window larger than series", func(t *testing.T) {
		got := MovingAverage([]float64{2, 4}, 10)
		assert.InDeltaSlice(t, []float64{2, 3}, got, 1e-9)
	})

	t.Run("invalid window", func(t *testing.T) {
		assert.Nil(t, MovingAverage([]float64{1, 2}, 0))
	})
}

func TestExponentialMovingAverage(t *testing.T) {
	t.Run("first value seeds the average", func(t *testing.T) {
		got := ExponentialMovingAverage([]float64{2, 4, 8}, 0.5)
		assert.InDeltaSlice(t, []float64{2, 3, 5.5}, got, 1e-9)
	})

	t.Run("invalid alpha", func(t *testing.T) {
		assert.Nil(t, ExponentialMovingAverage([]float64{1, 2}, 0))
		assert.Nil(t, ExponentialMovingAverage([]float64{1, 2}, 1.5))
	})
}

func TestForecast(t *testing.T) {
	t.Run("projects fitted line forward", func(t *testing.T) {
		f, err := Forecast([]float64{10, 20, 30}, 2)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{40, 50}, f.Values, 1e-9)
		assert.InDelta(t, 1.0, f.Confidence, 1e-9)
	})

	t.Run("rejects non-positive periods", func(t *testing.T) {
		_, err := Forecast([]float64{10, 20, 30}, 0)
		assert.Error(t, err)
	})
}

func TestDetectChangePoints(t *testing.T) {
	t.Run("flags spike", func(t *testing.T) {
		values := []float64{10, 11, 10, 11, 10, 11, 50}
		points := DetectChangePoints(values, 3, 3)
		require.Len(t, points, 1)
		assert.Equal(t, 6, points[0].Index)
		assert.Equal(t, "spike", points[0].Kind)
		assert.Greater(t, points[0].ZScore, 3.0)
	})

	t.Run("flags drop", func(t *testing.T) {
		values := []float64{50, 51, 50, 51, 50, 51, 2}
		points := DetectChangePoints(values, 3, 3)
		require.Len(t, points, 1)
		assert.Equal(t, "drop", points[0].Kind)
		assert.Less(t, points[0].ZScore, -3.0)
	})

	t.Run("zero spread windows are skipped", func(t *testing.T) {
		assert.Nil(t, DetectChangePoints([]float64{5, 5, 5, 9}, 2, 1))
	})

	t.Run("series shorter than window", func(t *testing.T) {
		assert.Nil(t, DetectChangePoints([]float64{1, 2}, 3, 1))
	})
}
