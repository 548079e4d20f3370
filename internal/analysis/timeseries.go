package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// SeasonalityThreshold is the autocorrelation above which a series is
// considered seasonal at the probed period.
const SeasonalityThreshold = 0.5

// TrendResult is an ordinary-least-squares fit over index positions 0..n-1.
type TrendResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	Strength  string  `json:"strength"`
}

// LinearTrend fits a least-squares line to the series, treating each point's
// index position as its x value. Irregular calendar gaps are not weighted.
func LinearTrend(values []float64) (*TrendResult, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("linear trend requires at least 2 points, got %d", len(values))
	}

	series := make(stats.Series, len(values))
	for i, v := range values {
		series[i] = stats.Coordinate{X: float64(i), Y: v}
	}

	fitted, err := stats.LinearRegression(series)
	if err != nil {
		return nil, fmt.Errorf("linear regression: %w", err)
	}

	slope := fitted[1].Y - fitted[0].Y
	intercept := fitted[0].Y
	r2 := rSquared(values, fitted)

	return &TrendResult{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		Strength:  trendStrength(r2),
	}, nil
}

// rSquared is the coefficient of determination of the fitted line.
func rSquared(values []float64, fitted stats.Series) float64 {
	mean, err := stats.Mean(stats.Float64Data(values))
	if err != nil {
		return 0
	}

	var ssRes, ssTot float64
	for i, v := range values {
		ssRes += (v - fitted[i].Y) * (v - fitted[i].Y)
		ssTot += (v - mean) * (v - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func trendStrength(r2 float64) string {
	switch {
	case r2 >= 0.7:
		return "strong"
	case r2 >= 0.4:
		return "moderate"
	case r2 >= 0.1:
		return "weak"
	default:
		return "none"
	}
}

// Seasonality reports the autocorrelation of a series at a probed period.
type Seasonality struct {
	Period          int     `json:"period"`
	Autocorrelation float64 `json:"autocorrelation"`
	HasSeasonality  bool    `json:"has_seasonality"`
}

// DetectSeasonality measures the lag-period autocorrelation as the Pearson
// correlation between the series and its period-shifted copy. At least two
// full periods of data are required.
func DetectSeasonality(values []float64, period int) (*Seasonality, error) {
	if period < 1 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(values) < 2*period {
		return nil, fmt.Errorf("seasonality at period %d requires %d points, got %d",
			period, 2*period, len(values))
	}

	head := stats.Float64Data(values[:len(values)-period])
	tail := stats.Float64Data(values[period:])
	corr, err := stats.Correlation(head, tail)
	if err != nil {
		return nil, fmt.Errorf("autocorrelation: %w", err)
	}

	return &Seasonality{
		Period:          period,
		Autocorrelation: corr,
		HasSeasonality:  corr > SeasonalityThreshold,
	}, nil
}

// MovingAverage computes the simple moving average with the given window.
// The first window-1 positions average over the points available so far.
func MovingAverage(values []float64, window int) []float64 {
	if window < 1 || len(values) == 0 {
		return nil
	}

	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
			out[i] = sum / float64(window)
		} else {
			out[i] = sum / float64(i+1)
		}
	}
	return out
}

// ExponentialMovingAverage computes the EMA with smoothing factor alpha in
// (0,1]. The first value seeds the average.
func ExponentialMovingAverage(values []float64, alpha float64) []float64 {
	if len(values) == 0 || alpha <= 0 || alpha > 1 {
		return nil
	}

	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// ForecastResult is a linear-regression projection of future periods.
type ForecastResult struct {
	Values     []float64 `json:"values"`
	Confidence float64   `json:"confidence"` // R² of the fitted trend
}

// Forecast projects the fitted linear trend forward by the given number of
// periods.
func Forecast(values []float64, periods int) (*ForecastResult, error) {
	if periods < 1 {
		return nil, fmt.Errorf("periods must be positive, got %d", periods)
	}

	trend, err := LinearTrend(values)
	if err != nil {
		return nil, err
	}

	forecast := make([]float64, periods)
	n := float64(len(values))
	for i := 0; i < periods; i++ {
		forecast[i] = trend.Intercept + trend.Slope*(n+float64(i))
	}

	return &ForecastResult{Values: forecast, Confidence: trend.RSquared}, nil
}

// ChangePoint flags a value whose z-score against its trailing window
// exceeds the caller's threshold.
type ChangePoint struct {
	Index  int     `json:"index"`
	Value  float64 `json:"value"`
	ZScore float64 `json:"z_score"`
	Kind   string  `json:"kind"` // "spike" or "drop"
}

// DetectChangePoints scans the series with a trailing window and flags
// points whose z-score against that window exceeds threshold. Windows with
// zero spread are skipped.
func DetectChangePoints(values []float64, window int, threshold float64) []ChangePoint {
	if window < 2 || len(values) <= window {
		return nil
	}

	var points []ChangePoint
	for i := window; i < len(values); i++ {
		trailing := stats.Float64Data(values[i-window : i])
		mean, err := trailing.Mean()
		if err != nil {
			continue
		}
		stdDev, err := stats.StandardDeviationPopulation(trailing)
		if err != nil || stdDev == 0 {
			continue
		}

		z := (values[i] - mean) / stdDev
		if math.Abs(z) > threshold {
			kind := "spike"
			if z < 0 {
				kind = "drop"
			}
			points = append(points, ChangePoint{
				Index:  i,
				Value:  values[i],
				ZScore: z,
				Kind:   kind,
			})
		}
	}
	return points
}
