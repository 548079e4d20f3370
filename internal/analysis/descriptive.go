package analysis

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// DefaultOutlierFence is the IQR multiplier used when callers do not supply
// their own.
const DefaultOutlierFence = 1.5

// Quartiles holds the three quartiles and their spread.
type Quartiles struct {
	Q1  float64 `json:"q1"`
	Q2  float64 `json:"q2"`
	Q3  float64 `json:"q3"`
	IQR float64 `json:"iqr"`
}

// Descriptive is the full descriptive-statistics summary of a numeric series.
// Standard deviation and variance are population figures, quartiles use
// median-exclusive halves.
type Descriptive struct {
	Count       int                `json:"count"`
	Mean        float64            `json:"mean"`
	Median      float64            `json:"median"`
	Mode        float64            `json:"mode"`
	StdDev      float64            `json:"std_dev"`
	Variance    float64            `json:"variance"`
	Min         float64            `json:"min"`
	Max         float64            `json:"max"`
	Quartiles   Quartiles          `json:"quartiles"`
	Outliers    []float64          `json:"outliers,omitempty"`
	Percentiles map[string]float64 `json:"percentiles"`
}

// percentilePoints are the fixed cut points reported by Describe.
var percentilePoints = map[string]float64{
	"p10": 10, "p25": 25, "p50": 50, "p75": 75, "p90": 90, "p95": 95, "p99": 99,
}

// Describe computes the descriptive summary of values.
func Describe(values []float64) (*Descriptive, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("cannot describe an empty series")
	}

	data := stats.Float64Data(values)

	mean, err := data.Mean()
	if err != nil {
		return nil, fmt.Errorf("mean: %w", err)
	}
	median, err := data.Median()
	if err != nil {
		return nil, fmt.Errorf("median: %w", err)
	}
	stdDev, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return nil, fmt.Errorf("standard deviation: %w", err)
	}
	variance, err := stats.PopulationVariance(data)
	if err != nil {
		return nil, fmt.Errorf("variance: %w", err)
	}
	min, err := data.Min()
	if err != nil {
		return nil, fmt.Errorf("min: %w", err)
	}
	max, err := data.Max()
	if err != nil {
		return nil, fmt.Errorf("max: %w", err)
	}

	quartiles, err := computeQuartiles(data)
	if err != nil {
		return nil, err
	}

	// Cut points the series is too short to support are omitted rather than
	// failing the whole summary.
	percentiles := make(map[string]float64, len(percentilePoints))
	for name, p := range percentilePoints {
		v, err := stats.Percentile(data, p)
		if err != nil {
			continue
		}
		percentiles[name] = v
	}

	return &Descriptive{
		Count:       len(values),
		Mean:        mean,
		Median:      median,
		Mode:        mode(values),
		StdDev:      stdDev,
		Variance:    variance,
		Min:         min,
		Max:         max,
		Quartiles:   quartiles,
		Outliers:    Outliers(values, DefaultOutlierFence),
		Percentiles: percentiles,
	}, nil
}

func computeQuartiles(data stats.Float64Data) (Quartiles, error) {
	q, err := stats.Quartile(data)
	if err != nil {
		// A single data point has no quartile spread; collapse to the value.
		if len(data) == 1 {
			v := data[0]
			return Quartiles{Q1: v, Q2: v, Q3: v}, nil
		}
		return Quartiles{}, fmt.Errorf("quartiles: %w", err)
	}
	return Quartiles{Q1: q.Q1, Q2: q.Q2, Q3: q.Q3, IQR: q.Q3 - q.Q1}, nil
}

// mode returns the most frequent value, resolving ties by first occurrence
// in the input order.
func mode(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best := values[0]
	bestCount := counts[best]
	for _, v := range values {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

// Outliers returns the values lying outside the Tukey fences
// Q1 - k*IQR and Q3 + k*IQR, preserving input order.
func Outliers(values []float64, k float64) []float64 {
	if len(values) < 2 {
		return nil
	}

	data := stats.Float64Data(values)
	q, err := stats.Quartile(data)
	if err != nil {
		return nil
	}

	iqr := q.Q3 - q.Q1
	lower := q.Q1 - k*iqr
	upper := q.Q3 + k*iqr

	var outliers []float64
	for _, v := range values {
		if v < lower || v > upper {
			outliers = append(outliers, v)
		}
	}
	return outliers
}
