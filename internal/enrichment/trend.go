package enrichment

import (
	"log/slog"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"paldata/internal/analysis"
	"paldata/pkg/contracts/domain"
)

// Direction thresholds: slopes within ±0.01 are reported as stable.
const slopeEpsilon = 0.01

const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// TrendAnalyzer attaches per-indicator statistics to records. Records
// sharing an indicator code form one time series sorted by date ascending;
// each member gets the series-wide trend, growth rate and volatility plus
// its own recent-change and baseline-comparison figures.
type TrendAnalyzer struct {
	logger   *slog.Logger
	baseline time.Time
}

// NewTrendAnalyzer creates a trend analyzer anchored at baseline.
func NewTrendAnalyzer(logger *slog.Logger, baseline time.Time) *TrendAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if baseline.IsZero() {
		baseline, _ = time.Parse(domain.DateLayout, DefaultBaselineDate)
	}
	return &TrendAnalyzer{logger: logger, baseline: baseline}
}

// EnrichIndicators mutates records in place, attaching an Analysis block to
// every record whose indicator series has at least two dated points.
// Records without a date or in a shorter series keep a nil Analysis.
func (a *TrendAnalyzer) EnrichIndicators(records []domain.Record) {
	groups := make(map[string][]int)
	for i := range records {
		if _, ok := records[i].ParsedDate(); !ok {
			continue
		}
		key := records[i].IndicatorCode
		if key == "" {
			key = records[i].Type
		}
		groups[key] = append(groups[key], i)
	}

	for key, indices := range groups {
		if len(indices) < 2 {
			continue
		}
		a.enrichSeries(records, indices)
		a.logger.Debug("enriched indicator series",
			slog.String("indicator", key),
			slog.Int("points", len(indices)))
	}
}

func (a *TrendAnalyzer) enrichSeries(records []domain.Record, indices []int) {
	sort.SliceStable(indices, func(i, j int) bool {
		return records[indices[i]].Date < records[indices[j]].Date
	})

	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = records[idx].Value
	}

	trend, err := analysis.LinearTrend(values)
	if err != nil {
		return
	}

	volatility, err := stats.StandardDeviationPopulation(stats.Float64Data(values))
	if err != nil {
		return
	}

	growthRate := averageGrowthRate(values)
	baselineValue, hasBaseline := a.baselineValue(records, indices)

	for pos, idx := range indices {
		rec := &records[idx]
		rec.Analysis = &domain.Analysis{
			Trend: domain.Trend{
				Slope:     trend.Slope,
				Direction: direction(trend.Slope),
			},
			GrowthRate:   growthRate,
			Volatility:   volatility,
			RecentChange: recentChange(values, pos),
		}
		if hasBaseline && baselineValue != 0 {
			rec.Analysis.BaselineComparison = percentChange(baselineValue, rec.Value)
		}
	}
}

func direction(slope float64) string {
	switch {
	case slope > slopeEpsilon:
		return TrendIncreasing
	case slope < -slopeEpsilon:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// averageGrowthRate is the mean of pointwise percent changes, skipping
// steps whose previous value is zero.
func averageGrowthRate(values []float64) float64 {
	var sum float64
	var count int
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		sum += percentChange(values[i-1], values[i])
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// recentChange is the percent change from the immediate predecessor in the
// sorted series, zero for the first point.
func recentChange(values []float64, pos int) float64 {
	if pos == 0 || values[pos-1] == 0 {
		return 0
	}
	return percentChange(values[pos-1], values[pos])
}

// baselineValue returns the latest series value whose date is on or before
// the baseline date.
func (a *TrendAnalyzer) baselineValue(records []domain.Record, indices []int) (float64, bool) {
	var value float64
	var found bool
	for _, idx := range indices {
		date, ok := records[idx].ParsedDate()
		if !ok || date.After(a.baseline) {
			continue
		}
		value = records[idx].Value
		found = true
	}
	return value, found
}

func percentChange(from, to float64) float64 {
	return (to - from) / from * 100
}
