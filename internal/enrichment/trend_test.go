package enrichment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paldata/pkg/contracts/domain"
)

func indicatorRecords(code string, points map[string]float64) []domain.Record {
	records := make([]domain.Record, 0, len(points))
	for d, v := range points {
		records = append(records, domain.Record{
			IndicatorCode: code,
			Date:          d,
			Value:         v,
		})
	}
	return records
}

func TestEnrichIndicatorsTrendDirection(t *testing.T) {
	analyzer := NewTrendAnalyzer(nil, time.Time{})

	records := indicatorRecords("NY.GDP.MKTP.CD", map[string]float64{
		"2023-01-01": 10,
		"2023-02-01": 20,
		"2023-03-01": 30,
		"2023-04-01": 40,
	})
	analyzer.EnrichIndicators(records)

	for i := range records {
		require.NotNil(t, records[i].Analysis, "record %d", i)
		assert.Equal(t, TrendIncreasing, records[i].Analysis.Trend.Direction)
		assert.InDelta(t, 10.0, records[i].Analysis.Trend.Slope, 1e-9)
		assert.InDelta(t, 11.180339887, records[i].Analysis.Volatility, 1e-6)
		assert.InDelta(t, (100.0+50.0+100.0/3)/3, records[i].Analysis.GrowthRate, 1e-9)
	}
}

func TestEnrichIndicatorsRecentChange(t *testing.T) {
	analyzer := NewTrendAnalyzer(nil, time.Time{})

	// Input order is deliberately shuffled: the series sorts by date.
	records := []domain.Record{
		{IndicatorCode: "X", Date: "2023-03-01", Value: 30},
		{IndicatorCode: "X", Date: "2023-01-01", Value: 10},
		{IndicatorCode: "X", Date: "2023-02-01", Value: 20},
	}
	analyzer.EnrichIndicators(records)

	byDate := map[string]*domain.Analysis{}
	for i := range records {
		byDate[records[i].Date] = records[i].Analysis
	}

	require.NotNil(t, byDate["2023-01-01"])
	assert.InDelta(t, 0, byDate["2023-01-01"].RecentChange, 1e-9)
	assert.InDelta(t, 100, byDate["2023-02-01"].RecentChange, 1e-9)
	assert.InDelta(t, 50, byDate["2023-03-01"].RecentChange, 1e-9)
}

func TestEnrichIndicatorsBaselineComparison(t *testing.T) {
	analyzer := NewTrendAnalyzer(nil, time.Time{})

	records := []domain.Record{
		{IndicatorCode: "X", Date: "2023-10-01", Value: 100},
		{IndicatorCode: "X", Date: "2023-11-01", Value: 150},
	}
	analyzer.EnrichIndicators(records)

	require.NotNil(t, records[1].Analysis)
	assert.InDelta(t, 50, records[1].Analysis.BaselineComparison, 1e-9)
	assert.InDelta(t, 0, records[0].Analysis.BaselineComparison, 1e-9)
}

func TestEnrichIndicatorsNoBaselineValue(t *testing.T) {
	analyzer := NewTrendAnalyzer(nil, time.Time{})

	// Every point is after the baseline, so no comparison is possible.
	records := []domain.Record{
		{IndicatorCode: "X", Date: "2024-01-01", Value: 100},
		{IndicatorCode: "X", Date: "2024-02-01", Value: 150},
	}
	analyzer.EnrichIndicators(records)

	require.NotNil(t, records[1].Analysis)
	assert.Zero(t, records[1].Analysis.BaselineComparison)
}

func TestEnrichIndicatorsSkipsShortAndUndatedSeries(t *testing.T) {
	analyzer := NewTrendAnalyzer(nil, time.Time{})

	records := []domain.Record{
		{IndicatorCode: "lonely", Date: "2023-01-01", Value: 10},
		{IndicatorCode: "undated", Value: 5},
		{IndicatorCode: "undated", Value: 6},
	}
	analyzer.EnrichIndicators(records)

	for i := range records {
		assert.Nil(t, records[i].Analysis, "record %d", i)
	}
}

func TestEnrichIndicatorsGroupsByTypeWhenCodeMissing(t *testing.T) {
	analyzer := NewTrendAnalyzer(nil, time.Time{})

	records := []domain.Record{
		{Type: "unemployment", Date: "2023-01-01", Value: 25},
		{Type: "unemployment", Date: "2023-02-01", Value: 30},
		{Type: "inflation", Date: "2023-01-01", Value: 3},
	}
	analyzer.EnrichIndicators(records)

	require.NotNil(t, records[0].Analysis)
	require.NotNil(t, records[1].Analysis)
	assert.Nil(t, records[2].Analysis)
}

func TestEnrichIndicatorsDecreasingAndStable(t *testing.T) {
	analyzer := NewTrendAnalyzer(nil, time.Time{})

	t.Run("decreasing", func(t *testing.T) {
		records := indicatorRecords("down", map[string]float64{
			"2023-01-01": 40,
			"2023-02-01": 30,
			"2023-03-01": 20,
		})
		analyzer.EnrichIndicators(records)
		require.NotNil(t, records[0].Analysis)
		assert.Equal(t, TrendDecreasing, records[0].Analysis.Trend.Direction)
	})

	t.Run("stable", func(t *testing.T) {
		records := indicatorRecords("flat", map[string]float64{
			"2023-01-01": 10,
			"2023-02-01": 10,
			"2023-03-01": 10,
		})
		analyzer.EnrichIndicators(records)
		require.NotNil(t, records[0].Analysis)
		assert.Equal(t, TrendStable, records[0].Analysis.Trend.Direction)
	})
}
