package aggregation

import (
	"log/slog"
	"sort"
	"time"

	"paldata/internal/enrichment"
	"paldata/pkg/contracts/domain"
)

// PeriodStats extends the shared bucket summary with the distinct
// event-type count per period.
type PeriodStats struct {
	BucketStats
	UniqueEventTypes int `json:"unique_event_types"`
}

// ByPeriod buckets records by their derived period key. Records without a
// parseable date are excluded.
func (a *Aggregator) ByPeriod(records []domain.Record, period enrichment.PeriodType) map[string]*PeriodStats {
	groups := make(map[string][]domain.Record)
	for _, rec := range records {
		date, ok := rec.ParsedDate()
		if !ok {
			continue
		}
		key := enrichment.PeriodKey(date, period)
		groups[key] = append(groups[key], rec)
	}

	out := make(map[string]*PeriodStats, len(groups))
	for key, group := range groups {
		stats := &PeriodStats{BucketStats: *bucketStats(group)}
		eventTypes := make(map[string]struct{})
		for _, rec := range group {
			if rec.EventType != "" {
				eventTypes[rec.EventType] = struct{}{}
			}
		}
		stats.UniqueEventTypes = len(eventTypes)
		out[key] = stats
	}

	a.logger.Debug("aggregated by period",
		slog.String("period", string(period)),
		slog.Int("buckets", len(out)))
	return out
}

// MetricDelta is the change of one metric between two consecutive periods.
// A zero previous value yields 0% for a zero current value and 100% for any
// positive one.
type MetricDelta struct {
	Metric   string  `json:"metric"`
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`
	Absolute float64 `json:"absolute"`
	Percent  float64 `json:"percent"`
}

// PeriodComparison is the metric-by-metric delta between two consecutive
// period buckets.
type PeriodComparison struct {
	FromPeriod string        `json:"from_period"`
	ToPeriod   string        `json:"to_period"`
	Deltas     []MetricDelta `json:"deltas"`
}

var comparedMetrics = []string{"total_records", "incident_count", "fatalities", "injuries"}

// ComparePeriods walks the sorted period keys and computes deltas between
// each pair of consecutive periods.
func (a *Aggregator) ComparePeriods(stats map[string]*PeriodStats) []PeriodComparison {
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var comparisons []PeriodComparison
	for i := 1; i < len(keys); i++ {
		prev, cur := stats[keys[i-1]], stats[keys[i]]
		cmp := PeriodComparison{FromPeriod: keys[i-1], ToPeriod: keys[i]}
		for _, metric := range comparedMetrics {
			p := metricValue(&prev.BucketStats, metric)
			c := metricValue(&cur.BucketStats, metric)
			cmp.Deltas = append(cmp.Deltas, MetricDelta{
				Metric:   metric,
				Previous: p,
				Current:  c,
				Absolute: c - p,
				Percent:  deltaPercent(p, c),
			})
		}
		comparisons = append(comparisons, cmp)
	}
	return comparisons
}

func deltaPercent(prev, cur float64) float64 {
	if prev == 0 {
		if cur > 0 {
			return 100
		}
		return 0
	}
	return (cur - prev) / prev * 100
}

func metricValue(stats *BucketStats, metric string) float64 {
	switch metric {
	case "incident_count", "incidents":
		return float64(stats.IncidentCount)
	case "fatalities":
		return float64(stats.Fatalities)
	case "injuries":
		return float64(stats.Injuries)
	case "casualty_total", "casualties":
		return float64(stats.CasualtyTotal)
	default:
		return float64(stats.TotalRecords)
	}
}

// BaselineSplit holds the aggregate stats on each side of the baseline date
// and the deltas between them.
type BaselineSplit struct {
	Before     *BucketStats  `json:"before"`
	After      *BucketStats  `json:"after"`
	Comparison []MetricDelta `json:"comparison"`
}

// ByBaseline splits records into before/after buckets around the baseline
// date and compares aggregate stats across the split. Records dated exactly
// on the baseline fall into the after bucket.
func (a *Aggregator) ByBaseline(records []domain.Record, baseline time.Time) *BaselineSplit {
	var before, after []domain.Record
	for _, rec := range records {
		date, ok := rec.ParsedDate()
		if !ok {
			continue
		}
		if date.Before(baseline) {
			before = append(before, rec)
		} else {
			after = append(after, rec)
		}
	}

	split := &BaselineSplit{
		Before: bucketStats(before),
		After:  bucketStats(after),
	}
	for _, metric := range comparedMetrics {
		p := metricValue(split.Before, metric)
		c := metricValue(split.After, metric)
		split.Comparison = append(split.Comparison, MetricDelta{
			Metric:   metric,
			Previous: p,
			Current:  c,
			Absolute: c - p,
			Percent:  deltaPercent(p, c),
		})
	}
	return split
}

// RollingPoint is the aggregate over one record's trailing window.
type RollingPoint struct {
	Date        string       `json:"date"`
	WindowStart string       `json:"window_start"`
	Value       float64      `json:"value"`
	Stats       *BucketStats `json:"stats"`
}

// Rolling recomputes the full bucket summary over every record's trailing
// window of windowDays days and reports the chosen metric. Quadratic by
// construction; callers bound the dataset size.
func (a *Aggregator) Rolling(records []domain.Record, windowDays int, metric string) []RollingPoint {
	if windowDays < 1 {
		return nil
	}

	dated := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if _, ok := rec.ParsedDate(); ok {
			dated = append(dated, rec)
		}
	}
	sort.Slice(dated, func(i, j int) bool { return dated[i].Date < dated[j].Date })

	points := make([]RollingPoint, 0, len(dated))
	for _, rec := range dated {
		end, _ := rec.ParsedDate()
		start := end.AddDate(0, 0, -(windowDays - 1))
		startKey := start.Format(domain.DateLayout)

		var window []domain.Record
		for _, candidate := range dated {
			if candidate.Date >= startKey && candidate.Date <= rec.Date {
				window = append(window, candidate)
			}
		}

		stats := bucketStats(window)
		points = append(points, RollingPoint{
			Date:        rec.Date,
			WindowStart: startKey,
			Value:       metricValue(stats, metric),
			Stats:       stats,
		})
	}
	return points
}
