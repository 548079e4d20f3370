package aggregation

import (
	"log/slog"
	"sort"

	"paldata/internal/enrichment"
	"paldata/pkg/contracts/domain"
)

// DailyCount is one day's incident totals inside a bucket's time series.
type DailyCount struct {
	Date       string `json:"date"`
	Incidents  int    `json:"incidents"`
	Fatalities int    `json:"fatalities"`
	Injuries   int    `json:"injuries"`
}

// BucketStats is the descriptive summary of one aggregation bucket.
type BucketStats struct {
	TotalRecords      int              `json:"total_records"`
	IncidentCount     int              `json:"incident_count"`
	Fatalities        int              `json:"fatalities"`
	Injuries          int              `json:"injuries"`
	CasualtyTotal     int              `json:"casualty_total"`
	SeverityIndex     float64          `json:"severity_index"`
	AffectedLocations int              `json:"affected_locations"`
	DateRange         domain.DateRange `json:"date_range"`
	TimeSeries        []DailyCount     `json:"time_series,omitempty"`
}

// Aggregator groups canonical records into spatial and temporal buckets and
// computes descriptive statistics per bucket.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// ByRegion buckets records into the fixed region enumeration. Every region
// appears in the result even when empty.
func (a *Aggregator) ByRegion(records []domain.Record) map[domain.Region]*BucketStats {
	buckets := make(map[domain.Region][]domain.Record, 4)
	for _, region := range domain.Regions() {
		buckets[region] = nil
	}

	for _, rec := range records {
		region := rec.Location.Region
		if _, known := buckets[region]; !known {
			region = domain.RegionUnknown
		}
		buckets[region] = append(buckets[region], rec)
	}

	out := make(map[domain.Region]*BucketStats, len(buckets))
	for region, group := range buckets {
		out[region] = bucketStats(group)
	}
	return out
}

// ByGovernorate buckets records by admin level 1, defaulting unmatched
// records to "unknown". When no governorate names are supplied the fixed
// governorate table is used.
func (a *Aggregator) ByGovernorate(records []domain.Record, governorates ...string) map[string]*BucketStats {
	if len(governorates) == 0 {
		for _, box := range enrichment.DefaultGovernorates() {
			governorates = append(governorates, box.Name)
		}
	}
	buckets := make(map[string][]domain.Record, len(governorates)+1)
	for _, name := range governorates {
		buckets[name] = nil
	}
	buckets["unknown"] = nil

	for _, rec := range records {
		name := rec.Location.AdminLevels.Level1
		if _, known := buckets[name]; !known {
			name = "unknown"
		}
		buckets[name] = append(buckets[name], rec)
	}

	out := make(map[string]*BucketStats, len(buckets))
	for name, group := range buckets {
		out[name] = bucketStats(group)
	}
	return out
}

// bucketStats computes the shared per-bucket summary.
func bucketStats(records []domain.Record) *BucketStats {
	stats := &BucketStats{TotalRecords: len(records)}
	if len(records) == 0 {
		return stats
	}

	locations := make(map[string]struct{})
	days := make(map[string]*DailyCount)
	var severitySum float64
	var severityCount int

	for _, rec := range records {
		if rec.Category == domain.CategoryConflict {
			stats.IncidentCount++
		}
		stats.Fatalities += rec.Fatalities
		stats.Injuries += rec.Injuries

		if rec.Severity != nil {
			severitySum += *rec.Severity
			severityCount++
		}
		if rec.Location.Name != "" {
			locations[rec.Location.Name] = struct{}{}
		}

		if rec.Date == "" {
			continue
		}
		if stats.DateRange.Start == "" || rec.Date < stats.DateRange.Start {
			stats.DateRange.Start = rec.Date
		}
		if rec.Date > stats.DateRange.End {
			stats.DateRange.End = rec.Date
		}

		day, ok := days[rec.Date]
		if !ok {
			day = &DailyCount{Date: rec.Date}
			days[rec.Date] = day
		}
		if rec.Category == domain.CategoryConflict {
			day.Incidents++
		}
		day.Fatalities += rec.Fatalities
		day.Injuries += rec.Injuries
	}

	stats.CasualtyTotal = stats.Fatalities + stats.Injuries
	stats.AffectedLocations = len(locations)
	if severityCount > 0 {
		stats.SeverityIndex = severitySum / float64(severityCount)
	}

	stats.TimeSeries = make([]DailyCount, 0, len(days))
	for _, day := range days {
		stats.TimeSeries = append(stats.TimeSeries, *day)
	}
	sort.Slice(stats.TimeSeries, func(i, j int) bool {
		return stats.TimeSeries[i].Date < stats.TimeSeries[j].Date
	})

	return stats
}
