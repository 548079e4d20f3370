package transform

import (
	"time"

	"paldata/pkg/contracts/domain"
)

// IndicatorAnalyzer attaches per-indicator trend analysis to a record set.
// The enrichment package's trend analyzer satisfies it.
type IndicatorAnalyzer interface {
	EnrichIndicators(records []domain.Record)
}

// IndicatorTransformer converts raw statistical-indicator records
// (economic, health, education, water and similar time series) into
// canonical form. It serves every indicator-shaped category; the category
// tag is fixed at construction.
type IndicatorTransformer struct {
	category domain.Category
	analyzer IndicatorAnalyzer
	now      func() time.Time
}

// NewIndicatorTransformer creates an indicator transformer for one
// category. The analyzer may be nil, in which case Enrich is a no-op.
func NewIndicatorTransformer(category domain.Category, analyzer IndicatorAnalyzer) *IndicatorTransformer {
	return &IndicatorTransformer{
		category: category,
		analyzer: analyzer,
		now:      time.Now,
	}
}

// Category returns the category tag this transformer serves.
func (t *IndicatorTransformer) Category() domain.Category {
	return t.category
}

// Transform converts raw indicator rows. Rows without a date or a numeric
// value are skipped rather than failing the batch.
func (t *IndicatorTransformer) Transform(raw []RawRecord, meta Metadata) ([]domain.Record, error) {
	now := t.now().UTC()
	records := make([]domain.Record, 0, len(raw))

	for _, row := range raw {
		dateValue := getString(row, "date", "year", "period")
		date, err := normalizeDate(dateValue)
		if err != nil {
			continue
		}
		value, ok := getFloat(row, "value", "amount")
		if !ok {
			continue
		}

		indicatorCode := getString(row, "indicator_code", "indicator")
		if indicatorCode == "" {
			indicatorCode = meta.IndicatorCode
		}
		indicatorName := getString(row, "indicator_name")
		if indicatorName == "" {
			indicatorName = meta.IndicatorName
		}

		locationName := getString(row, "location", "area", "country")
		if locationName == "" {
			locationName = "Palestine"
		}

		rec := baseRecord(meta, "indicator", date, now)
		rec.Value = value
		rec.Unit = InferUnit(indicatorName)
		rec.IndicatorCode = indicatorCode
		rec.IndicatorName = indicatorName
		rec.Location = domain.Location{
			Name:        locationName,
			Coordinates: coordinates(row),
		}
		rec.ID = RecordID(meta.Category, indicatorCode, date, locationName, meta.Source)

		records = append(records, rec)
	}
	return records, nil
}

// Enrich attaches trend analysis over the batch's indicator series.
func (t *IndicatorTransformer) Enrich(records []domain.Record) {
	if t.analyzer == nil {
		return
	}
	t.analyzer.EnrichIndicators(records)
}
