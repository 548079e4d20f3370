package transform

import (
	"time"

	"paldata/pkg/contracts/domain"
)

// ConflictTransformer converts raw conflict-event records into canonical
// form. Events carry an event type, casualty counts and usually a precise
// location.
type ConflictTransformer struct {
	now func() time.Time
}

// NewConflictTransformer creates the conflict transformer.
func NewConflictTransformer() *ConflictTransformer {
	return &ConflictTransformer{now: time.Now}
}

// Category returns the category tag this transformer serves.
func (t *ConflictTransformer) Category() domain.Category {
	return domain.CategoryConflict
}

// Transform converts raw event records. Rows without a recognizable date
// are skipped rather than failing the batch.
func (t *ConflictTransformer) Transform(raw []RawRecord, meta Metadata) ([]domain.Record, error) {
	now := t.now().UTC()
	records := make([]domain.Record, 0, len(raw))

	for _, row := range raw {
		dateValue := getString(row, "date", "event_date", "occurred_at")
		date, err := normalizeDate(dateValue)
		if err != nil {
			continue
		}

		locationName := getString(row, "location", "place", "admin2", "admin1")
		rec := baseRecord(meta, "conflict_event", date, now)
		rec.EventType = getString(row, "event_type", "sub_event_type", "type")
		if fatalities, ok := getFloat(row, "fatalities", "deaths", "killed"); ok {
			rec.Fatalities = int(fatalities)
		}
		if injuries, ok := getFloat(row, "injuries", "wounded", "injured"); ok {
			rec.Injuries = int(injuries)
		}
		if severity, ok := getFloat(row, "severity"); ok {
			rec.Severity = &severity
		}
		rec.Value = float64(rec.Fatalities)
		rec.Unit = domain.UnitCount
		rec.Location = domain.Location{
			Name:        locationName,
			Coordinates: coordinates(row),
			AdminLevels: domain.AdminLevels{
				Level1: getString(row, "admin1", "governorate"),
				Level2: getString(row, "admin2", "district"),
			},
		}
		rec.ID = RecordID(meta.Category, rec.EventType, date, locationName, meta.Source)

		records = append(records, rec)
	}
	return records, nil
}
