package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pipeerrors "paldata/internal/errors"
	"paldata/pkg/contracts/domain"
)

func validConflictRecord() domain.Record {
	return domain.Record{
		ID:        "a1b2c3d4",
		Type:      "conflict_event",
		Category:  domain.CategoryConflict,
		Date:      "2023-10-10",
		Location:  domain.Location{Name: "Gaza City"},
		EventType: "airstrike",
		Sources:   []domain.Source{{Name: "acled"}},
	}
}

func TestValidateAllValid(t *testing.T) {
	v := NewSchemaValidator(nil, 0.8)

	records := []domain.Record{validConflictRecord(), validConflictRecord()}
	result := v.Validate(records, "conflict")

	assert.Equal(t, 2, result.TotalRecords)
	assert.Equal(t, 2, result.ValidRecords)
	assert.InDelta(t, 1.0, result.QualityScore, 1e-9)
	assert.True(t, result.MeetsThreshold)
	assert.Empty(t, result.Errors)

	for i := range records {
		assert.InDelta(t, 1.0, records[i].Quality.Score, 1e-9, "record %d", i)
		assert.Greater(t, records[i].Quality.Completeness, 0.0)
	}
}

func TestValidateMissingRequiredField(t *testing.T) {
	v := NewSchemaValidator(nil, 0.8)

	invalid := validConflictRecord()
	invalid.EventType = ""

	result := v.Validate([]domain.Record{validConflictRecord(), invalid}, "conflict")

	assert.Equal(t, 2, result.TotalRecords)
	assert.Equal(t, 1, result.ValidRecords)
	assert.InDelta(t, 0.5, result.QualityScore, 1e-9)
	assert.False(t, result.MeetsThreshold)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "event_type", result.Errors[0].Field)
	assert.Equal(t, 1, result.Errors[0].RecordIndex)
}

func TestValidateTypeErrors(t *testing.T) {
	v := NewSchemaValidator(nil, 0.8)

	rec := validConflictRecord()
	rec.Date = "10/10/2023"
	records := []domain.Record{rec}

	result := v.Validate(records, "conflict")

	assert.Equal(t, 0, result.ValidRecords)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "date", result.Errors[0].Field)
	assert.Less(t, records[0].Quality.Score, 1.0)
}

func TestValidateStructuralErrors(t *testing.T) {
	v := NewSchemaValidator(nil, 0.8)

	t.Run("nil batch", func(t *testing.T) {
		result := v.Validate(nil, "conflict")
		assert.Equal(t, 0, result.TotalRecords)
		assert.InDelta(t, 0.0, result.QualityScore, 1e-9)
		assert.False(t, result.MeetsThreshold)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, -1, result.Errors[0].RecordIndex)
		require.NotNil(t, result.Structural)
		assert.ErrorIs(t, result.Structural, pipeerrors.ErrEmptyDataset)
	})

	t.Run("unknown schema", func(t *testing.T) {
		result := v.Validate([]domain.Record{validConflictRecord()}, "astrology")
		assert.Equal(t, 0, result.TotalRecords)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "schema", result.Errors[0].Field)
		require.NotNil(t, result.Structural)
		assert.ErrorIs(t, result.Structural, pipeerrors.ErrUnknownSchema)
		assert.Equal(t, pipeerrors.CodeStructural, result.Structural.Code)
	})

	t.Run("empty batch scores zero without errors", func(t *testing.T) {
		result := v.Validate([]domain.Record{}, "conflict")
		assert.Equal(t, 0, result.TotalRecords)
		assert.InDelta(t, 0.0, result.QualityScore, 1e-9)
		assert.Empty(t, result.Errors)
		assert.Nil(t, result.Structural)
	})
}

func TestValidateScoreMonotonicity(t *testing.T) {
	v := NewSchemaValidator(nil, 0.8)

	batch := func(invalid int) []domain.Record {
		records := make([]domain.Record, 4)
		for i := range records {
			records[i] = validConflictRecord()
			if i < invalid {
				records[i].ID = ""
			}
		}
		return records
	}

	var prev = 2.0
	for invalid := 0; invalid <= 4; invalid++ {
		score := v.Validate(batch(invalid), "conflict").QualityScore
		assert.Less(t, score, prev, "%d invalid records", invalid)
		prev = score
	}
}

func TestValidateThresholdIsStrict(t *testing.T) {
	v := NewSchemaValidator(nil, 0.5)

	invalid := validConflictRecord()
	invalid.ID = ""
	result := v.Validate([]domain.Record{validConflictRecord(), invalid}, "conflict")

	assert.InDelta(t, 0.5, result.QualityScore, 1e-9)
	assert.False(t, result.MeetsThreshold)
}

func TestValidateIndicatorSchema(t *testing.T) {
	v := NewSchemaValidator(nil, 0.8)

	rec := domain.Record{
		ID:            "x1",
		Type:          "economic_indicator",
		Category:      domain.CategoryEconomic,
		Date:          "2023-05-01",
		Value:         3.2,
		IndicatorCode: "NY.GDP.MKTP.KD.ZG",
	}
	result := v.Validate([]domain.Record{rec}, "economic")

	assert.Equal(t, 1, result.ValidRecords)
	assert.True(t, result.MeetsThreshold)
}

func TestValidateCompleteness(t *testing.T) {
	v := NewSchemaValidator(nil, 0.8)

	// Required fields present, location has no name, no sources. Numeric
	// optionals always count as present.
	records := []domain.Record{{
		ID:        "x1",
		Type:      "conflict_event",
		Date:      "2023-10-10",
		Location:  domain.Location{Region: domain.RegionGaza},
		EventType: "shelling",
	}}
	result := v.Validate(records, "conflict")

	assert.InDelta(t, 7.0/9.0, result.Completeness, 1e-9)
	assert.InDelta(t, 7.0/9.0, records[0].Quality.Completeness, 1e-9)
}

func TestRegisterSchema(t *testing.T) {
	v := NewSchemaValidator(nil, 0.8)
	v.RegisterSchema(Schema{
		Name:     "custom",
		Required: []string{"id"},
		Types:    map[string]FieldType{"id": TypeString},
	})

	result := v.Validate([]domain.Record{{ID: "only-id"}}, "custom")
	assert.Equal(t, 1, result.ValidRecords)
	assert.InDelta(t, 1.0, result.QualityScore, 1e-9)
}
