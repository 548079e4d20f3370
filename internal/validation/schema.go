package validation

import (
	"fmt"
	"log/slog"
	"time"

	pipeerrors "paldata/internal/errors"
	"paldata/pkg/contracts/domain"
)

// FieldType is the expected primitive type of a schema field.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeDate   FieldType = "date"
	TypeObject FieldType = "object"
)

// Schema names the required and optional fields of a category and the
// primitive type each must have when present.
type Schema struct {
	Name     string
	Required []string
	Optional []string
	Types    map[string]FieldType
}

// FieldError records one failed check for one record. Record processing
// continues past field errors; they accumulate instead of aborting.
type FieldError struct {
	Field       string `json:"field"`
	Message     string `json:"message"`
	RecordIndex int    `json:"recordIndex"`
}

// Result is the quality outcome of validating one batch against a schema.
// Structural carries the coded error when the input itself was unusable;
// the scores are all zero in that case.
type Result struct {
	SchemaName     string                    `json:"schema"`
	TotalRecords   int                       `json:"total_records"`
	ValidRecords   int                       `json:"valid_records"`
	QualityScore   float64                   `json:"quality_score"`
	Completeness   float64                   `json:"completeness"`
	MeetsThreshold bool                      `json:"meets_threshold"`
	Structural     *pipeerrors.PipelineError `json:"structural_error,omitempty"`
	Errors         []FieldError              `json:"errors,omitempty"`
}

// fieldValue extracts a named schema field from a record. The closed map
// below is the only coupling between schema field names and the Record
// struct.
type fieldValue func(*domain.Record) interface{}

var fieldAccessors = map[string]fieldValue{
	"id":             func(r *domain.Record) interface{} { return r.ID },
	"type":           func(r *domain.Record) interface{} { return r.Type },
	"category":       func(r *domain.Record) interface{} { return string(r.Category) },
	"date":           func(r *domain.Record) interface{} { return r.Date },
	"location":       func(r *domain.Record) interface{} { return r.Location },
	"location.name":  func(r *domain.Record) interface{} { return r.Location.Name },
	"value":          func(r *domain.Record) interface{} { return r.Value },
	"unit":           func(r *domain.Record) interface{} { return string(r.Unit) },
	"event_type":     func(r *domain.Record) interface{} { return r.EventType },
	"fatalities":     func(r *domain.Record) interface{} { return float64(r.Fatalities) },
	"injuries":       func(r *domain.Record) interface{} { return float64(r.Injuries) },
	"indicator_code": func(r *domain.Record) interface{} { return r.IndicatorCode },
	"indicator_name": func(r *domain.Record) interface{} { return r.IndicatorName },
	"sources":        func(r *domain.Record) interface{} { return r.Sources },
}

// SchemaValidator scores batches of canonical records against named
// schemas. Validation is pure: it mutates nothing but the records' quality
// blocks and always returns a result, degrading to a zero score on
// structural problems instead of failing.
type SchemaValidator struct {
	logger    *slog.Logger
	threshold float64
	schemas   map[string]Schema
}

// NewSchemaValidator creates a validator with the built-in category schemas
// and the given quality threshold.
func NewSchemaValidator(logger *slog.Logger, threshold float64) *SchemaValidator {
	if logger == nil {
		logger = slog.Default()
	}
	if threshold <= 0 {
		threshold = 0.8
	}
	v := &SchemaValidator{
		logger:    logger,
		threshold: threshold,
		schemas:   make(map[string]Schema),
	}
	for _, s := range builtinSchemas() {
		v.schemas[s.Name] = s
	}
	return v
}

// RegisterSchema adds or replaces a named schema.
func (v *SchemaValidator) RegisterSchema(s Schema) {
	v.schemas[s.Name] = s
}

// Validate scores records against the named schema. A nil batch or an
// unknown schema yields a degenerate all-zero result with a single
// structural error rather than a fault.
func (v *SchemaValidator) Validate(records []domain.Record, schemaName string) *Result {
	result := &Result{SchemaName: schemaName}

	schema, ok := v.schemas[schemaName]
	if !ok {
		result.Structural = pipeerrors.ErrUnknownSchema
		result.Errors = append(result.Errors, FieldError{
			Field:       "schema",
			Message:     fmt.Sprintf("%s: %q", pipeerrors.ErrUnknownSchema.Message, schemaName),
			RecordIndex: -1,
		})
		return result
	}
	if records == nil {
		result.Structural = pipeerrors.ErrEmptyDataset
		result.Errors = append(result.Errors, FieldError{
			Field:       "records",
			Message:     pipeerrors.ErrEmptyDataset.Message,
			RecordIndex: -1,
		})
		return result
	}

	result.TotalRecords = len(records)
	if len(records) == 0 {
		return result
	}

	var completenessSum float64
	for i := range records {
		errs, passed, checks, present := v.validateRecord(&records[i], schema, i)
		result.Errors = append(result.Errors, errs...)
		if len(errs) == 0 {
			result.ValidRecords++
		}
		if checks > 0 {
			records[i].Quality.Score = float64(passed) / float64(checks)
		}
		records[i].Quality.Completeness = present
		completenessSum += present
	}

	result.QualityScore = float64(result.ValidRecords) / float64(result.TotalRecords)
	result.Completeness = completenessSum / float64(result.TotalRecords)
	result.MeetsThreshold = result.QualityScore > v.threshold

	v.logger.Info("validated batch",
		slog.String("schema", schemaName),
		slog.Int("total", result.TotalRecords),
		slog.Int("valid", result.ValidRecords),
		slog.Float64("quality_score", result.QualityScore))

	return result
}

// validateRecord runs required-field and type checks for one record.
// It returns the accumulated field errors, the passed/total check counts
// and the field-presence completeness over the schema's field set.
func (v *SchemaValidator) validateRecord(rec *domain.Record, schema Schema, index int) ([]FieldError, int, int, float64) {
	var errs []FieldError
	var passed, checks int

	for _, field := range schema.Required {
		checks++
		value, ok := lookupField(rec, field)
		if !ok || isEmpty(value) {
			errs = append(errs, FieldError{
				Field:       field,
				Message:     "required field is missing or empty",
				RecordIndex: index,
			})
			continue
		}
		passed++
	}

	for field, want := range schema.Types {
		value, ok := lookupField(rec, field)
		if !ok || isEmpty(value) {
			continue // presence is the required-check's concern
		}
		checks++
		if err := checkType(value, want); err != nil {
			errs = append(errs, FieldError{
				Field:       field,
				Message:     err.Error(),
				RecordIndex: index,
			})
			continue
		}
		passed++
	}

	present := 0
	fields := len(schema.Required) + len(schema.Optional)
	for _, field := range append(append([]string{}, schema.Required...), schema.Optional...) {
		if value, ok := lookupField(rec, field); ok && !isEmpty(value) {
			present++
		}
	}

	completeness := 1.0
	if fields > 0 {
		completeness = float64(present) / float64(fields)
	}
	return errs, passed, checks, completeness
}

func lookupField(rec *domain.Record, field string) (interface{}, bool) {
	accessor, ok := fieldAccessors[field]
	if !ok {
		return nil, false
	}
	return accessor(rec), true
}

func isEmpty(value interface{}) bool {
	switch v := value.(type) {
	case string:
		return v == ""
	case domain.Location:
		return v.Name == "" && v.Coordinates == nil && v.Region == ""
	case []domain.Source:
		return len(v) == 0
	case nil:
		return true
	default:
		return false
	}
}

func checkType(value interface{}, want FieldType) error {
	switch want {
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case TypeNumber:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
	case TypeDate:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected date string, got %T", value)
		}
		if _, err := time.Parse(domain.DateLayout, s); err != nil {
			return fmt.Errorf("expected YYYY-MM-DD date, got %q", s)
		}
	case TypeObject:
		switch value.(type) {
		case string, float64:
			return fmt.Errorf("expected object, got %T", value)
		}
	}
	return nil
}
