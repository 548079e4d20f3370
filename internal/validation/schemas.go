package validation

import (
	"paldata/pkg/contracts/domain"
)

// builtinSchemas defines one schema per dataset category. Schema names
// match category names so the pipeline can key validation off the
// transformer's category directly.
func builtinSchemas() []Schema {
	indicator := Schema{
		Required: []string{"id", "type", "date", "value", "indicator_code"},
		Optional: []string{"indicator_name", "unit", "location.name", "sources"},
		Types:    withBase(map[string]FieldType{"indicator_code": TypeString, "indicator_name": TypeString}),
	}

	schemas := []Schema{
		{
			Name:     string(domain.CategoryConflict),
			Required: []string{"id", "type", "date", "location", "event_type"},
			Optional: []string{"fatalities", "injuries", "location.name", "sources"},
			Types: withBase(map[string]FieldType{
				"event_type": TypeString,
				"fatalities": TypeNumber,
				"injuries":   TypeNumber,
			}),
		},
	}

	for _, category := range []domain.Category{
		domain.CategoryEconomic, domain.CategoryHealth, domain.CategoryEducation,
		domain.CategoryWater, domain.CategoryRefugees, domain.CategoryPopulation,
	} {
		s := indicator
		s.Name = string(category)
		schemas = append(schemas, s)
	}

	schemas = append(schemas,
		Schema{
			Name:     string(domain.CategoryInfrastructure),
			Required: []string{"id", "type", "date", "location"},
			Optional: []string{"event_type", "value", "location.name", "sources"},
			Types:    withBase(nil),
		},
		Schema{
			Name:     string(domain.CategoryHumanitarian),
			Required: []string{"id", "type", "date", "value"},
			Optional: []string{"location.name", "unit", "sources"},
			Types:    withBase(nil),
		},
		Schema{
			Name:     string(domain.CategoryOther),
			Required: []string{"id", "type", "date"},
			Optional: []string{"value", "location.name", "sources"},
			Types:    withBase(nil),
		},
	)

	return schemas
}

func withBase(extra map[string]FieldType) map[string]FieldType {
	merged := map[string]FieldType{
		"id":       TypeString,
		"type":     TypeString,
		"category": TypeString,
		"date":     TypeDate,
		"location": TypeObject,
		"value":    TypeNumber,
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
