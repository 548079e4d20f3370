package pipeline

import (
	"time"

	"paldata/internal/partition"
	"paldata/internal/transform"
	"paldata/pkg/contracts/domain"
)

// ValidationSummary is the condensed validation block persisted with a
// dataset, small enough to serve alongside the data.
type ValidationSummary struct {
	QualityScore   float64 `json:"quality_score"`
	Completeness   float64 `json:"completeness"`
	ValidRecords   int     `json:"valid_records"`
	TotalRecords   int     `json:"total_records"`
	ErrorCount     int     `json:"error_count"`
	MeetsThreshold bool    `json:"meets_threshold"`
}

// PackageMetadata is the dataset-level descriptor written next to the data.
type PackageMetadata struct {
	RunID        string          `json:"run_id"`
	Source       string          `json:"source"`
	Organization string          `json:"organization,omitempty"`
	Category     domain.Category `json:"category"`
	RecordCount  int             `json:"record_count"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// OutputPackage is the persistence-ready bundle handed to the storage
// layer: metadata, the full record set, the validation summary and the
// partition outcome.
type OutputPackage struct {
	Metadata   PackageMetadata    `json:"metadata"`
	Data       []domain.Record    `json:"data"`
	Validation *ValidationSummary `json:"validation,omitempty"`
	Partitions *partition.Result  `json:"partitions,omitempty"`
}

// CreateOutputPackage assembles the persistence-ready package from a
// completed run.
func (p *Pipeline) CreateOutputPackage(result *Result, meta transform.Metadata) *OutputPackage {
	pkg := &OutputPackage{
		Metadata: PackageMetadata{
			RunID:        result.RunID,
			Source:       meta.Source,
			Organization: meta.Organization,
			Category:     meta.Category,
			RecordCount:  len(result.Transformed),
			GeneratedAt:  time.Now().UTC(),
		},
		Data:       result.Transformed,
		Partitions: result.Partitioned,
	}

	if result.Validated != nil {
		pkg.Validation = &ValidationSummary{
			QualityScore:   result.Validated.QualityScore,
			Completeness:   result.Validated.Completeness,
			ValidRecords:   result.Validated.ValidRecords,
			TotalRecords:   result.Validated.TotalRecords,
			ErrorCount:     len(result.Validated.Errors),
			MeetsThreshold: result.Validated.MeetsThreshold,
		}
	}
	return pkg
}
