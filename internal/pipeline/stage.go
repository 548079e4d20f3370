package pipeline

import (
	"time"
)

// Stage names in execution order.
const (
	StageTransform = "transform"
	StageEnrich    = "enrich"
	StageValidate  = "validate"
	StageLink      = "link"
	StagePartition = "partition"
)

// StageStatus represents the current status of a pipeline stage.
type StageStatus string

const (
	StageStatusPending   StageStatus = "pending"
	StageStatusActive    StageStatus = "active"
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
	StageStatusSkipped   StageStatus = "skipped"
)

// StageState records the runtime outcome of one stage within a run. The
// pipeline is synchronous per stage, so no locking is needed here.
type StageState struct {
	Name      string      `json:"name"`
	Status    StageStatus `json:"status"`
	StartTime *time.Time  `json:"start_time,omitempty"`
	EndTime   *time.Time  `json:"end_time,omitempty"`
	Message   string      `json:"message,omitempty"`
}

// NewStageState creates a stage state in the pending status.
func NewStageState(name string) *StageState {
	return &StageState{Name: name, Status: StageStatusPending}
}

// Start marks the stage active and sets the start time.
func (s *StageState) Start() {
	now := time.Now()
	s.StartTime = &now
	s.Status = StageStatusActive
}

// Complete marks the stage completed and sets the end time.
func (s *StageState) Complete() {
	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusCompleted
}

// Fail marks the stage failed with the given error.
func (s *StageState) Fail(err error) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusFailed
	s.Message = err.Error()
}

// Skip marks the stage skipped with the given reason.
func (s *StageState) Skip(reason string) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusSkipped
	s.Message = reason
}

// Duration returns how long the stage ran.
func (s *StageState) Duration() time.Duration {
	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}
