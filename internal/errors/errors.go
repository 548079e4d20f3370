package errors

import (
	"errors"
	"fmt"
)

// Error codes group the failures the pipeline raises as error values:
// structural (input is not the expected shape) and stage (a whole stage
// could not run). Record-level failures accumulate as validation field
// errors on the batch result instead of surfacing here.
const (
	CodeStructural = "STRUCTURAL_INPUT"
	CodeStage      = "STAGE_FAILED"
)

// PipelineError is a structured error produced by pipeline stages.
type PipelineError struct {
	Code    string      `json:"code"`
	Stage   string      `json:"stage,omitempty"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s: %s", e.Stage, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// New creates a new PipelineError with the given code and message.
func New(code, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message}
}

// Predefined errors for common scenarios.
var (
	ErrMissingOutputDir = New(CodeStage, "partitioning requested without an output directory")
	ErrNilTransformer   = New(CodeStage, "no transformer supplied")
	ErrUnknownSchema    = New(CodeStructural, "no schema registered under that name")
	ErrEmptyDataset     = New(CodeStructural, "dataset is empty or not a record list")
)

// StageError wraps a failure in a named pipeline stage.
func StageError(stage string, err error) *PipelineError {
	return &PipelineError{
		Code:    CodeStage,
		Stage:   stage,
		Message: err.Error(),
		Err:     err,
	}
}

// StructuralError describes input that is not the expected shape.
func StructuralError(message string) *PipelineError {
	return &PipelineError{Code: CodeStructural, Message: message}
}

// IsCode reports whether err is a PipelineError with the given code.
func IsCode(err error, code string) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}
