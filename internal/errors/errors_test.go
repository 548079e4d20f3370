package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineErrorMessage(t *testing.T) {
	assert.Equal(t, "transform: boom",
		StageError("transform", stderrors.New("boom")).Error())
	assert.Equal(t, "bad shape", StructuralError("bad shape").Error())
}

func TestPipelineErrorUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := StageError("partition", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, fmt.Errorf("run failed: %w", err), cause)
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(ErrMissingOutputDir, CodeStage))
	assert.True(t, IsCode(StructuralError("x"), CodeStructural))
	assert.False(t, IsCode(StructuralError("x"), CodeStage))
	assert.False(t, IsCode(stderrors.New("plain"), CodeStage))
	assert.False(t, IsCode(nil, CodeStage))

	wrapped := fmt.Errorf("context: %w", ErrUnknownSchema)
	assert.True(t, IsCode(wrapped, CodeStructural))
}
