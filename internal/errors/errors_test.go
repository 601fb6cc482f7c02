package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ToolNotFound, "tool missing")
	assert.Equal(t, "[3000] tool missing", err.Error())

	wrapped := New(ToolExecution, "backend failed").WithCause(fmt.Errorf("timeout"))
	assert.Equal(t, "[3002] backend failed: timeout", wrapped.Error())
	assert.EqualError(t, wrapped.Unwrap(), "timeout")
}

func TestHasCode(t *testing.T) {
	err := Newf(DuplicateTool, "tool already registered: %s", "echo")
	assert.True(t, HasCode(err, DuplicateTool))
	assert.False(t, HasCode(err, ToolNotFound))
	assert.False(t, HasCode(fmt.Errorf("plain"), DuplicateTool))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, HasCode(wrapped, DuplicateTool))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ToolValidation, CodeOf(New(ToolValidation, "bad")))
	assert.Equal(t, Unknown, CodeOf(fmt.Errorf("plain")))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "bad input", MessageOf(New(ToolValidation, "bad input")))
	assert.Equal(t, "backend failed: timeout",
		MessageOf(New(ToolExecution, "backend failed").WithCause(fmt.Errorf("timeout"))))
	assert.Equal(t, "plain", MessageOf(fmt.Errorf("plain")))
}
