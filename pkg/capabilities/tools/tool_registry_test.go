package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

func countingTool(name string, calls *int) *ToolWithHandler {
	return NewTool(name, "test tool", protocol.ObjectSchema(
		map[string]*protocol.JSONSchema{
			"message": protocol.StringSchema("a message"),
		},
		[]string{"message"},
	), func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
		*calls++
		return NewSuccessToolResult("ok: " + args["message"].(string)), nil
	})
}

func TestToolRegistryRegister(t *testing.T) {
	registry := NewToolRegistry()

	calls := 0
	err := registry.Register(countingTool("echo", &calls))
	require.NoError(t, err)

	tool, exists := registry.Get("echo")
	assert.True(t, exists)
	assert.Equal(t, "echo", tool.Name)
	assert.Equal(t, 1, registry.Count())
}

func TestToolRegistryDuplicateName(t *testing.T) {
	registry := NewToolRegistry()

	first := 0
	second := 0
	require.NoError(t, registry.Register(countingTool("echo", &first)))

	err := registry.Register(countingTool("echo", &second))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.DuplicateTool))

	// The original registration stays in place.
	assert.Equal(t, 1, registry.Count())
	result, err := registry.Dispatch(context.Background(), "echo", map[string]interface{}{"message": "hi"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, 1, first)
	assert.Equal(t, 0, second)
}

func TestToolRegistryDefinitionsOrder(t *testing.T) {
	registry := NewToolRegistry()

	calls := 0
	require.NoError(t, registry.Register(countingTool("charlie", &calls)))
	require.NoError(t, registry.Register(countingTool("alpha", &calls)))
	require.NoError(t, registry.Register(countingTool("bravo", &calls)))

	names := func() []string {
		defs := registry.Definitions()
		names := make([]string, 0, len(defs))
		for _, d := range defs {
			names = append(names, d.Name)
		}
		return names
	}

	// Registration order, not lexical order, and stable across calls.
	expected := []string{"charlie", "alpha", "bravo"}
	assert.Equal(t, expected, names())
	assert.Equal(t, expected, names())
	assert.Equal(t, 0, calls)
}

func TestDispatchUnknownTool(t *testing.T) {
	registry := NewToolRegistry()

	calls := 0
	require.NoError(t, registry.Register(countingTool("echo", &calls)))

	result, err := registry.Dispatch(context.Background(), "missing", map[string]interface{}{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "unknown tool")
	assert.Contains(t, result.Content[0].Text, "missing")
	assert.Equal(t, 0, calls)
}

func TestDispatchMissingRequiredField(t *testing.T) {
	registry := NewToolRegistry()

	calls := 0
	require.NoError(t, registry.Register(countingTool("echo", &calls)))

	result, err := registry.Dispatch(context.Background(), "echo", map[string]interface{}{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "message")
	assert.Equal(t, 0, calls, "handler must not run when validation fails")
}

func TestDispatchInvokesHandlerExactlyOnce(t *testing.T) {
	registry := NewToolRegistry()

	calls := 0
	require.NoError(t, registry.Register(countingTool("echo", &calls)))

	result, err := registry.Dispatch(context.Background(), "echo", map[string]interface{}{"message": "hello"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "ok: hello", result.Content[0].Text)
	assert.Equal(t, 1, calls)
}

func TestDispatchHandlerError(t *testing.T) {
	registry := NewToolRegistry()

	tool := NewTool("boom", "always fails", nil,
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			return nil, errors.New(errors.ToolExecution, "backend unavailable")
		})
	require.NoError(t, registry.Register(tool))

	result, err := registry.Dispatch(context.Background(), "boom", map[string]interface{}{})
	require.NoError(t, err, "handler errors must not surface as dispatch errors")
	assert.True(t, result.IsError)
	assert.Equal(t, "backend unavailable", result.Content[0].Text)
}

func TestDispatchNilSchemaAcceptsAnything(t *testing.T) {
	registry := NewToolRegistry()

	var seen map[string]interface{}
	tool := NewTool("free", "no schema", nil,
		func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
			seen = args
			return NewSuccessToolResult("done"), nil
		})
	require.NoError(t, registry.Register(tool))

	args := map[string]interface{}{"anything": true, "n": 3.0}
	result, err := registry.Dispatch(context.Background(), "free", args)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, args, seen)
}
