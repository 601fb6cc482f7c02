// Package tools implements the tools capability: a registry of named
// tools, argument validation against their schemas and the tools/list
// and tools/call endpoint.
package tools

import (
	"context"

	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// ToolHandler executes a tool call with already-validated arguments.
// A returned error is reported to the caller as an in-band failure
// result, not as a protocol error.
type ToolHandler func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error)

// ToolWithHandler pairs a wire-level tool definition with its handler.
type ToolWithHandler struct {
	protocol.Tool
	Handler ToolHandler
}

// NewTool creates a tool definition with its handler.
func NewTool(name, description string, schema *protocol.JSONSchema, handler ToolHandler) *ToolWithHandler {
	return &ToolWithHandler{
		Tool: protocol.Tool{
			Name:        name,
			Description: description,
			InputSchema: schema,
		},
		Handler: handler,
	}
}

// NewTextContent creates a text content block.
func NewTextContent(text string) protocol.ToolResultContent {
	return protocol.ToolResultContent{Type: "text", Text: text}
}

// NewSuccessToolResult creates a successful result with a single text
// content block.
func NewSuccessToolResult(text string) *protocol.ToolsCallResult {
	return &protocol.ToolsCallResult{
		Content: []protocol.ToolResultContent{NewTextContent(text)},
	}
}

// NewErrorToolResult creates a failure result with a single text content
// block describing the error.
func NewErrorToolResult(text string) *protocol.ToolsCallResult {
	return &protocol.ToolsCallResult{
		Content: []protocol.ToolResultContent{NewTextContent(text)},
		IsError: true,
	}
}
