package tools

import (
	"context"
	"encoding/json"

	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// ToolsEndpoint serves the tools namespace methods.
type ToolsEndpoint struct {
	*protocol.BaseEndpoint
	capability *ToolsCapability
}

// NewToolsEndpoint creates the endpoint for a tools capability.
func NewToolsEndpoint(capability *ToolsCapability) *ToolsEndpoint {
	e := &ToolsEndpoint{
		BaseEndpoint: protocol.NewBaseEndpoint(protocol.ToolsNamespace),
		capability:   capability,
	}

	e.RegisterMethod("list", e.handleList)
	e.RegisterMethod("call", e.handleCall)

	return e
}

func (e *ToolsEndpoint) handleList(ctx context.Context, params json.RawMessage) (interface{}, error) {
	listParams := &protocol.ToolsListParams{}
	if len(params) > 0 {
		if err := json.Unmarshal(params, listParams); err != nil {
			return nil, &protocol.JSONRPCError{
				Code:    protocol.ErrorCodeInvalidParams,
				Message: "Invalid parameters: " + err.Error(),
			}
		}
	}

	return e.capability.HandleToolsList(ctx, listParams)
}

func (e *ToolsEndpoint) handleCall(ctx context.Context, params json.RawMessage) (interface{}, error) {
	callParams := &protocol.ToolsCallParams{}
	if err := json.Unmarshal(params, callParams); err != nil {
		return nil, &protocol.JSONRPCError{
			Code:    protocol.ErrorCodeInvalidParams,
			Message: "Invalid parameters: " + err.Error(),
		}
	}

	if callParams.Name == "" {
		return nil, &protocol.JSONRPCError{
			Code:    protocol.ErrorCodeInvalidParams,
			Message: "Invalid parameters: tool name is required",
		}
	}

	return e.capability.HandleToolsCall(ctx, callParams)
}
