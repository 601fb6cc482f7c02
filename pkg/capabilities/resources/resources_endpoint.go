package resources

import (
	"context"
	"encoding/json"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// ResourcesEndpoint serves the resources namespace methods.
type ResourcesEndpoint struct {
	*protocol.BaseEndpoint
	capability *ResourcesCapability
}

// NewResourcesEndpoint creates the endpoint for a resources capability.
func NewResourcesEndpoint(capability *ResourcesCapability) *ResourcesEndpoint {
	e := &ResourcesEndpoint{
		BaseEndpoint: protocol.NewBaseEndpoint(protocol.ResourcesNamespace),
		capability:   capability,
	}

	e.RegisterMethod("list", e.handleList)
	e.RegisterMethod("read", e.handleRead)

	return e
}

func (e *ResourcesEndpoint) handleList(ctx context.Context, params json.RawMessage) (interface{}, error) {
	listParams := &protocol.ResourcesListParams{}
	if len(params) > 0 {
		if err := json.Unmarshal(params, listParams); err != nil {
			return nil, &protocol.JSONRPCError{
				Code:    protocol.ErrorCodeInvalidParams,
				Message: "Invalid parameters: " + err.Error(),
			}
		}
	}

	return e.capability.HandleResourcesList(ctx, listParams)
}

func (e *ResourcesEndpoint) handleRead(ctx context.Context, params json.RawMessage) (interface{}, error) {
	readParams := &protocol.ResourcesReadParams{}
	if err := json.Unmarshal(params, readParams); err != nil {
		return nil, &protocol.JSONRPCError{
			Code:    protocol.ErrorCodeInvalidParams,
			Message: "Invalid parameters: " + err.Error(),
		}
	}

	if readParams.URI == "" {
		return nil, &protocol.JSONRPCError{
			Code:    protocol.ErrorCodeInvalidParams,
			Message: "Invalid parameters: resource URI is required",
		}
	}

	result, err := e.capability.HandleResourcesRead(ctx, readParams)
	if err != nil {
		if errors.HasCode(err, errors.ResourceNotFound) {
			return nil, &protocol.JSONRPCError{
				Code:    protocol.ErrorCodeInvalidParams,
				Message: errors.MessageOf(err),
			}
		}
		return nil, err
	}
	return result, nil
}
