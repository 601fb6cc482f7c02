package prompts

import (
	"context"
	"encoding/json"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// PromptsEndpoint serves the prompts namespace methods.
type PromptsEndpoint struct {
	*protocol.BaseEndpoint
	capability *PromptsCapability
}

// NewPromptsEndpoint creates the endpoint for a prompts capability.
func NewPromptsEndpoint(capability *PromptsCapability) *PromptsEndpoint {
	e := &PromptsEndpoint{
		BaseEndpoint: protocol.NewBaseEndpoint(protocol.PromptsNamespace),
		capability:   capability,
	}

	e.RegisterMethod("list", e.handleList)
	e.RegisterMethod("get", e.handleGet)

	return e
}

func (e *PromptsEndpoint) handleList(ctx context.Context, params json.RawMessage) (interface{}, error) {
	listParams := &protocol.PromptsListParams{}
	if len(params) > 0 {
		if err := json.Unmarshal(params, listParams); err != nil {
			return nil, &protocol.JSONRPCError{
				Code:    protocol.ErrorCodeInvalidParams,
				Message: "Invalid parameters: " + err.Error(),
			}
		}
	}

	return e.capability.HandlePromptsList(ctx, listParams)
}

func (e *PromptsEndpoint) handleGet(ctx context.Context, params json.RawMessage) (interface{}, error) {
	getParams := &protocol.PromptsGetParams{}
	if err := json.Unmarshal(params, getParams); err != nil {
		return nil, &protocol.JSONRPCError{
			Code:    protocol.ErrorCodeInvalidParams,
			Message: "Invalid parameters: " + err.Error(),
		}
	}

	if getParams.Name == "" {
		return nil, &protocol.JSONRPCError{
			Code:    protocol.ErrorCodeInvalidParams,
			Message: "Invalid parameters: prompt name is required",
		}
	}

	result, err := e.capability.HandlePromptsGet(ctx, getParams)
	if err != nil {
		if errors.HasCode(err, errors.PromptNotFound) {
			return nil, &protocol.JSONRPCError{
				Code:    protocol.ErrorCodeInvalidParams,
				Message: errors.MessageOf(err),
			}
		}
		return nil, err
	}
	return result, nil
}
