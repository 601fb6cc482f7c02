package tools

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/adapterkit/mcp-adapters/internal/logging"
	"github.com/adapterkit/mcp-adapters/pkg/capability"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// ToolsCapability exposes a tool registry over the tools namespace.
type ToolsCapability struct {
	*capability.BasicCapability
	registry *ToolRegistry
	logger   *slog.Logger
}

// NewToolsCapability creates a tools capability around a registry. A
// nil registry gets a fresh empty one.
func NewToolsCapability(registry *ToolRegistry) *ToolsCapability {
	if registry == nil {
		registry = NewToolRegistry()
	}

	options, _ := json.Marshal(map[string]interface{}{"listChanged": false})

	c := &ToolsCapability{
		registry: registry,
		logger:   logging.NewLoggerFactory().CreateLogger("tools-capability"),
	}

	c.BasicCapability = capability.NewBasicCapability(
		capability.CapabilityTypeTools,
		protocol.CapabilityDefinition{Options: options},
		nil,
	)
	c.SetEndpoint(NewToolsEndpoint(c))

	return c
}

// Registry returns the capability's tool registry.
func (c *ToolsCapability) Registry() *ToolRegistry {
	return c.registry
}

// RegisterTool adds a tool to the capability's registry.
func (c *ToolsCapability) RegisterTool(tool *ToolWithHandler) error {
	return c.registry.Register(tool)
}

// HandleToolsList serves the tools/list request.
func (c *ToolsCapability) HandleToolsList(ctx context.Context, params *protocol.ToolsListParams) (*protocol.ToolsListResult, error) {
	return &protocol.ToolsListResult{
		Tools: c.registry.Definitions(),
	}, nil
}

// HandleToolsCall serves the tools/call request. All tool-level
// failures come back as results with IsError set.
func (c *ToolsCapability) HandleToolsCall(ctx context.Context, params *protocol.ToolsCallParams) (*protocol.ToolsCallResult, error) {
	logging.Debug(c.logger, "tool call", "tool", params.Name)

	result, err := c.registry.Dispatch(ctx, params.Name, params.Arguments)
	if err != nil {
		return nil, err
	}

	if result.IsError {
		logging.Warn(c.logger, "tool call failed", "tool", params.Name)
	}
	return result, nil
}

// ToolsCapabilityFactory creates a tools capability from an option map.
// The "registry" option injects a pre-populated registry.
func ToolsCapabilityFactory(options map[string]interface{}) (capability.Capability, error) {
	var registry *ToolRegistry
	if r, ok := options["registry"].(*ToolRegistry); ok {
		registry = r
	}
	return NewToolsCapability(registry), nil
}
