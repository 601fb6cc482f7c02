package tools

import (
	"context"
	"sync"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// ToolRegistry holds the tools of a server and dispatches calls to
// them. Tools are listed in registration order.
type ToolRegistry struct {
	mutex sync.RWMutex
	tools map[string]*ToolWithHandler
	order []string
}

// NewToolRegistry creates a new empty tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]*ToolWithHandler),
	}
}

// Register adds a tool to the registry. Registering a second tool under
// an already-taken name fails and leaves the registry unchanged.
func (r *ToolRegistry) Register(tool *ToolWithHandler) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return errors.Newf(errors.DuplicateTool, "tool already registered: %s", tool.Name)
	}

	r.tools[tool.Name] = tool
	r.order = append(r.order, tool.Name)
	return nil
}

// MustRegister registers a tool and panics on failure. Intended for
// static tool sets built at startup.
func (r *ToolRegistry) MustRegister(tool *ToolWithHandler) {
	if err := r.Register(tool); err != nil {
		panic(err)
	}
}

// Get returns a tool by name.
func (r *ToolRegistry) Get(name string) (*ToolWithHandler, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	tool, exists := r.tools[name]
	return tool, exists
}

// Definitions returns the wire-level definitions of all registered
// tools, in registration order. Repeated calls with no intervening
// registration return the same sequence.
func (r *ToolRegistry) Definitions() []protocol.Tool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	definitions := make([]protocol.Tool, 0, len(r.order))
	for _, name := range r.order {
		definitions = append(definitions, r.tools[name].Tool)
	}
	return definitions
}

// Count returns the number of registered tools.
func (r *ToolRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.order)
}

// Dispatch resolves a call by name, validates the arguments against the
// tool's schema and invokes the handler exactly once. Every failure
// mode surfaces as a result with IsError set; the error return is
// reserved for faults in the dispatch machinery itself and is currently
// always nil.
func (r *ToolRegistry) Dispatch(ctx context.Context, name string, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
	tool, exists := r.Get(name)
	if !exists {
		return NewErrorToolResult("unknown tool: " + name), nil
	}

	if err := ValidateArguments(tool.InputSchema, args); err != nil {
		return NewErrorToolResult("invalid arguments for tool " + name + ": " + errors.MessageOf(err)), nil
	}

	if tool.Handler == nil {
		return NewErrorToolResult("tool has no handler: " + name), nil
	}

	result, err := tool.Handler(ctx, args)
	if err != nil {
		return NewErrorToolResult(errors.MessageOf(err)), nil
	}

	if result == nil {
		return NewSuccessToolResult(""), nil
	}
	return result, nil
}
