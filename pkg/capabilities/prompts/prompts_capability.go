// Package prompts implements the prompts capability: a registry of
// named prompt templates served over the prompts namespace.
package prompts

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/capability"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// PromptRenderer renders a prompt into its messages given the caller's
// arguments.
type PromptRenderer func(ctx context.Context, args map[string]string) (*protocol.PromptsGetResult, error)

// PromptWithRenderer pairs a wire-level prompt descriptor with its
// renderer.
type PromptWithRenderer struct {
	protocol.Prompt
	Render PromptRenderer
}

// NewPrompt creates a prompt definition with its renderer.
func NewPrompt(name, description string, arguments []protocol.PromptArgument, render PromptRenderer) *PromptWithRenderer {
	return &PromptWithRenderer{
		Prompt: protocol.Prompt{
			Name:        name,
			Description: description,
			Arguments:   arguments,
		},
		Render: render,
	}
}

// PromptsCapability exposes a prompt registry over the prompts
// namespace. Prompts are listed in registration order.
type PromptsCapability struct {
	*capability.BasicCapability

	mutex   sync.RWMutex
	prompts map[string]*PromptWithRenderer
	order   []string
}

// NewPromptsCapability creates an empty prompts capability.
func NewPromptsCapability() *PromptsCapability {
	options, _ := json.Marshal(map[string]interface{}{"listChanged": false})

	c := &PromptsCapability{
		prompts: make(map[string]*PromptWithRenderer),
	}

	c.BasicCapability = capability.NewBasicCapability(
		capability.CapabilityTypePrompts,
		protocol.CapabilityDefinition{Options: options},
		nil,
	)
	c.SetEndpoint(NewPromptsEndpoint(c))

	return c
}

// RegisterPrompt adds a prompt to the capability.
func (c *PromptsCapability) RegisterPrompt(prompt *PromptWithRenderer) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.prompts[prompt.Name]; exists {
		return errors.Newf(errors.CapabilityError, "prompt already registered: %s", prompt.Name)
	}

	c.prompts[prompt.Name] = prompt
	c.order = append(c.order, prompt.Name)
	return nil
}

// HandlePromptsList serves the prompts/list request.
func (c *PromptsCapability) HandlePromptsList(ctx context.Context, params *protocol.PromptsListParams) (*protocol.PromptsListResult, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	list := make([]protocol.Prompt, 0, len(c.order))
	for _, name := range c.order {
		list = append(list, c.prompts[name].Prompt)
	}
	return &protocol.PromptsListResult{Prompts: list}, nil
}

// HandlePromptsGet serves the prompts/get request.
func (c *PromptsCapability) HandlePromptsGet(ctx context.Context, params *protocol.PromptsGetParams) (*protocol.PromptsGetResult, error) {
	c.mutex.RLock()
	prompt, exists := c.prompts[params.Name]
	c.mutex.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.PromptNotFound, "prompt not found: %s", params.Name)
	}

	return prompt.Render(ctx, params.Arguments)
}

// PromptsCapabilityFactory creates a prompts capability from an option
// map.
func PromptsCapabilityFactory(options map[string]interface{}) (capability.Capability, error) {
	return NewPromptsCapability(), nil
}
