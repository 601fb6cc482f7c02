// Package capability defines server capabilities and their registry.
package capability

import (
	"context"

	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// CapabilityType identifies a server capability family.
type CapabilityType string

const (
	// CapabilityTypeTools is the tools capability.
	CapabilityTypeTools CapabilityType = "tools"

	// CapabilityTypeResources is the resources capability.
	CapabilityTypeResources CapabilityType = "resources"

	// CapabilityTypePrompts is the prompts capability.
	CapabilityTypePrompts CapabilityType = "prompts"
)

// Capability is one feature family a server can expose during the
// initialize handshake.
type Capability interface {
	// Type returns the capability type.
	Type() CapabilityType

	// Definition returns the wire-level capability definition.
	Definition() protocol.CapabilityDefinition

	// Endpoint returns the endpoint handling the capability's methods,
	// or nil if the capability has no request surface.
	Endpoint() protocol.Endpoint

	// Initialize prepares the capability for use.
	Initialize(ctx context.Context) error

	// Shutdown releases any resources held by the capability.
	Shutdown(ctx context.Context) error
}

// CapabilityFactory creates a capability from a free-form option map.
type CapabilityFactory func(options map[string]interface{}) (Capability, error)

// CapabilityRegistry maps capability types to their factories.
type CapabilityRegistry struct {
	factories map[CapabilityType]CapabilityFactory
}

// NewCapabilityRegistry creates a new empty capability registry.
func NewCapabilityRegistry() *CapabilityRegistry {
	return &CapabilityRegistry{
		factories: make(map[CapabilityType]CapabilityFactory),
	}
}

// Register registers a factory for a capability type.
func (r *CapabilityRegistry) Register(capType CapabilityType, factory CapabilityFactory) {
	r.factories[capType] = factory
}

// Create instantiates a capability of the given type.
func (r *CapabilityRegistry) Create(capType CapabilityType, options map[string]interface{}) (Capability, error) {
	factory, exists := r.factories[capType]
	if !exists {
		return nil, &CapabilityError{
			Message: "capability type not registered: " + string(capType),
		}
	}
	return factory(options)
}

// Has checks if a capability type is registered.
func (r *CapabilityRegistry) Has(capType CapabilityType) bool {
	_, exists := r.factories[capType]
	return exists
}

// Types returns the registered capability types.
func (r *CapabilityRegistry) Types() []CapabilityType {
	types := make([]CapabilityType, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	return types
}
