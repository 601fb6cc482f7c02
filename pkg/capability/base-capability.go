package capability

import (
	"context"

	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// CapabilityError represents an error in capability handling.
type CapabilityError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *CapabilityError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap implements the unwrapping interface.
func (e *CapabilityError) Unwrap() error {
	return e.Cause
}

// WithCause adds a causal error.
func (e *CapabilityError) WithCause(err error) *CapabilityError {
	e.Cause = err
	return e
}

// BasicCapability provides a default implementation of the Capability
// interface that concrete capabilities embed.
type BasicCapability struct {
	capType    CapabilityType
	definition protocol.CapabilityDefinition
	endpoint   protocol.Endpoint
}

// NewBasicCapability creates a new basic capability.
func NewBasicCapability(capType CapabilityType, definition protocol.CapabilityDefinition, endpoint protocol.Endpoint) *BasicCapability {
	return &BasicCapability{
		capType:    capType,
		definition: definition,
		endpoint:   endpoint,
	}
}

// Type returns the capability type.
func (c *BasicCapability) Type() CapabilityType {
	return c.capType
}

// Definition returns the wire-level capability definition.
func (c *BasicCapability) Definition() protocol.CapabilityDefinition {
	return c.definition
}

// Endpoint returns the endpoint handling the capability's methods.
func (c *BasicCapability) Endpoint() protocol.Endpoint {
	return c.endpoint
}

// SetEndpoint replaces the capability's endpoint.
func (c *BasicCapability) SetEndpoint(endpoint protocol.Endpoint) {
	c.endpoint = endpoint
}

// Initialize prepares the capability for use.
func (c *BasicCapability) Initialize(ctx context.Context) error {
	return nil
}

// Shutdown releases any resources held by the capability.
func (c *BasicCapability) Shutdown(ctx context.Context) error {
	return nil
}
