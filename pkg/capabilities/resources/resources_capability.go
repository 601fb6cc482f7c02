// Package resources implements the resources capability: providers
// contribute listable, readable resources served over the resources
// namespace.
package resources

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/adapterkit/mcp-adapters/internal/errors"
	"github.com/adapterkit/mcp-adapters/pkg/capability"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// ResourceProvider contributes resources to a server. A provider's Read
// returns a ResourceNotFound coded error for URIs it does not own.
type ResourceProvider interface {
	// ListResources returns the resources currently available.
	ListResources(ctx context.Context) ([]protocol.Resource, error)

	// ReadResource returns the contents of one resource by URI.
	ReadResource(ctx context.Context, uri string) ([]protocol.ResourceContents, error)
}

// ResourcesCapability aggregates resource providers over the resources
// namespace.
type ResourcesCapability struct {
	*capability.BasicCapability

	mutex     sync.RWMutex
	providers []ResourceProvider
}

// NewResourcesCapability creates a resources capability.
func NewResourcesCapability(providers ...ResourceProvider) *ResourcesCapability {
	options, _ := json.Marshal(map[string]interface{}{"listChanged": false, "subscribe": false})

	c := &ResourcesCapability{
		providers: providers,
	}

	c.BasicCapability = capability.NewBasicCapability(
		capability.CapabilityTypeResources,
		protocol.CapabilityDefinition{Options: options},
		nil,
	)
	c.SetEndpoint(NewResourcesEndpoint(c))

	return c
}

// AddProvider registers an additional resource provider.
func (c *ResourcesCapability) AddProvider(provider ResourceProvider) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.providers = append(c.providers, provider)
}

// HandleResourcesList serves the resources/list request by merging the
// listings of all providers, in provider registration order.
func (c *ResourcesCapability) HandleResourcesList(ctx context.Context, params *protocol.ResourcesListParams) (*protocol.ResourcesListResult, error) {
	c.mutex.RLock()
	providers := make([]ResourceProvider, len(c.providers))
	copy(providers, c.providers)
	c.mutex.RUnlock()

	all := make([]protocol.Resource, 0)
	for _, provider := range providers {
		resources, err := provider.ListResources(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, resources...)
	}

	return &protocol.ResourcesListResult{Resources: all}, nil
}

// HandleResourcesRead serves the resources/read request. Providers are
// consulted in order; the first one that owns the URI answers.
func (c *ResourcesCapability) HandleResourcesRead(ctx context.Context, params *protocol.ResourcesReadParams) (*protocol.ResourcesReadResult, error) {
	c.mutex.RLock()
	providers := make([]ResourceProvider, len(c.providers))
	copy(providers, c.providers)
	c.mutex.RUnlock()

	for _, provider := range providers {
		contents, err := provider.ReadResource(ctx, params.URI)
		if err != nil {
			if errors.HasCode(err, errors.ResourceNotFound) {
				continue
			}
			return nil, err
		}
		return &protocol.ResourcesReadResult{Contents: contents}, nil
	}

	return nil, errors.Newf(errors.ResourceNotFound, "resource not found: %s", params.URI)
}

// ResourcesCapabilityFactory creates a resources capability from an
// option map. The "providers" option injects initial providers.
func ResourcesCapabilityFactory(options map[string]interface{}) (capability.Capability, error) {
	var providers []ResourceProvider
	if p, ok := options["providers"].([]ResourceProvider); ok {
		providers = p
	}
	return NewResourcesCapability(providers...), nil
}
