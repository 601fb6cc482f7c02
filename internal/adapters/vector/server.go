package vector

import (
	"github.com/adapterkit/mcp-adapters/internal/config"
	"github.com/adapterkit/mcp-adapters/pkg/server"
)

// NewServer builds the vector database adapter server.
func NewServer(cfg *config.Config, opts ...server.ServerOption) (*server.Server, error) {
	collections, err := NewQdrantCollections(cfg.Vector)
	if err != nil {
		return nil, err
	}
	return NewServerWithCollections(collections, opts...)
}

// NewServerWithCollections builds the adapter server over an explicit
// backend, used by tests.
func NewServerWithCollections(collections Collections, opts ...server.ServerOption) (*server.Server, error) {
	options := []server.ServerOption{
		server.WithTools(Tools(collections)...),
		server.WithInstructions("Vector database adapter. Manage collections with the qdrant-* tools."),
	}
	options = append(options, opts...)

	return server.NewServer("vector-adapter", "0.1.0", options...)
}
