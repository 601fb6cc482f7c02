package storage

import (
	"github.com/adapterkit/mcp-adapters/internal/config"
	"github.com/adapterkit/mcp-adapters/pkg/server"
)

// NewServer builds the object storage adapter server.
func NewServer(cfg *config.Config, opts ...server.ServerOption) (*server.Server, error) {
	store, err := NewMinioStore(cfg.Storage)
	if err != nil {
		return nil, err
	}
	return NewServerWithStore(store, opts...)
}

// NewServerWithStore builds the adapter server over an explicit
// backend, used by tests.
func NewServerWithStore(store ObjectStore, opts ...server.ServerOption) (*server.Server, error) {
	options := []server.ServerOption{
		server.WithTools(Tools(store)...),
		server.WithResourceProvider(NewBucketResourceProvider(store)),
		server.WithInstructions("Object storage adapter. Use the bucket and object tools to inspect and move data."),
	}
	options = append(options, opts...)

	return server.NewServer("storage-adapter", "0.1.0", options...)
}
