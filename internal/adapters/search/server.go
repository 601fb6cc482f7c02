package search

import (
	"github.com/adapterkit/mcp-adapters/internal/config"
	"github.com/adapterkit/mcp-adapters/pkg/server"
)

// NewServer builds the web search adapter server.
func NewServer(cfg *config.Config, opts ...server.ServerOption) (*server.Server, error) {
	return NewServerWithSearcher(NewOpenAISearcher(cfg.Search), opts...)
}

// NewServerWithSearcher builds the adapter server over an explicit
// backend, used by tests.
func NewServerWithSearcher(searcher Searcher, opts ...server.ServerOption) (*server.Server, error) {
	store := NewResultStore()

	options := []server.ServerOption{
		server.WithTools(Tools(searcher, store)...),
		server.WithResourceProvider(store),
		server.WithInstructions("Web search adapter. Run web-search, then read saved results as search:// resources."),
	}
	options = append(options, opts...)

	return server.NewServer("search-adapter", "0.1.0", options...)
}
