package notes

import (
	"github.com/adapterkit/mcp-adapters/internal/adapters/transcript"
	"github.com/adapterkit/mcp-adapters/internal/config"
	"github.com/adapterkit/mcp-adapters/pkg/server"
)

// NewServer builds the notes adapter server.
func NewServer(cfg *config.Config, opts ...server.ServerOption) (*server.Server, error) {
	return NewServerWithFetcher(transcript.NewYouTubeFetcher(), opts...)
}

// NewServerWithFetcher builds the adapter server over an explicit
// transcript backend, used by tests.
func NewServerWithFetcher(fetcher transcript.Fetcher, opts ...server.ServerOption) (*server.Server, error) {
	store := NewStore()

	options := []server.ServerOption{
		server.WithTools(Tools(store, fetcher)...),
		server.WithResourceProvider(store),
		server.WithPrompt(SummarizePrompt(store)),
		server.WithInstructions("Notes adapter. Manage notes with the note tools, read them as note:// resources."),
	}
	options = append(options, opts...)

	return server.NewServer("notes-adapter", "0.1.0", options...)
}
