package flow

import (
	"os"
	"path/filepath"

	"github.com/adapterkit/mcp-adapters/internal/config"
	"github.com/adapterkit/mcp-adapters/pkg/server"
)

// NewServer builds the flow engine adapter server.
func NewServer(cfg *config.Config, opts ...server.ServerOption) (*server.Server, error) {
	var generator Generator
	if cfg.Search.APIKey != "" {
		generator = NewOpenAIGenerator(cfg.Search)
	}

	outputDir := filepath.Join(os.TempDir(), "generated-components")
	return NewServerWithEngine(NewClient(cfg.Flow), generator, outputDir, opts...)
}

// NewServerWithEngine builds the adapter server over explicit backends,
// used by tests.
func NewServerWithEngine(engine Engine, generator Generator, outputDir string, opts ...server.ServerOption) (*server.Server, error) {
	options := []server.ServerOption{
		server.WithTools(Tools(engine, generator, outputDir)...),
		server.WithInstructions("Flow engine adapter. Manage flows and components with the flow tools."),
	}
	options = append(options, opts...)

	return server.NewServer("flow-adapter", "0.1.0", options...)
}
