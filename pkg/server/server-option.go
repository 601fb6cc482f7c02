package server

import (
	"log/slog"

	"github.com/adapterkit/mcp-adapters/pkg/capabilities/prompts"
	"github.com/adapterkit/mcp-adapters/pkg/capabilities/resources"
	"github.com/adapterkit/mcp-adapters/pkg/capabilities/tools"
	"github.com/adapterkit/mcp-adapters/pkg/capability"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// ServerOption configures a server during construction.
type ServerOption func(*Server) error

// WithLogger sets the server's logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// WithProtocolVersion sets the protocol version the server negotiates.
func WithProtocolVersion(version protocol.ProtocolVersion) ServerOption {
	return func(s *Server) error {
		s.protocolVersion = version
		return nil
	}
}

// WithInstructions sets the usage instructions returned to clients
// during initialization.
func WithInstructions(instructions string) ServerOption {
	return func(s *Server) error {
		s.instructions = instructions
		return nil
	}
}

// WithTransport configures a transport to create at startup.
func WithTransport(transportType string, options map[string]interface{}) ServerOption {
	return func(s *Server) error {
		if options == nil {
			options = make(map[string]interface{})
		}
		s.transportConfigs[transportType] = options
		return nil
	}
}

// WithTransportRegistry replaces the transport registry.
func WithTransportRegistry(registry *protocol.TransportRegistry) ServerOption {
	return func(s *Server) error {
		s.transportRegistry = registry
		return nil
	}
}

// WithCapability installs a pre-built capability.
func WithCapability(c capability.Capability) ServerOption {
	return func(s *Server) error {
		return s.AddCapability(c)
	}
}

// WithTool registers a tool, installing the tools capability on first
// use.
func WithTool(tool *tools.ToolWithHandler) ServerOption {
	return func(s *Server) error {
		return s.ToolsCapability().RegisterTool(tool)
	}
}

// WithTools registers several tools at once.
func WithTools(list ...*tools.ToolWithHandler) ServerOption {
	return func(s *Server) error {
		c := s.ToolsCapability()
		for _, tool := range list {
			if err := c.RegisterTool(tool); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithResourceProvider registers a resource provider, installing the
// resources capability on first use.
func WithResourceProvider(provider resources.ResourceProvider) ServerOption {
	return func(s *Server) error {
		s.ResourcesCapability().AddProvider(provider)
		return nil
	}
}

// WithPrompt registers a prompt, installing the prompts capability on
// first use.
func WithPrompt(prompt *prompts.PromptWithRenderer) ServerOption {
	return func(s *Server) error {
		return s.PromptsCapability().RegisterPrompt(prompt)
	}
}
