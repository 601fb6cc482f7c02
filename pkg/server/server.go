// Package server assembles transports, capabilities and sessions into a
// runnable MCP server.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/adapterkit/mcp-adapters/internal/logging"
	"github.com/adapterkit/mcp-adapters/pkg/capabilities/prompts"
	"github.com/adapterkit/mcp-adapters/pkg/capabilities/resources"
	"github.com/adapterkit/mcp-adapters/pkg/capabilities/tools"
	"github.com/adapterkit/mcp-adapters/pkg/capability"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// Server is an MCP server: a set of capabilities served over one or
// more transports.
type Server struct {
	name            string
	version         string
	instructions    string
	protocolVersion protocol.ProtocolVersion

	logger *slog.Logger

	capabilityRegistry *capability.CapabilityRegistry
	capabilities       map[capability.CapabilityType]capability.Capability

	endpoints         *protocol.EndpointRegistry
	transportRegistry *protocol.TransportRegistry
	transportConfigs  map[string]map[string]interface{}

	sessionsMux sync.RWMutex
	sessions    map[string]*protocol.Session
	dispatchers []*protocol.JSONRPCDispatcher
}

// NewServer creates a server with the given identity and options.
func NewServer(name, version string, opts ...ServerOption) (*Server, error) {
	s := &Server{
		name:            name,
		version:         version,
		protocolVersion: protocol.ProtocolVersion20250326,
		logger:          logging.NewLoggerFactory().CreateLogger("server"),

		capabilityRegistry: capability.NewCapabilityRegistry(),
		capabilities:       make(map[capability.CapabilityType]capability.Capability),

		endpoints:         protocol.NewEndpointRegistry(),
		transportRegistry: protocol.DefaultTransportRegistry,
		transportConfigs:  make(map[string]map[string]interface{}),

		sessions: make(map[string]*protocol.Session),
	}

	s.capabilityRegistry.Register(capability.CapabilityTypeTools, tools.ToolsCapabilityFactory)
	s.capabilityRegistry.Register(capability.CapabilityTypeResources, resources.ResourcesCapabilityFactory)
	s.capabilityRegistry.Register(capability.CapabilityTypePrompts, prompts.PromptsCapabilityFactory)

	s.endpoints.RegisterEndpoint(s.baseEndpoint())

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Name returns the server name.
func (s *Server) Name() string {
	return s.name
}

// Version returns the server version.
func (s *Server) Version() string {
	return s.version
}

// Capability returns an installed capability by type.
func (s *Server) Capability(capType capability.CapabilityType) (capability.Capability, bool) {
	c, exists := s.capabilities[capType]
	return c, exists
}

// AddCapability installs a capability and registers its endpoint.
func (s *Server) AddCapability(c capability.Capability) error {
	if _, exists := s.capabilities[c.Type()]; exists {
		return fmt.Errorf("capability already installed: %s", c.Type())
	}

	s.capabilities[c.Type()] = c
	if endpoint := c.Endpoint(); endpoint != nil {
		s.endpoints.RegisterEndpoint(endpoint)
	}
	return nil
}

// ToolsCapability returns the tools capability, installing it on first
// use.
func (s *Server) ToolsCapability() *tools.ToolsCapability {
	if c, exists := s.capabilities[capability.CapabilityTypeTools]; exists {
		return c.(*tools.ToolsCapability)
	}

	c := tools.NewToolsCapability(nil)
	_ = s.AddCapability(c)
	return c
}

// ResourcesCapability returns the resources capability, installing it
// on first use.
func (s *Server) ResourcesCapability() *resources.ResourcesCapability {
	if c, exists := s.capabilities[capability.CapabilityTypeResources]; exists {
		return c.(*resources.ResourcesCapability)
	}

	c := resources.NewResourcesCapability()
	_ = s.AddCapability(c)
	return c
}

// PromptsCapability returns the prompts capability, installing it on
// first use.
func (s *Server) PromptsCapability() *prompts.PromptsCapability {
	if c, exists := s.capabilities[capability.CapabilityTypePrompts]; exists {
		return c.(*prompts.PromptsCapability)
	}

	c := prompts.NewPromptsCapability()
	_ = s.AddCapability(c)
	return c
}

// HandleRequest implements protocol.RPCHandler by routing full method
// names through the endpoint registry.
func (s *Server) HandleRequest(ctx context.Context, method string, params json.RawMessage) (interface{}, error) {
	logging.Trace(s.logger, "handling request", "method", method)
	return s.endpoints.HandleRequest(ctx, method, params)
}

// HandleConnection wires a transport into a new session and starts its
// message pump.
func (s *Server) HandleConnection(ctx context.Context, transport protocol.Transport) (*protocol.Session, error) {
	dispatcher := protocol.NewJSONRPCDispatcher(transport, s)
	session := protocol.NewSession(dispatcher)
	session.ServerID = s.name
	session.ServerInfo = map[string]string{"name": s.name, "version": s.version}
	session.ServerCapabilities = s.capabilityDefinitions()

	dispatcher.SetSessionID(session.ID)

	s.sessionsMux.Lock()
	s.sessions[session.ID] = session
	s.dispatchers = append(s.dispatchers, dispatcher)
	s.sessionsMux.Unlock()

	if starter, ok := transport.(interface{ Start() }); ok {
		starter.Start()
	}
	dispatcher.Start()

	logging.Info(s.logger, "connection established", "session", session.ID)
	return session, nil
}

// OpenSession registers a session that is not bound to a transport
// message pump. Request/response transports like http dispatch with
// WithSessionID on the request context instead.
func (s *Server) OpenSession() *protocol.Session {
	session := protocol.NewSession(nil)
	session.ServerID = s.name
	session.ServerInfo = map[string]string{"name": s.name, "version": s.version}
	session.ServerCapabilities = s.capabilityDefinitions()

	s.sessionsMux.Lock()
	s.sessions[session.ID] = session
	s.sessionsMux.Unlock()

	logging.Info(s.logger, "session opened", "session", session.ID)
	return session
}

// Start initializes capabilities, creates the configured transports and
// begins serving. It returns after the transports are wired; callers
// block on their own lifecycle signal.
func (s *Server) Start(ctx context.Context) error {
	for _, c := range s.capabilities {
		if err := c.Initialize(ctx); err != nil {
			return fmt.Errorf("initializing capability %s: %w", c.Type(), err)
		}
	}

	if len(s.transportConfigs) == 0 {
		return fmt.Errorf("no transports configured")
	}

	for transportType, options := range s.transportConfigs {
		transport, err := s.transportRegistry.Create(ctx, transportType, options)
		if err != nil {
			return fmt.Errorf("creating transport %s: %w", transportType, err)
		}

		if _, err := s.HandleConnection(ctx, transport); err != nil {
			return err
		}

		logging.Info(s.logger, "transport started", "type", transportType)
	}

	return nil
}

// Shutdown stops dispatchers, closes sessions and shuts down
// capabilities.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessionsMux.Lock()
	dispatchers := s.dispatchers
	sessions := s.sessions
	s.dispatchers = nil
	s.sessions = make(map[string]*protocol.Session)
	s.sessionsMux.Unlock()

	for _, d := range dispatchers {
		d.Stop()
	}
	for _, session := range sessions {
		_ = session.Close()
	}

	for _, c := range s.capabilities {
		if err := c.Shutdown(ctx); err != nil {
			logging.Warn(s.logger, "capability shutdown failed", "type", c.Type(), "error", err)
		}
	}

	logging.Info(s.logger, "server stopped", "name", s.name)
	return nil
}

func (s *Server) capabilityDefinitions() map[string]protocol.CapabilityDefinition {
	definitions := make(map[string]protocol.CapabilityDefinition, len(s.capabilities))
	for capType, c := range s.capabilities {
		definitions[string(capType)] = c.Definition()
	}
	return definitions
}

// baseEndpoint serves the lifecycle methods that live outside any
// capability namespace.
func (s *Server) baseEndpoint() *protocol.BaseEndpoint {
	endpoint := protocol.NewBaseEndpoint(protocol.EmptyNamespace)

	endpoint.RegisterMethod("initialize", s.handleInitialize)
	endpoint.RegisterMethod("ping", s.handlePing)
	endpoint.RegisterNotification("initialized", s.handleInitialized)
	endpoint.RegisterNotification("cancelled", s.handleCancelled)

	return endpoint
}

func (s *Server) handleInitialize(ctx context.Context, params json.RawMessage) (interface{}, error) {
	initParams := &protocol.InitializeParams{}
	if err := json.Unmarshal(params, initParams); err != nil {
		return nil, &protocol.JSONRPCError{
			Code:    protocol.ErrorCodeInvalidParams,
			Message: "Invalid parameters: " + err.Error(),
		}
	}

	session, err := s.sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	result, err := session.Initialize(ctx, initParams, s.protocolVersion)
	if err != nil {
		return nil, &protocol.JSONRPCError{
			Code:    protocol.ErrorCodeInvalidRequest,
			Message: err.Error(),
		}
	}

	result.Instructions = s.instructions

	logging.Info(s.logger, "session initializing",
		"session", session.ID,
		"client", initParams.ClientID,
		"protocol", initParams.ProtocolVersion)

	return result, nil
}

func (s *Server) handleInitialized(ctx context.Context, params json.RawMessage) (interface{}, error) {
	session, err := s.sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	session.SetState(protocol.SessionStateActive)
	logging.Info(s.logger, "session active", "session", session.ID)
	return nil, nil
}

func (s *Server) handlePing(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return map[string]interface{}{}, nil
}

func (s *Server) handleCancelled(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return nil, nil
}

func (s *Server) sessionFromContext(ctx context.Context) (*protocol.Session, error) {
	sessionID, ok := protocol.GetSessionID(ctx)
	if !ok {
		return nil, &protocol.JSONRPCError{
			Code:    protocol.ErrorCodeInvalidRequest,
			Message: "no session associated with request",
		}
	}

	s.sessionsMux.RLock()
	session, exists := s.sessions[sessionID]
	s.sessionsMux.RUnlock()

	if !exists {
		return nil, &protocol.JSONRPCError{
			Code:    protocol.ErrorCodeInvalidRequest,
			Message: "unknown session: " + sessionID,
		}
	}

	return session, nil
}
