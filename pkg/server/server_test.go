package server

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adapterkit/mcp-adapters/pkg/capabilities/tools"
	"github.com/adapterkit/mcp-adapters/pkg/capability"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// MockTransport is a mock implementation of the Transport interface.
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, data []byte) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockTransport) Receive(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockTransport) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newIdleTransport() *MockTransport {
	transport := &MockTransport{}
	transport.On("Receive", mock.Anything).Return(nil, errors.New("no message available"))
	transport.On("Send", mock.Anything, mock.Anything).Return(nil)
	transport.On("Close").Return(nil)
	return transport
}

func echoTool(calls *int) *tools.ToolWithHandler {
	return tools.NewTool("echo", "echoes a message", protocol.ObjectSchema(
		map[string]*protocol.JSONSchema{
			"message": protocol.StringSchema("the message"),
		},
		[]string{"message"},
	), func(ctx context.Context, args map[string]interface{}) (*protocol.ToolsCallResult, error) {
		*calls++
		return tools.NewSuccessToolResult(args["message"].(string)), nil
	})
}

func TestNewServerDefaults(t *testing.T) {
	s, err := NewServer("test-server", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "test-server", s.Name())
	assert.Equal(t, "1.0.0", s.Version())

	_, exists := s.Capability(capability.CapabilityTypeTools)
	assert.False(t, exists, "capabilities install lazily")
}

func TestWithToolInstallsCapability(t *testing.T) {
	calls := 0
	s, err := NewServer("test-server", "1.0.0", WithTool(echoTool(&calls)))
	require.NoError(t, err)

	c, exists := s.Capability(capability.CapabilityTypeTools)
	require.True(t, exists)
	assert.Equal(t, 1, c.(*tools.ToolsCapability).Registry().Count())
}

func TestWithToolsDuplicateFails(t *testing.T) {
	calls := 0
	_, err := NewServer("test-server", "1.0.0",
		WithTools(echoTool(&calls), echoTool(&calls)))
	assert.Error(t, err)
}

func TestHandleRequestRoutesToolsList(t *testing.T) {
	calls := 0
	s, err := NewServer("test-server", "1.0.0", WithTool(echoTool(&calls)))
	require.NoError(t, err)

	raw, err := s.HandleRequest(context.Background(), "tools/list", nil)
	require.NoError(t, err)

	result, ok := raw.(*protocol.ToolsListResult)
	require.True(t, ok)
	require.Len(t, result.Tools, 1)
	assert.Equal(t, "echo", result.Tools[0].Name)
}

func TestHandleRequestToolsCall(t *testing.T) {
	calls := 0
	s, err := NewServer("test-server", "1.0.0", WithTool(echoTool(&calls)))
	require.NoError(t, err)

	params, _ := json.Marshal(protocol.ToolsCallParams{
		Name:      "echo",
		Arguments: map[string]interface{}{"message": "hello"},
	})
	raw, err := s.HandleRequest(context.Background(), "tools/call", params)
	require.NoError(t, err)

	result, ok := raw.(*protocol.ToolsCallResult)
	require.True(t, ok)
	assert.False(t, result.IsError)
	assert.Equal(t, "hello", result.Content[0].Text)
	assert.Equal(t, 1, calls)
}

func TestHandleRequestUnknownNamespace(t *testing.T) {
	s, err := NewServer("test-server", "1.0.0")
	require.NoError(t, err)

	_, err = s.HandleRequest(context.Background(), "bogus/list", nil)
	require.Error(t, err)

	rpcErr, ok := err.(*protocol.JSONRPCError)
	require.True(t, ok)
	assert.Equal(t, protocol.ErrorCodeMethodNotFound, rpcErr.Code)
}

func TestInitializeLifecycle(t *testing.T) {
	calls := 0
	s, err := NewServer("test-server", "1.0.0",
		WithTool(echoTool(&calls)),
		WithInstructions("call echo"))
	require.NoError(t, err)

	transport := newIdleTransport()
	session, err := s.HandleConnection(context.Background(), transport)
	require.NoError(t, err)
	defer s.Shutdown(context.Background())

	ctx := protocol.WithSessionID(context.Background(), session.ID)

	params, _ := json.Marshal(protocol.InitializeParams{
		ProtocolVersion: string(protocol.ProtocolVersion20250326),
		ClientID:        "test-client",
	})
	raw, err := s.HandleRequest(ctx, "initialize", params)
	require.NoError(t, err)

	result, ok := raw.(*protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, string(protocol.ProtocolVersion20250326), result.ProtocolVersion)
	assert.Equal(t, "call echo", result.Instructions)
	assert.Contains(t, result.Capabilities, "tools")
	assert.Equal(t, protocol.SessionStateInitializing, session.GetState())

	_, err = s.HandleRequest(ctx, "notifications/initialized", nil)
	require.NoError(t, err)
	assert.True(t, session.IsActive())
}

func TestInitializeTwiceFails(t *testing.T) {
	s, err := NewServer("test-server", "1.0.0")
	require.NoError(t, err)

	transport := newIdleTransport()
	session, err := s.HandleConnection(context.Background(), transport)
	require.NoError(t, err)
	defer s.Shutdown(context.Background())

	ctx := protocol.WithSessionID(context.Background(), session.ID)
	params, _ := json.Marshal(protocol.InitializeParams{
		ProtocolVersion: string(protocol.ProtocolVersion20250326),
		ClientID:        "test-client",
	})

	_, err = s.HandleRequest(ctx, "initialize", params)
	require.NoError(t, err)

	_, err = s.HandleRequest(ctx, "initialize", params)
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	s, err := NewServer("test-server", "1.0.0")
	require.NoError(t, err)

	result, err := s.HandleRequest(context.Background(), "ping", nil)
	require.NoError(t, err)
	assert.NotNil(t, result)
}
