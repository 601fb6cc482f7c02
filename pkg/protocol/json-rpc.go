// Package protocol provides types and utilities for JSON-RPC communication
package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adapterkit/mcp-adapters/internal/logging"
)

// JSON-RPC 2.0 error codes
const (
	ErrorCodeParseError     int = -32700
	ErrorCodeInvalidRequest int = -32600
	ErrorCodeMethodNotFound int = -32601
	ErrorCodeInvalidParams  int = -32602
	ErrorCodeInternalError  int = -32603
)

// JSONRPCVersion is the supported JSON-RPC protocol version.
const JSONRPCVersion = "2.0"

// JSONRPCMessage represents a generic JSON-RPC message. A message with a
// method and an id is a request, a method without an id is a notification,
// and a message without a method is a response.
type JSONRPCMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC error object.
type JSONRPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *JSONRPCError) Error() string {
	return e.Message
}

// NewJSONRPCError creates an error object, marshaling data when present.
func NewJSONRPCError(code int, message string, data interface{}) *JSONRPCError {
	var dataJSON json.RawMessage
	if data != nil {
		if bytes, err := json.Marshal(data); err == nil {
			dataJSON = bytes
		}
	}
	return &JSONRPCError{Code: code, Message: message, Data: dataJSON}
}

// RPCHandler handles incoming RPC requests.
type RPCHandler interface {
	HandleRequest(ctx context.Context, method string, params json.RawMessage) (interface{}, error)
}

// RPCClient sends RPC requests and notifications.
type RPCClient interface {
	// Call sends an RPC request and waits for the response.
	Call(ctx context.Context, method string, params interface{}) (json.RawMessage, error)

	// Notify sends an RPC notification (no response expected).
	Notify(ctx context.Context, method string, params interface{}) error
}

// JSONRPCDispatcher pumps JSON-RPC messages between a transport and an
// RPCHandler, and correlates outgoing calls with their responses.
type JSONRPCDispatcher struct {
	transport  Transport
	handler    RPCHandler
	pending    map[string]chan *JSONRPCMessage
	pendingMux sync.Mutex
	shutdown   chan struct{}
	wg         sync.WaitGroup
	sessionID  string
	logger     *slog.Logger
}

// NewJSONRPCDispatcher creates a new JSON-RPC dispatcher.
func NewJSONRPCDispatcher(transport Transport, handler RPCHandler) *JSONRPCDispatcher {
	return &JSONRPCDispatcher{
		transport: transport,
		handler:   handler,
		pending:   make(map[string]chan *JSONRPCMessage),
		shutdown:  make(chan struct{}),
		logger:    logging.NewLoggerFactory().CreateLogger("dispatcher"),
	}
}

// SetSessionID associates a session ID with this dispatcher. The ID is
// injected into the context of every request handed to the handler.
func (d *JSONRPCDispatcher) SetSessionID(sessionID string) {
	d.sessionID = sessionID
}

// Start starts the message receive loop.
func (d *JSONRPCDispatcher) Start() {
	d.wg.Add(1)
	go d.receiveLoop()
}

// Stop stops the dispatcher and waits for the receive loop to exit.
func (d *JSONRPCDispatcher) Stop() {
	close(d.shutdown)
	d.wg.Wait()
}

func (d *JSONRPCDispatcher) receiveLoop() {
	defer d.wg.Done()

	for {
		select {
		case <-d.shutdown:
			return
		default:
		}

		// Short receive timeout so shutdown is observed promptly.
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		data, err := d.transport.Receive(ctx)
		cancel()

		if err != nil {
			// No message available; back off briefly instead of spinning.
			time.Sleep(10 * time.Millisecond)
			continue
		}

		var message JSONRPCMessage
		if err := json.Unmarshal(data, &message); err != nil {
			logging.Warn(d.logger, "discarding unparsable message", "error", err)
			continue
		}

		switch {
		case message.Method != "" && message.ID != nil:
			go d.handleRequest(context.Background(), &message)
		case message.Method != "":
			go d.handleNotification(context.Background(), &message)
		default:
			d.handleResponse(&message)
		}
	}
}

func (d *JSONRPCDispatcher) handleRequest(ctx context.Context, msg *JSONRPCMessage) {
	if d.handler == nil {
		d.sendErrorResponse(ctx, msg.ID, ErrorCodeMethodNotFound, "Method not found", nil)
		return
	}

	if d.sessionID != "" {
		ctx = WithSessionID(ctx, d.sessionID)
	}

	result, err := d.handler.HandleRequest(ctx, msg.Method, msg.Params)
	if err != nil {
		code := ErrorCodeInternalError
		message := err.Error()
		if rpcErr, ok := err.(*JSONRPCError); ok {
			code = rpcErr.Code
			message = rpcErr.Message
		}
		d.sendErrorResponse(ctx, msg.ID, code, message, nil)
		return
	}

	d.sendResponse(ctx, msg.ID, result)
}

func (d *JSONRPCDispatcher) handleNotification(ctx context.Context, msg *JSONRPCMessage) {
	if d.handler == nil {
		return
	}

	if d.sessionID != "" {
		ctx = WithSessionID(ctx, d.sessionID)
	}

	// Notifications never produce a response.
	_, _ = d.handler.HandleRequest(ctx, msg.Method, msg.Params)
}

func (d *JSONRPCDispatcher) handleResponse(msg *JSONRPCMessage) {
	var idStr string
	if err := json.Unmarshal(msg.ID, &idStr); err != nil {
		return
	}

	d.pendingMux.Lock()
	defer d.pendingMux.Unlock()

	if ch, exists := d.pending[idStr]; exists {
		ch <- msg
		delete(d.pending, idStr)
	}
}

// Call sends an RPC request and waits for the matching response.
func (d *JSONRPCDispatcher) Call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	id := uuid.New().String()

	request := &JSONRPCMessage{
		JSONRPC: JSONRPCVersion,
		ID:      []byte(`"` + id + `"`),
		Method:  method,
	}

	if params != nil {
		paramsJSON, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("error marshaling parameters: %w", err)
		}
		request.Params = paramsJSON
	}

	responseCh := make(chan *JSONRPCMessage, 1)
	d.pendingMux.Lock()
	d.pending[id] = responseCh
	d.pendingMux.Unlock()

	abandon := func() {
		d.pendingMux.Lock()
		delete(d.pending, id)
		d.pendingMux.Unlock()
	}

	requestJSON, err := json.Marshal(request)
	if err != nil {
		abandon()
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	if err := d.transport.Send(ctx, requestJSON); err != nil {
		abandon()
		return nil, fmt.Errorf("error sending request: %w", err)
	}

	select {
	case <-ctx.Done():
		abandon()
		return nil, ctx.Err()
	case response := <-responseCh:
		if response.Error != nil {
			return nil, response.Error
		}
		return response.Result, nil
	}
}

// Notify sends an RPC notification without waiting for a response.
func (d *JSONRPCDispatcher) Notify(ctx context.Context, method string, params interface{}) error {
	notification := &JSONRPCMessage{
		JSONRPC: JSONRPCVersion,
		Method:  method,
	}

	if params != nil {
		paramsJSON, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("error marshaling parameters: %w", err)
		}
		notification.Params = paramsJSON
	}

	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("error marshaling notification: %w", err)
	}

	if err := d.transport.Send(ctx, notificationJSON); err != nil {
		return fmt.Errorf("error sending notification: %w", err)
	}

	return nil
}

func (d *JSONRPCDispatcher) sendErrorResponse(ctx context.Context, id json.RawMessage, code int, message string, data interface{}) {
	response := &JSONRPCMessage{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error:   NewJSONRPCError(code, message, data),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return
	}

	_ = d.transport.Send(ctx, responseJSON)
}

func (d *JSONRPCDispatcher) sendResponse(ctx context.Context, id json.RawMessage, result interface{}) {
	response := &JSONRPCMessage{
		JSONRPC: JSONRPCVersion,
		ID:      id,
	}

	if result != nil {
		resultJSON, err := json.Marshal(result)
		if err != nil {
			d.sendErrorResponse(ctx, id, ErrorCodeInternalError, "Internal error", nil)
			return
		}
		response.Result = resultJSON
	} else {
		response.Result = []byte("null")
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return
	}

	_ = d.transport.Send(ctx, responseJSON)
}
