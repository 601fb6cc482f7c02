// Package http provides an HTTP transport implementation.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// HTTPTransport implements a transport over HTTP POST exchanges. On the
// client side every Send is a request whose response body is queued for
// Receive; on the server side it wraps an http.Server.
type HTTPTransport struct {
	url    string
	client *http.Client
	server *http.Server

	incomingMessages chan []byte

	mutex  sync.Mutex
	closed bool
}

// NewHTTPClientTransport creates a client-side HTTP transport.
func NewHTTPClientTransport(url string, timeout time.Duration) *HTTPTransport {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPTransport{
		url:              url,
		client:           &http.Client{Timeout: timeout},
		incomingMessages: make(chan []byte, 100),
	}
}

// NewHTTPServerTransport creates a server-side HTTP transport.
func NewHTTPServerTransport(listenAddr string, handler http.Handler) (*HTTPTransport, error) {
	return &HTTPTransport{
		incomingMessages: make(chan []byte, 100),
		server: &http.Server{
			Addr:    listenAddr,
			Handler: handler,
		},
	}, nil
}

// StartServer starts the HTTP server in the background.
func (t *HTTPTransport) StartServer() error {
	if t.server == nil {
		return fmt.Errorf("server not configured")
	}

	go func() {
		_ = t.server.ListenAndServe()
	}()

	return nil
}

// Send posts a message and queues the response body for Receive.
func (t *HTTPTransport) Send(ctx context.Context, data []byte) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.closed {
		return fmt.Errorf("transport closed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.incomingMessages <- respData
	return nil
}

// Receive returns the next queued message.
func (t *HTTPTransport) Receive(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case data := <-t.incomingMessages:
		return data, nil
	}
}

// Close closes the transport and shuts down the server side if present.
func (t *HTTPTransport) Close() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}

	return nil
}

// HTTPTransportCreator is a factory for creating client HTTP transports.
func HTTPTransportCreator(ctx context.Context, options map[string]interface{}) (protocol.Transport, error) {
	url, _ := options["url"].(string)
	if url == "" {
		return nil, fmt.Errorf("URL is required")
	}

	timeout := 30 * time.Second
	if timeoutMs, ok := options["timeout"].(float64); ok {
		timeout = time.Duration(timeoutMs) * time.Millisecond
	}

	return NewHTTPClientTransport(url, timeout), nil
}

// RegisterHTTPTransport registers the HTTP transport in a registry.
func RegisterHTTPTransport(registry *protocol.TransportRegistry) {
	registry.Register(protocol.TransportTypeHTTP, HTTPTransportCreator)
}

// HTTPHandler adapts a message callback to http.Handler.
type HTTPHandler struct {
	messageCallback func([]byte) []byte
}

// NewHTTPHandler creates a handler that feeds POST bodies to callback.
func NewHTTPHandler(callback func([]byte) []byte) *HTTPHandler {
	return &HTTPHandler{messageCallback: callback}
}

// ServeHTTP implements the http.Handler interface.
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}

	var response []byte
	if h.messageCallback != nil {
		response = h.messageCallback(body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}
