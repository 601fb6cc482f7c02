// Package stdio provides a newline-delimited stdio transport.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/adapterkit/mcp-adapters/internal/logging"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
)

// STDIOTransport implements a transport over stdin/stdout. Messages are
// single JSON documents separated by newlines.
type STDIOTransport struct {
	reader *bufio.Reader
	writer io.Writer

	incomingMessages chan []byte

	logger *slog.Logger

	mutex  sync.Mutex
	wg     sync.WaitGroup
	done   chan struct{}
	closed bool
}

// NewSTDIOTransport creates a transport bound to os.Stdin/os.Stdout.
func NewSTDIOTransport() *STDIOTransport {
	return NewSTDIOTransportWithIO(os.Stdin, os.Stdout)
}

// NewSTDIOTransportWithIO creates a transport with a custom reader and
// writer, used by tests and by in-process clients.
func NewSTDIOTransportWithIO(reader io.Reader, writer io.Writer) *STDIOTransport {
	return &STDIOTransport{
		reader:           bufio.NewReader(reader),
		writer:           writer,
		incomingMessages: make(chan []byte, 100),
		done:             make(chan struct{}),
		logger:           logging.NewLoggerFactory().CreateLogger("stdio-transport"),
	}
}

// Start starts the read loop.
func (t *STDIOTransport) Start() {
	t.wg.Add(1)
	go t.readLoop()
}

func (t *STDIOTransport) readLoop() {
	defer t.wg.Done()

	lines := make(chan []byte, 100)

	// Reader goroutine: ReadBytes blocks, so it runs separately and the
	// main loop stays responsive to shutdown.
	go func() {
		for {
			select {
			case <-t.done:
				return
			default:
			}

			data, err := t.reader.ReadBytes('\n')

			if len(data) > 0 {
				select {
				case lines <- data:
				case <-t.done:
					return
				}
			}

			if err != nil {
				if err != io.EOF {
					logging.Error(t.logger, "error reading from stdin", "error", err)
				}
				// Back off so a persistent error does not spin the CPU.
				select {
				case <-time.After(100 * time.Millisecond):
				case <-t.done:
					return
				}
			}
		}
	}()

	for {
		select {
		case <-t.done:
			return
		case data := <-lines:
			trimmed := bytes.TrimSpace(data)
			if len(trimmed) > 0 {
				t.incomingMessages <- trimmed
			}
		}
	}
}

// Send writes a message to standard output, newline-terminated.
func (t *STDIOTransport) Send(ctx context.Context, data []byte) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.closed {
		return fmt.Errorf("transport closed")
	}

	data = append(data, '\n')
	_, err := t.writer.Write(data)
	return err
}

// Receive returns the next buffered message, or an error once the
// context deadline passes. A short poll timeout keeps callers able to
// observe shutdown.
func (t *STDIOTransport) Receive(ctx context.Context) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 500*time.Millisecond)
		defer cancel()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case data, ok := <-t.incomingMessages:
		if !ok {
			return nil, fmt.Errorf("channel closed")
		}
		return data, nil
	case <-time.After(50 * time.Millisecond):
		return nil, fmt.Errorf("no message available")
	}
}

// Close closes the transport.
func (t *STDIOTransport) Close() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.closed {
		return nil
	}

	t.closed = true
	close(t.done)
	t.wg.Wait()

	return nil
}

// Reader returns the underlying reader.
func (t *STDIOTransport) Reader() io.Reader {
	return t.reader
}

// Writer returns the underlying writer.
func (t *STDIOTransport) Writer() io.Writer {
	return t.writer
}

// STDIOTransportCreator is a factory for creating stdio transports.
func STDIOTransportCreator(ctx context.Context, options map[string]interface{}) (protocol.Transport, error) {
	return NewSTDIOTransport(), nil
}

// RegisterSTDIOTransport registers the stdio transport in a registry.
func RegisterSTDIOTransport(registry *protocol.TransportRegistry) {
	registry.Register(protocol.TransportTypeStdio, STDIOTransportCreator)
}
