package stdio

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAppendsNewline(t *testing.T) {
	var out bytes.Buffer
	transport := NewSTDIOTransportWithIO(strings.NewReader(""), &out)

	require.NoError(t, transport.Send(context.Background(), []byte(`{"jsonrpc":"2.0"}`)))
	assert.Equal(t, `{"jsonrpc":"2.0"}`+"\n", out.String())
}

func TestReceiveReadsLines(t *testing.T) {
	input := `{"id":1}` + "\n" + `{"id":2}` + "\n"
	transport := NewSTDIOTransportWithIO(strings.NewReader(input), io.Discard)
	transport.Start()
	defer transport.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	first := receiveEventually(t, ctx, transport)
	assert.Equal(t, `{"id":1}`, string(first))

	second := receiveEventually(t, ctx, transport)
	assert.Equal(t, `{"id":2}`, string(second))
}

func TestReceiveSkipsBlankLines(t *testing.T) {
	input := "\n\n" + `{"id":1}` + "\n"
	transport := NewSTDIOTransportWithIO(strings.NewReader(input), io.Discard)
	transport.Start()
	defer transport.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	data := receiveEventually(t, ctx, transport)
	assert.Equal(t, `{"id":1}`, string(data))
}

func TestSendAfterClose(t *testing.T) {
	transport := NewSTDIOTransportWithIO(strings.NewReader(""), io.Discard)
	transport.Start()
	require.NoError(t, transport.Close())

	err := transport.Send(context.Background(), []byte("data"))
	assert.Error(t, err)
}

func TestCloseWhileReaderBlocked(t *testing.T) {
	pr, pw := io.Pipe()
	transport := NewSTDIOTransportWithIO(pr, io.Discard)
	transport.Start()

	_, err := pw.Write([]byte(`{"id":1}` + "\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	data := receiveEventually(t, ctx, transport)
	assert.Equal(t, `{"id":1}`, string(data))

	// Close must return even while the reader is blocked on the pipe.
	closed := make(chan struct{})
	go func() {
		transport.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return while reader was blocked")
	}
	pw.Close()
}

func TestCloseIsIdempotent(t *testing.T) {
	transport := NewSTDIOTransportWithIO(strings.NewReader(""), io.Discard)
	transport.Start()
	require.NoError(t, transport.Close())
	require.NoError(t, transport.Close())
}

// receiveEventually polls Receive until a message arrives or ctx
// expires, since the read loop delivers asynchronously.
func receiveEventually(t *testing.T, ctx context.Context, transport *STDIOTransport) []byte {
	t.Helper()
	for {
		data, err := transport.Receive(ctx)
		if err == nil {
			return data
		}
		select {
		case <-ctx.Done():
			t.Fatalf("no message received: %v", ctx.Err())
		default:
		}
	}
}
