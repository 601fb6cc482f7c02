package main

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adapterkit/mcp-adapters/internal/adapters/flow"
	"github.com/adapterkit/mcp-adapters/internal/adapters/notes"
	"github.com/adapterkit/mcp-adapters/internal/adapters/search"
	"github.com/adapterkit/mcp-adapters/internal/adapters/storage"
	"github.com/adapterkit/mcp-adapters/internal/adapters/vector"
	"github.com/adapterkit/mcp-adapters/internal/config"
	"github.com/adapterkit/mcp-adapters/internal/logging"
	"github.com/adapterkit/mcp-adapters/pkg/capability"
	"github.com/adapterkit/mcp-adapters/pkg/capabilities/tools"
	"github.com/adapterkit/mcp-adapters/pkg/protocol"
	"github.com/adapterkit/mcp-adapters/pkg/server"
	transporthttp "github.com/adapterkit/mcp-adapters/pkg/transport/http"
	"github.com/adapterkit/mcp-adapters/pkg/transport/stdio"
)

type adapterBuilder func(cfg *config.Config) (*server.Server, error)

var adapters = map[string]adapterBuilder{
	"storage": func(cfg *config.Config) (*server.Server, error) { return storage.NewServer(cfg) },
	"vector":  func(cfg *config.Config) (*server.Server, error) { return vector.NewServer(cfg) },
	"search":  func(cfg *config.Config) (*server.Server, error) { return search.NewServer(cfg) },
	"flow":    func(cfg *config.Config) (*server.Server, error) { return flow.NewServer(cfg) },
	"notes":   func(cfg *config.Config) (*server.Server, error) { return notes.NewServer(cfg) },
}

func adapterNames() []string {
	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func buildAdapter(name string, cfg *config.Config) (*server.Server, error) {
	builder, exists := adapters[name]
	if !exists {
		return nil, fmt.Errorf("unknown adapter %q, available: %v", name, adapterNames())
	}
	return builder(cfg)
}

func main() {
	var configPath string
	var listenAddr string

	rootCmd := &cobra.Command{
		Use:   "mcp-adapters",
		Short: "MCP adapter servers for storage, vector, search, flow and notes backends",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "path to the configuration file")

	serveCmd := &cobra.Command{
		Use:       "serve <adapter>",
		Short:     "Run one adapter server",
		Args:      cobra.ExactArgs(1),
		ValidArgs: adapterNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), args[0], cfg, listenAddr)
		},
	}
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", ":8080", "listen address for the http transport")

	toolsCmd := &cobra.Command{
		Use:       "tools <adapter>",
		Short:     "Print the tool definitions of an adapter",
		Args:      cobra.ExactArgs(1),
		ValidArgs: adapterNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runTools(args[0], cfg)
		},
	}

	rootCmd.AddCommand(serveCmd, toolsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(ctx context.Context, adapter string, cfg *config.Config, listenAddr string) error {
	factory := logging.NewLoggerFactoryWithConfig(os.Stderr, logging.ParseLevel(cfg.Server.LogLevel))
	logger := factory.CreateLogger("main")

	srv, err := buildAdapter(adapter, cfg)
	if err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	switch cfg.Server.Transport {
	case protocol.TransportTypeStdio:
		transport := stdio.NewSTDIOTransport()
		if _, err := srv.HandleConnection(ctx, transport); err != nil {
			return err
		}
		logging.Info(logger, "adapter serving on stdio", "adapter", adapter)

	case protocol.TransportTypeHTTP:
		session := srv.OpenSession()
		httpCtx := protocol.WithSessionID(ctx, session.ID)
		handler := transporthttp.NewHTTPHandler(func(data []byte) []byte {
			return handleHTTPMessage(httpCtx, srv, data)
		})
		go func() {
			if err := nethttp.ListenAndServe(listenAddr, handler); err != nil {
				logging.Fatal(logger, "http transport failed", "error", err)
			}
		}()
		logging.Info(logger, "adapter serving on http", "adapter", adapter, "listen", listenAddr)

	default:
		return fmt.Errorf("unsupported transport %q", cfg.Server.Transport)
	}

	<-stop
	logging.Info(logger, "shutting down", "adapter", adapter)
	return srv.Shutdown(context.Background())
}

// handleHTTPMessage processes one JSON-RPC message synchronously, for
// the request/response shape of the http transport.
func handleHTTPMessage(ctx context.Context, srv *server.Server, data []byte) []byte {
	var message protocol.JSONRPCMessage
	if err := json.Unmarshal(data, &message); err != nil {
		return errorResponse(nil, protocol.ErrorCodeParseError, "Parse error")
	}

	result, err := srv.HandleRequest(ctx, message.Method, message.Params)
	if err != nil {
		code := protocol.ErrorCodeInternalError
		msg := err.Error()
		if rpcErr, ok := err.(*protocol.JSONRPCError); ok {
			code = rpcErr.Code
			msg = rpcErr.Message
		}
		return errorResponse(message.ID, code, msg)
	}

	if message.ID == nil {
		return nil
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return errorResponse(message.ID, protocol.ErrorCodeInternalError, "Internal error")
	}

	response, _ := json.Marshal(protocol.JSONRPCMessage{
		JSONRPC: protocol.JSONRPCVersion,
		ID:      message.ID,
		Result:  resultJSON,
	})
	return response
}

func errorResponse(id json.RawMessage, code int, message string) []byte {
	response, _ := json.Marshal(protocol.JSONRPCMessage{
		JSONRPC: protocol.JSONRPCVersion,
		ID:      id,
		Error:   protocol.NewJSONRPCError(code, message, nil),
	})
	return response
}

func runTools(adapter string, cfg *config.Config) error {
	srv, err := buildAdapter(adapter, cfg)
	if err != nil {
		return err
	}

	c, exists := srv.Capability(capability.CapabilityTypeTools)
	if !exists {
		return fmt.Errorf("adapter %s exposes no tools", adapter)
	}

	definitions := c.(*tools.ToolsCapability).Registry().Definitions()
	data, err := json.MarshalIndent(definitions, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}
