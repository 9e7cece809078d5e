// Package mcp exposes a figspec engine as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/figspec/pkg/domain"
	"github.com/aretw0/figspec/pkg/observability"
	"github.com/aretw0/figspec/pkg/ports"
)

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Engine
	metrics   *observability.Metrics
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. metrics and logger may be nil.
func NewServer(engine ports.Engine, version string, metrics *observability.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		engine:    engine,
		metrics:   metrics,
		logger:    logger,
		mcpServer: server.NewMCPServer("figspec", version, server.WithToolCapabilities(false)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over Server-Sent Events on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

type handlerFunc func(ctx context.Context, args map[string]any) (any, error)

func (s *Server) registerTools() {
	s.add(mcp.NewTool("status",
		mcp.WithDescription("Summarize progress: node count, decided count and the next undecided node id."),
	), s.handleStatus)

	s.add(mcp.NewTool("next",
		mcp.WithDescription("Return the context bundle for the next undecided node in breadth-first order: node, parent and its decision, requirements, facts, children and hints. Returns {\"done\":true} when every node is decided."),
	), s.handleNext)

	s.add(mcp.NewTool("skeleton",
		mcp.WithDescription("Return a depth-bounded id/name/type/child-count tree for orientation."),
		mcp.WithString("node", mcp.Description("Node id to start from (defaults to the root)")),
		mcp.WithNumber("depth", mcp.Description("Levels below the node to include (default 2)")),
	), s.handleSkeleton)

	s.add(mcp.NewTool("children",
		mcp.WithDescription("List the direct children of a node."),
		mcp.WithString("node", mcp.Required(), mcp.Description("Node id")),
	), s.handleChildren)

	s.add(mcp.NewTool("facts",
		mcp.WithDescription("Return the compact facts (frame, layout, style, text, image) of one node."),
		mcp.WithString("node", mcp.Required(), mcp.Description("Node id")),
	), s.handleFacts)

	s.add(mcp.NewTool("batch",
		mcp.WithDescription("Return a slice of the breadth-first order with decided flags."),
		mcp.WithNumber("start", mcp.Description("First breadth-first index (default 0)")),
		mcp.WithNumber("count", mcp.Description("Maximum number of nodes (default 20)")),
	), s.handleBatch)

	s.add(mcp.NewTool("apply",
		mcp.WithDescription("Record decisions. The patch is one {id, component, ...} object, a list of them, or {\"decisions\": {id: decision}}. Unknown ids are skipped."),
		mcp.WithObject("patch", mcp.Required(), mcp.Description("Decision patch as JSON (object, array or JSON-encoded string)")),
	), s.handleApply)

	s.add(mcp.NewTool("validate",
		mcp.WithDescription("Check every recorded decision and report errors and warnings."),
	), s.handleValidate)

	s.add(mcp.NewTool("export",
		mcp.WithDescription("Reassemble the specification tree from the recorded decisions."),
		mcp.WithBoolean("absorb", mcp.Description("Fold labels and images into button/image parents (default true)")),
	), s.handleExport)
}

// add registers a tool whose result is returned as JSON text content.
// Engine errors become tool errors, not protocol errors.
func (s *Server) add(tool mcp.Tool, h handlerFunc) {
	s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := h(ctx, request.GetArguments())
		s.metrics.ObserveTool(tool.Name, err)
		if err != nil {
			s.logger.Debug("MCP tool failed", "tool", tool.Name, "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		data, err := json.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("encode %s result: %w", tool.Name, err)
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}

func (s *Server) handleStatus(ctx context.Context, args map[string]any) (any, error) {
	return s.engine.Status(ctx)
}

func (s *Server) handleNext(ctx context.Context, args map[string]any) (any, error) {
	return s.engine.Next(ctx)
}

func (s *Server) handleSkeleton(ctx context.Context, args map[string]any) (any, error) {
	node, _ := args["node"].(string)
	depth, err := intArg(args, "depth", domain.DefaultSkeletonDepth)
	if err != nil {
		return nil, err
	}
	return s.engine.Skeleton(ctx, node, depth)
}

func (s *Server) handleChildren(ctx context.Context, args map[string]any) (any, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	return s.engine.Children(ctx, node)
}

func (s *Server) handleFacts(ctx context.Context, args map[string]any) (any, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	return s.engine.Facts(ctx, node)
}

func (s *Server) handleBatch(ctx context.Context, args map[string]any) (any, error) {
	start, err := intArg(args, "start", 0)
	if err != nil {
		return nil, err
	}
	count, err := intArg(args, "count", domain.DefaultBatchSize)
	if err != nil {
		return nil, err
	}
	return s.engine.Batch(ctx, start, count)
}

func (s *Server) handleApply(ctx context.Context, args map[string]any) (any, error) {
	raw, ok := args["patch"]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: missing 'patch'", domain.ErrMalformedPatch)
	}

	var patch []byte
	if str, ok := raw.(string); ok {
		patch = []byte(str)
	} else {
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPatch, err)
		}
		patch = data
	}

	res, err := s.engine.Apply(ctx, patch)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveApply(res.AppliedCount, len(res.Skipped))
	return res, nil
}

func (s *Server) handleValidate(ctx context.Context, args map[string]any) (any, error) {
	return s.engine.Validate(ctx)
}

func (s *Server) handleExport(ctx context.Context, args map[string]any) (any, error) {
	var absorb *bool
	if v, ok := args["absorb"]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: 'absorb' must be a boolean", domain.ErrInvalidInput)
		}
		absorb = &b
	}
	return s.engine.Export(ctx, absorb)
}

// -- Helpers --

var errMissingArg = errors.New("missing required argument")

func requireString(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", errMissingArg, key)
	}
	return v, nil
}

// intArg reads a JSON number argument, accepting whole floats only.
func intArg(args map[string]any, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: '%s' must be an integer", domain.ErrInvalidInput, key)
		}
		return int(n), nil
	case int:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: '%s' must be an integer", domain.ErrInvalidInput, key)
		}
		return int(i), nil
	}
	return 0, fmt.Errorf("%w: '%s' must be a number", domain.ErrInvalidInput, key)
}
