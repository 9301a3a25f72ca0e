package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/reattach"
	"github.com/aretw0/reattach/internal/logging"
	"github.com/aretw0/reattach/internal/presentation/tree"
	"github.com/aretw0/reattach/internal/selector"
	"github.com/aretw0/reattach/pkg/adapters/file"
	"github.com/aretw0/reattach/pkg/adapters/memory"
	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ReportsURI is the resource listing stored report IDs.
const ReportsURI = "reattach://reports"

// ReattachArgs are the arguments of the reattach tool.
type ReattachArgs struct {
	Document string   `json:"document"`
	Mode     string   `json:"mode,omitempty"`
	Select   []string `json:"select,omitempty"`
	Where    string   `json:"where,omitempty"`
}

// ReattachResult aligns with the HTTP response and provides a unified structure across adapters.
// Document is kept raw: node trees are recursive and the output schema is inlined.
type ReattachResult struct {
	Report   *domain.Report  `json:"report" jsonschema_description:"The run report"`
	Document json.RawMessage `json:"document" jsonschema_description:"The document after the run"`
}

// InspectArgs are the arguments of the inspect_tree tool.
type InspectArgs struct {
	Document string `json:"document"`
	Format   string `json:"format,omitempty"`
	Where    string `json:"where,omitempty"`
}

// Engine defines the interface required by the MCP server to run reattach passes.
type Engine interface {
	Run(ctx context.Context, host ports.Host, mode domain.Mode) (*domain.Report, error)
	Report(ctx context.Context, id string) (*domain.Report, error)
	Reports(ctx context.Context) ([]string, error)
}

// Server wraps the reattach Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("reattach-mcp", strings.TrimSpace(reattach.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, e.g. to mount it on a custom transport.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: reattach
	reattachTool := mcp.NewTool("reattach",
		mcp.WithDescription("Replace each selected frame with a fresh instance of the template sharing its name. "+
			"With mode copyOverrides, the frame's colors, effects and text styles are copied onto the instance."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The design document, as JSON or YAML text")),
		mcp.WithString("mode", mcp.Description("reattach (default) or copyOverrides"),
			mcp.Enum(string(domain.ModeReattach), string(domain.ModeCopyOverrides), "reattachInstance", "copyOverrides")),
		mcp.WithArray("select", mcp.WithStringItems(), mcp.Description("Node IDs to select instead of the stored selection")),
		mcp.WithString("where", mcp.Description(`Selection expression, e.g. type == "FRAME" && name startsWith "Card"`)),
		mcp.WithOutputSchema[ReattachResult](),
	)
	s.mcpServer.AddTool(reattachTool, mcp.NewStructuredToolHandler(s.handleReattach))

	// TOOL: inspect_tree
	inspectTool := mcp.NewTool("inspect_tree",
		mcp.WithDescription("Render the node tree of a design document, highlighting the selection."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The design document, as JSON or YAML text")),
		mcp.WithString("format", mcp.Description("outline (default) or mermaid"), mcp.Enum("outline", "mermaid")),
		mcp.WithString("where", mcp.Description("Selection expression to highlight instead of the stored selection")),
	)
	s.mcpServer.AddTool(inspectTool, mcp.NewTypedToolHandler(s.handleInspectTree))

	// TOOL: get_report
	s.mcpServer.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Load a stored run report."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Report ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		report, err := s.engine.Report(ctx, id)
		if errors.Is(err, domain.ErrReportNotFound) {
			return mcp.NewToolResultErrorf("report %q not found", id), nil
		}
		if err != nil {
			return mcp.NewToolResultErrorFromErr("load failed", err), nil
		}
		jsonBytes, _ := json.Marshal(report)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) loadHost(document, where string, ids []string) (*memory.Document, error) {
	data := []byte(document)
	doc, err := file.DecodeDocument(data, file.SniffFormat(data))
	if err != nil {
		return nil, err
	}
	host, err := memory.NewDocument(doc)
	if err != nil {
		return nil, err
	}
	if err := selector.Apply(host, where, ids); err != nil {
		return nil, err
	}
	return host, nil
}

// Handler methods for structured tools

func (s *Server) handleReattach(ctx context.Context, request mcp.CallToolRequest, args ReattachArgs) (ReattachResult, error) {
	mode := domain.ModeReattach
	if args.Mode != "" {
		var err error
		if mode, err = domain.ParseMode(args.Mode); err != nil {
			return ReattachResult{}, err
		}
	}

	host, err := s.loadHost(args.Document, args.Where, args.Select)
	if err != nil {
		return ReattachResult{}, fmt.Errorf("load document: %w", err)
	}

	report, err := s.engine.Run(ctx, host, mode)
	if err != nil {
		s.logger.Warn("MCP reattach failed", "document_id", host.DocumentID(), "err", err)
		return ReattachResult{}, fmt.Errorf("reattach failed: %w", err)
	}

	doc, err := json.Marshal(host.Snapshot())
	if err != nil {
		return ReattachResult{}, fmt.Errorf("encode document: %w", err)
	}
	return ReattachResult{Report: report, Document: doc}, nil
}

func (s *Server) handleInspectTree(ctx context.Context, request mcp.CallToolRequest, args InspectArgs) (*mcp.CallToolResult, error) {
	host, err := s.loadHost(args.Document, args.Where, nil)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("load document", err), nil
	}
	doc := host.Snapshot()
	overlay := tree.NewOverlay(doc)

	switch args.Format {
	case "", "outline":
		return mcp.NewToolResultText(tree.Outline(doc.Root, overlay)), nil
	case "mermaid":
		return mcp.NewToolResultText(tree.GenerateMermaid(doc.Root, overlay)), nil
	}
	return mcp.NewToolResultErrorf("unknown format %q", args.Format), nil
}

func (s *Server) registerResources() {
	// EXPOSE: reattach://reports
	s.mcpServer.AddResource(mcp.NewResource(ReportsURI, "Stored Run Reports",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.engine.Reports(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ReportsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
