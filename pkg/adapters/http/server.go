package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/reattach"
	"github.com/aretw0/reattach/internal/logging"
	"github.com/aretw0/reattach/internal/selector"
	"github.com/aretw0/reattach/pkg/adapters/file"
	"github.com/aretw0/reattach/pkg/adapters/memory"
	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
)

//go:embed openapi.yaml
var rawSpec []byte

// Runner is the part of the reattach engine the HTTP API drives.
type Runner interface {
	Run(ctx context.Context, host ports.Host, mode domain.Mode) (*domain.Report, error)
	Report(ctx context.Context, id string) (*domain.Report, error)
	Reports(ctx context.Context) ([]string, error)
}

var _ Runner = (*reattach.Engine)(nil)

// Server serves the reattach HTTP API.
type Server struct {
	Runner  Runner
	Streams *StreamManager

	spec    *openapi3.T
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStreams serves GET /events from sm. Register sm.Hooks() on the engine
// so that runs reach the stream.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetricsHandler serves h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates a new HTTP handler for the engine.
// Requests matching an operation of the embedded OpenAPI document are
// validated against it before they reach a handler.
func NewHandler(runner Runner, opts ...Option) (http.Handler, error) {
	server := &Server{Runner: runner}
	for _, opt := range opts {
		opt(server)
	}
	if server.logger == nil {
		server.logger = logging.NewNop()
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager(server.logger)
	}

	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	server.spec = spec

	router, err := legacy.NewRouter(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	r := chi.NewRouter()
	r.Use(server.validateRequests(router))

	r.Post("/reattach", server.Reattach)
	r.Get("/reports", server.ListReports)
	r.Get("/reports/{id}", server.GetReport)
	r.Get("/events", server.SubscribeEvents)
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)

	// Swagger UI
	r.Get("/openapi.yaml", server.GetOpenAPI)
	r.Get("/swagger", server.GetSwagger)

	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	return enableCORS(r), nil
}

func (s *Server) validateRequests(router routers.Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, params, err := router.FindRoute(r)
			if err != nil {
				// Not part of the contract (swagger, metrics, preflight).
				next.ServeHTTP(w, r)
				return
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: params,
				Route:      route,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				s.logger.Warn("Request rejected by contract", "path", r.URL.Path, "err", err)
				http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Reattach API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// ReattachRequest is the body of POST /reattach.
type ReattachRequest struct {
	Document json.RawMessage `json:"document"`
	Mode     string          `json:"mode,omitempty"`
	Select   []string        `json:"select,omitempty"`
	Where    string          `json:"where,omitempty"`
}

// ReattachResponse is the body returned by POST /reattach.
type ReattachResponse struct {
	Report   *domain.Report   `json:"report"`
	Document *domain.Document `json:"document"`
}

// Reattach handles the POST /reattach request.
//
// The document is loaded into an in-memory host, the selection is replaced
// by Select or Where when given, and the resulting document is returned with
// the report.
func (s *Server) Reattach(w http.ResponseWriter, r *http.Request) {
	var body ReattachRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Reattach: Invalid request body", "err", err)
		return
	}

	mode := domain.ModeReattach
	if body.Mode != "" {
		var err error
		if mode, err = domain.ParseMode(body.Mode); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	doc, err := file.DecodeDocument(body.Document, file.FormatJSON)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	host, err := memory.NewDocument(doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := selector.Apply(host, body.Where, body.Select); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := s.Runner.Run(r.Context(), host, mode)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrNodeNotFound) {
			status = http.StatusBadRequest
		}
		http.Error(w, fmt.Sprintf("Reattach error: %v", err), status)
		s.logger.Error("Reattach failed", "document_id", doc.ID, "err", err)
		return
	}

	writeJSON(w, s.logger, ReattachResponse{Report: report, Document: host.Snapshot()})
}

// ListReports handles the GET /reports request.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Runner.Reports(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ListReports failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, s.logger, ids)
}

// GetReport handles the GET /reports/{id} request.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	report, err := s.Runner.Report(r.Context(), id)
	if errors.Is(err, domain.ErrReportNotFound) {
		http.Error(w, "Report not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("GetReport failed", "report_id", id, "err", err)
		return
	}
	writeJSON(w, s.logger, report)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec != nil && s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}

	writeJSON(w, s.logger, map[string]string{
		"app":         "reattach-http",
		"version":     strings.TrimSpace(reattach.Version),
		"api_version": apiVersion,
	})
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	documentID := r.URL.Query().Get("document_id")
	s.logger.Info("SSE: Subscribing to run events", "document_id", documentID)

	ch, cancel := s.Streams.Subscribe(documentID)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "document_id", documentID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}

// GetOpenAPI serves the embedded OpenAPI document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	writeRaw(w, s.logger, "text/yaml", rawSpec)
}

// GetSwagger serves the Swagger UI page.
func (s *Server) GetSwagger(w http.ResponseWriter, r *http.Request) {
	writeRaw(w, s.logger, "text/html", []byte(swaggerHTML))
}

func writeRaw(w http.ResponseWriter, logger *slog.Logger, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(body); err != nil {
		logger.Error("Response write failed", "content_type", contentType, "err", err)
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "err", err)
	}
}
