package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/goalstack"
	"github.com/aretw0/goalstack/internal/dto"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/observability"
	"github.com/aretw0/goalstack/pkg/ports"
	"github.com/aretw0/goalstack/pkg/problem"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	operatorsURI = "goalstack://operators"
	problemsURI  = "goalstack://problems"
)

// Server exposes the planner as an MCP Server.
type Server struct {
	catalog   ports.ProblemSource
	metrics   *observability.Metrics
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithCatalog enables the list_problems and plan_problem tools.
func WithCatalog(src ports.ProblemSource) Option {
	return func(s *Server) { s.catalog = src }
}

// WithMetrics feeds planner hooks into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the logger. Stdio transports must not log to stdout.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer("goalstack-mcp", strings.TrimSpace(goalstack.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
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

		s.logger.Info("Shutdown signal received, shutting down server")
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
	// TOOL: plan
	planTool := mcp.NewTool("plan",
		mcp.WithDescription("Compute a blocks-world plan from a start arrangement to a goal arrangement."),
		mcp.WithString("start", mcp.Required(), mcp.Description(`JSON arrangement, e.g. {"table":[["A","B","C"]],"arm":""}. Stacks list blocks bottom first.`)),
		mcp.WithString("goal", mcp.Required(), mcp.Description("JSON arrangement with the same blocks as start")),
		mcp.WithString("name", mcp.Description("Problem name used in logs (optional)")),
		mcp.WithNumber("max_steps", mcp.Description("Step bound; defaults to 36")),
		mcp.WithBoolean("trace", mcp.Description("Include every step record in the result")),
		mcp.WithOutputSchema[dto.PlanResponse](),
	)
	s.mcpServer.AddTool(planTool, mcp.NewStructuredToolHandler(s.handlePlan))

	// TOOL: decode_conditions
	decodeTool := mcp.NewTool("decode_conditions",
		mcp.WithDescription("Rebuild the arrangement described by a set of condition atoms."),
		mcp.WithString("atoms", mcp.Required(), mcp.Description(`JSON array of atoms, e.g. ["ONTABLE(A)","ON(B,A)","CLEAR(B)","ARMEMPTY"]`)),
		mcp.WithOutputSchema[dto.DecodeResponse](),
	)
	s.mcpServer.AddTool(decodeTool, mcp.NewStructuredToolHandler(s.handleDecode))

	if s.catalog == nil {
		return
	}

	// TOOL: plan_problem
	planProblemTool := mcp.NewTool("plan_problem",
		mcp.WithDescription("Plan a problem stored in the catalog."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Problem name")),
		mcp.WithBoolean("trace", mcp.Description("Include every step record in the result")),
		mcp.WithOutputSchema[dto.PlanResponse](),
	)
	s.mcpServer.AddTool(planProblemTool, mcp.NewStructuredToolHandler(s.handlePlanProblem))

	// TOOL: list_problems
	s.mcpServer.AddTool(mcp.NewTool("list_problems",
		mcp.WithDescription("List the problems stored in the catalog."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.catalog.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handlePlan(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.PlanResponse, error) {
	doc, err := problemFromArgs(args)
	if err != nil {
		return dto.PlanResponse{}, err
	}
	trace, _ := args["trace"].(bool)
	return s.solve(ctx, doc, trace)
}

func (s *Server) handlePlanProblem(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.PlanResponse, error) {
	name, _ := args["name"].(string)
	doc, err := s.catalog.Load(ctx, name)
	if err != nil {
		return dto.PlanResponse{}, err
	}
	trace, _ := args["trace"].(bool)
	return s.solve(ctx, doc, trace)
}

func (s *Server) handleDecode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.DecodeResponse, error) {
	raw, _ := args["atoms"].(string)
	var atoms []string
	if err := json.Unmarshal([]byte(raw), &atoms); err != nil {
		return dto.DecodeResponse{}, fmt.Errorf("atoms must be a JSON array of strings: %w", err)
	}
	return dto.Decode(atoms)
}

// problemFromArgs turns tool arguments into a problem document. Arrangements
// travel as JSON strings; everything else goes through problem.Decode.
func problemFromArgs(args map[string]interface{}) (*problem.Problem, error) {
	input := make(map[string]any)
	for _, key := range []string{"start", "goal"} {
		raw, _ := args[key].(string)
		var arrangement map[string]any
		if err := json.Unmarshal([]byte(raw), &arrangement); err != nil {
			return nil, fmt.Errorf("%s must be a JSON arrangement: %w", key, err)
		}
		input[key] = arrangement
	}
	if name, ok := args["name"].(string); ok && name != "" {
		input["name"] = name
	}
	if bound, ok := args["max_steps"]; ok {
		input["max_steps"] = bound
	}
	return problem.Decode(input)
}

func (s *Server) solve(ctx context.Context, doc *problem.Problem, trace bool) (dto.PlanResponse, error) {
	var hooks domain.LifecycleHooks
	if s.metrics != nil {
		hooks = s.metrics.Hooks()
	}
	var records []domain.StepRecord
	if trace {
		hooks = hooks.Merge(domain.LifecycleHooks{
			OnStep: func(_ context.Context, e *domain.StepEvent) { records = append(records, e.Record) },
		})
	}

	planner, err := goalstack.FromProblem(doc,
		goalstack.WithLifecycleHooks(hooks),
		goalstack.WithLogger(s.logger),
	)
	if err != nil {
		s.observe(err)
		return dto.PlanResponse{}, err
	}

	res, runErr := planner.Solve(ctx)
	s.observe(runErr)
	if res == nil {
		return dto.PlanResponse{}, runErr
	}

	resp := dto.NewPlanResponse(uuid.NewString(), doc.Name, res, runErr)
	resp.Trace = records
	s.logger.Info("MCP plan", "plan_id", resp.PlanID, "done", resp.Done, "operators", len(resp.Plan))
	return resp, nil
}

func (s *Server) observe(err error) {
	if s.metrics != nil {
		s.metrics.ObserveRun(err)
	}
}

func (s *Server) registerResources() {
	// EXPOSE: goalstack://operators
	s.mcpServer.AddResource(mcp.NewResource(operatorsURI, "Operator Knowledge Base",
		mcp.WithMIMEType("application/json"),
	), s.readOperators)

	if s.catalog == nil {
		return
	}

	// EXPOSE: goalstack://problems
	s.mcpServer.AddResource(mcp.NewResource(problemsURI, "Problem Catalog",
		mcp.WithMIMEType("application/json"),
	), s.readProblems)
}

func (s *Server) readOperators(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(dto.Operators())
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      operatorsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) readProblems(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	jsonBytes, _ := json.Marshal(names)
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      problemsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
