package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/aretw0/picker"
	"github.com/aretw0/picker/internal/logging"
	"github.com/aretw0/picker/internal/presentation/graph"
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/machine"
	"github.com/aretw0/picker/pkg/pattern"
	"github.com/aretw0/picker/pkg/ports"
	"github.com/aretw0/picker/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const machinesURI = "picker://machines"

// DescribeResponse is the structured result of describe_machine.
type DescribeResponse struct {
	Machine machine.Description `json:"machine" jsonschema_description:"Kind, selection type and summary"`
	Edges   []machine.Edge      `json:"edges" jsonschema_description:"Every transition reachable from idle"`
	Mermaid string              `json:"mermaid" jsonschema_description:"Mermaid state diagram of the edges"`
}

// TransitionResponse is the structured result of transition.
type TransitionResponse struct {
	Commands  []domain.Command `json:"commands" jsonschema_description:"Commands emitted, in application order"`
	State     int              `json:"state" jsonschema_description:"Numeric state after the event"`
	StateName string           `json:"state_name" jsonschema_description:"Readable state after the event"`
}

// FeedResponse is the structured result of feed_session.
type FeedResponse struct {
	SessionID string           `json:"session_id"`
	Results   []session.Result `json:"results" jsonschema_description:"One result per delivered event"`
}

// Server exposes the machines and a session manager as an MCP Server.
type Server struct {
	sessions  *session.Manager
	matcher   ports.RoleMatcher
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithMatcher sets the role matcher used by stateless transitions.
func WithMatcher(m ports.RoleMatcher) Option {
	return func(s *Server) {
		s.matcher = m
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance backed by mgr.
func NewServer(mgr *session.Manager, opts ...Option) *Server {
	s := &Server{
		sessions:  mgr,
		matcher:   pattern.New(),
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("picker-mcp", picker.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_machines
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List every selection machine with its selection type."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(machine.Catalog())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: describe_machine
	describeTool := mcp.NewTool("describe_machine",
		mcp.WithDescription("Describe a selection machine: its transitions and a state diagram."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine kind, e.g. drag-rect")),
		mcp.WithOutputSchema[DescribeResponse](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))

	// TOOL: transition
	transitionTool := mcp.NewTool("transition",
		mcp.WithDescription("Apply one input event to a machine in a given state, without keeping any session."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine kind")),
		mcp.WithNumber("state", mcp.Description("Numeric state before the event (default 0, idle)")),
		mcp.WithString("event", mcp.Required(), mcp.Description(`JSON event, e.g. {"kind":"press","button":"left","pos":{"x":1,"y":2}}`)),
		mcp.WithOutputSchema[TransitionResponse](),
	)
	s.mcpServer.AddTool(transitionTool, mcp.NewStructuredToolHandler(s.handleTransition))

	// TOOL: feed_session
	feedTool := mcp.NewTool("feed_session",
		mcp.WithDescription("Deliver events to a session, creating it when a machine is given and the session does not exist."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("machine", mcp.Description("Machine kind for a new session")),
		mcp.WithString("events", mcp.Required(), mcp.Description("JSON array of events")),
		mcp.WithOutputSchema[FeedResponse](),
	)
	s.mcpServer.AddTool(feedTool, mcp.NewStructuredToolHandler(s.handleFeed))
}

// Handler methods for structured tools

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DescribeResponse, error) {
	name, _ := args["machine"].(string)
	kind, err := machine.ParseKind(name)
	if err != nil {
		return DescribeResponse{}, err
	}

	desc, _ := machine.Describe(kind)
	edges, _ := machine.ExploreKind(kind)
	return DescribeResponse{
		Machine: desc,
		Edges:   edges,
		Mermaid: graph.GenerateMermaid(edges, nil),
	}, nil
}

func (s *Server) handleTransition(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TransitionResponse, error) {
	name, _ := args["machine"].(string)
	kind, err := machine.ParseKind(name)
	if err != nil {
		return TransitionResponse{}, err
	}
	m, err := machine.New(kind)
	if err != nil {
		return TransitionResponse{}, err
	}

	var ev domain.Event
	raw, _ := args["event"].(string)
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return TransitionResponse{}, fmt.Errorf("%w: %v", domain.ErrInvalidEvent, err)
	}
	if err := ev.Validate(); err != nil {
		return TransitionResponse{}, err
	}

	if state, ok := args["state"].(float64); ok {
		if state < 0 || state > 255 {
			return TransitionResponse{}, fmt.Errorf("state %v out of range", state)
		}
		if state != math.Trunc(state) {
			return TransitionResponse{}, fmt.Errorf("state %v is not an integer", state)
		}
		m.SetState(machine.State(state))
	}

	cmds := m.Transition(s.matcher, ev)
	return TransitionResponse{
		Commands:  cmds.Slice(),
		State:     int(m.State()),
		StateName: m.StateName(m.State()),
	}, nil
}

// handleFeed validates the whole batch before the session is touched, so a
// rejected batch neither creates the session nor applies any of its events.
func (s *Server) handleFeed(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (FeedResponse, error) {
	id, _ := args["session_id"].(string)
	kind, _ := args["machine"].(string)
	raw, _ := args["events"].(string)

	var events []domain.Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return FeedResponse{}, fmt.Errorf("%w: %v", domain.ErrInvalidEvent, err)
	}
	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			return FeedResponse{}, fmt.Errorf("event %d: %w", i, err)
		}
	}

	if _, err := s.sessions.Get(ctx, id); errors.Is(err, domain.ErrSessionNotFound) && kind != "" {
		if _, err := s.sessions.Create(ctx, id, machine.Kind(kind)); err != nil {
			return FeedResponse{}, err
		}
	}

	results, err := s.sessions.FeedAll(ctx, id, events)
	return FeedResponse{SessionID: id, Results: results}, err
}

func (s *Server) registerResources() {
	// EXPOSE: picker://machines
	s.mcpServer.AddResource(mcp.NewResource(machinesURI, "Selection Machines",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(machine.Catalog())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      machinesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
