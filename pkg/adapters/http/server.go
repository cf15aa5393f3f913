package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/picker"
	"github.com/aretw0/picker/internal/logging"
	"github.com/aretw0/picker/internal/presentation/graph"
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/machine"
	"github.com/aretw0/picker/pkg/pattern"
	"github.com/aretw0/picker/pkg/ports"
	"github.com/aretw0/picker/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Server exposes machines and sessions over HTTP.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	matcher ports.RoleMatcher
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMatcher sets the role matcher used by stateless transitions.
// Defaults to pattern.New().
func WithMatcher(m ports.RoleMatcher) Option {
	return func(s *Server) {
		s.matcher = m
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler serving the machine catalog and the
// sessions held by mgr.
func NewHandler(mgr *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Sessions: mgr,
		Streams:  NewStreamManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.matcher == nil {
		s.matcher = pattern.New()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.Streams.logger = s.logger

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Get("/machines", s.ListMachines)
	r.Get("/machines/{kind}", s.DescribeMachine)
	r.Get("/machines/{kind}/graph", s.GetGraph)
	r.Post("/transition", s.Transition)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)
		r.Get("/{id}", s.GetSession)
		r.Delete("/{id}", s.DeleteSession)
		r.Post("/{id}/events", s.FeedSession)
		r.Post("/{id}/reset", s.ResetSession)
		r.Get("/{id}/stream", s.SubscribeSession)
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MachineDetail is the body of GET /machines/{kind}.
type MachineDetail struct {
	machine.Description
	States []string       `json:"states"`
	Edges  []machine.Edge `json:"edges"`
}

// TransitionRequest is the body of POST /transition.
type TransitionRequest struct {
	Machine machine.Kind  `json:"machine"`
	State   machine.State `json:"state"`
	Event   domain.Event  `json:"event"`
}

// TransitionResponse is the result of a stateless transition.
type TransitionResponse struct {
	Commands  domain.Commands `json:"commands"`
	State     machine.State   `json:"state"`
	StateName string          `json:"state_name"`
}

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	ID      string       `json:"id,omitempty"`
	Machine machine.Kind `json:"machine"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "picker-http",
		"version": picker.Version,
	})
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, machine.Catalog())
}

// DescribeMachine handles the GET /machines/{kind} request.
func (s *Server) DescribeMachine(w http.ResponseWriter, r *http.Request) {
	kind, err := machine.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	desc, _ := machine.Describe(kind)
	edges, _ := machine.ExploreKind(kind)
	s.writeJSON(w, http.StatusOK, MachineDetail{
		Description: desc,
		States:      stateNames(edges),
		Edges:       edges,
	})
}

// GetGraph handles the GET /machines/{kind}/graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	kind, err := machine.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var overlay *graph.GraphOverlay
	if current := r.URL.Query().Get("current"); current != "" {
		overlay = &graph.GraphOverlay{CurrentState: current}
	}
	out, err := graph.GenerateMermaidForKind(kind, overlay)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(out))
}

// Transition handles the POST /transition request. The machine is rebuilt
// from the request, so nothing is retained between calls.
func (s *Server) Transition(w http.ResponseWriter, r *http.Request) {
	var body TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Transition: Invalid request body", "error", err)
		return
	}

	kind, err := machine.ParseKind(string(body.Machine))
	if err != nil {
		s.writeError(w, err)
		return
	}
	m, err := machine.New(kind)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := body.Event.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	m.SetState(body.State)
	cmds := m.Transition(s.matcher, body.Event)
	s.writeJSON(w, http.StatusOK, TransitionResponse{
		Commands:  cmds,
		State:     m.State(),
		StateName: m.StateName(m.State()),
	})
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("CreateSession: Invalid request body", "error", err)
		return
	}
	if body.ID == "" {
		body.ID = uuid.NewString()
	}

	info, err := s.Sessions.Create(r.Context(), body.ID, body.Machine)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, info)
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// FeedSession handles the POST /sessions/{id}/events request. The body is a
// single event or an array of events. The whole array is validated first and
// then delivered under the session lock, so concurrent batches never
// interleave.
func (s *Server) FeedSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("FeedSession: Invalid request body", "error", err)
		return
	}
	events, err := decodeEvents(raw)
	if err != nil {
		s.writeError(w, err)
		return
	}

	results, err := s.Sessions.FeedAll(r.Context(), id, events)
	for _, res := range results {
		if res.Commands.Empty() {
			continue
		}
		if bytes, err := json.Marshal(res); err == nil {
			s.Streams.Broadcast(id, string(bytes))
		}
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

// ResetSession handles the POST /sessions/{id}/reset request.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.Sessions.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

func decodeEvents(raw json.RawMessage) ([]domain.Event, error) {
	var events []domain.Event
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &events); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidEvent, err)
		}
	} else {
		var ev domain.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidEvent, err)
		}
		events = append(events, ev)
	}
	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return events, nil
}

func stateNames(edges []machine.Edge) []string {
	names := []string{"idle"}
	seen := map[string]bool{"idle": true}
	for _, e := range edges {
		if !seen[e.ToName] {
			seen[e.ToName] = true
			names = append(names, e.ToName)
		}
	}
	return names
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSessionExists):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnknownMachine), errors.Is(err, domain.ErrInvalidEvent):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}
