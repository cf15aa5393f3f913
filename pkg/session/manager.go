package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/picker"
	"github.com/aretw0/picker/internal/logging"
	"github.com/aretw0/picker/pkg/domain"
	"github.com/aretw0/picker/pkg/machine"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// session is a live picker plus the selection its last delivery produced.
type session struct {
	id        string
	kind      machine.Kind
	createdAt time.Time
	picker    *picker.Picker
	completed *domain.Selection
}

// Info is a read-only snapshot of a session.
type Info struct {
	ID        string       `json:"id"`
	Machine   machine.Kind `json:"machine"`
	State     string       `json:"state"`
	Active    bool         `json:"active"`
	Points    int          `json:"points"`
	CreatedAt time.Time    `json:"created_at"`
}

// Result is the outcome of delivering one event to a session.
type Result struct {
	Commands domain.Commands `json:"commands"`
	State    string          `json:"state"`
	Active   bool            `json:"active"`
	// Selection is set when this delivery completed a selection.
	Selection *domain.Selection `json:"selection,omitempty"`
}

// Manager orchestrates session access, ensuring deliveries to one session
// never interleave. It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	mu       sync.Mutex            // guards sessions and locks
	sessions map[string]*session   // live sessions
	locks    map[string]*lockEntry // per-session delivery locks

	pickerOpts []picker.Option
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithPickerOptions applies opts to every picker the Manager creates.
func WithPickerOptions(opts ...picker.Option) Option {
	return func(m *Manager) {
		m.pickerOpts = append(m.pickerOpts, opts...)
	}
}

// NewManager creates an empty Session Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*session),
		locks:    make(map[string]*lockEntry),
		logger:   logging.NewNop(), // Default to no-op
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

func (m *Manager) lookup(sessionID string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return s, nil
}

// Create starts a session running a fresh machine of the given kind.
func (m *Manager) Create(ctx context.Context, sessionID string, kind machine.Kind) (Info, error) {
	kind, err := machine.ParseKind(string(kind))
	if err != nil {
		return Info{}, err
	}

	var info Info
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if _, err := m.lookup(sessionID); err == nil {
			return fmt.Errorf("%w: %s", domain.ErrSessionExists, sessionID)
		}

		s := &session{id: sessionID, kind: kind, createdAt: m.now()}
		opts := append([]picker.Option{
			picker.WithLogger(m.logger.With("session_id", sessionID)),
			picker.WithLifecycleHooks(domain.LifecycleHooks{
				OnSelected: func(_ string, sel domain.Selection) {
					s.completed = &sel
				},
			}),
		}, m.pickerOpts...)

		p, err := picker.New(kind, opts...)
		if err != nil {
			return fmt.Errorf("failed to create session %s: %w", sessionID, err)
		}
		s.picker = p

		m.mu.Lock()
		m.sessions[sessionID] = s
		m.mu.Unlock()

		m.logger.Debug("session created", "session_id", sessionID, "machine", string(kind))
		info = s.info()
		return nil
	})
	return info, err
}

// Feed delivers one event to a session.
func (m *Manager) Feed(ctx context.Context, sessionID string, ev domain.Event) (Result, error) {
	results, err := m.FeedAll(ctx, sessionID, []domain.Event{ev})
	if err != nil {
		return Result{}, err
	}
	return results[0], nil
}

// FeedAll delivers a batch of events under one lock, so batches sent to the
// same session never interleave. Delivery stops at the first cancellation;
// the results of the events already applied are returned with the error.
func (m *Manager) FeedAll(ctx context.Context, sessionID string, events []domain.Event) ([]Result, error) {
	results := make([]Result, 0, len(events))
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := m.lookup(sessionID)
		if err != nil {
			return err
		}

		for _, ev := range events {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.completed = nil
			cmds := s.picker.Feed(ev)
			results = append(results, Result{
				Commands:  cmds,
				State:     s.stateName(),
				Active:    s.picker.Active(),
				Selection: s.completed,
			})
		}
		return nil
	})
	return results, err
}

// Reset returns a session's machine to idle and discards its buffer.
func (m *Manager) Reset(ctx context.Context, sessionID string) (Info, error) {
	var info Info
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := m.lookup(sessionID)
		if err != nil {
			return err
		}
		s.picker.Reset()
		info = s.info()
		return nil
	})
	return info, err
}

// Get returns a snapshot of one session.
func (m *Manager) Get(ctx context.Context, sessionID string) (Info, error) {
	var info Info
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := m.lookup(sessionID)
		if err != nil {
			return err
		}
		info = s.info()
		return nil
	})
	return info, err
}

// Delete removes a session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		if _, ok := m.sessions[sessionID]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
		}
		delete(m.sessions, sessionID)
		m.logger.Debug("session deleted", "session_id", sessionID)
		return nil
	})
}

// List returns the IDs of all live sessions in lexical order.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *session) stateName() string {
	return s.picker.Machine().StateName(s.picker.State())
}

func (s *session) info() Info {
	return Info{
		ID:        s.id,
		Machine:   s.kind,
		State:     s.stateName(),
		Active:    s.picker.Active(),
		Points:    len(s.picker.Points()),
		CreatedAt: s.createdAt,
	}
}
